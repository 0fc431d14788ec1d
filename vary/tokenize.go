package vary

import "iter"

// Token is a view into a header value. It's never copied until the merged value is built.
type Token = []byte

// Tokens iterates over the tokens of a single Vary value. Spaces, tabs and commas are
// delimiters, and their runs are skipped as a whole, so no empty token is ever produced.
// Anything else is a part of a token, the value isn't validated.
func Tokens(value []byte) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for i := 0; i < len(value); {
			for i < len(value) && isDelimiter(value[i]) {
				i++
			}

			begin := i
			for i < len(value) && !isDelimiter(value[i]) {
				i++
			}

			if begin != i && !yield(value[begin:i:i]) {
				return
			}
		}
	}
}

func isDelimiter(c byte) bool {
	return c == ' ' || c == '\t' || c == ','
}
