package vary

import (
	"github.com/indigo-web/compressvary/errors"
	"github.com/indigo-web/compressvary/internal/strcomp"
	"github.com/indigo-web/utils/arena"
)

// Dedupe appends to the current segment of dst every token, which isn't equal under
// ASCII case folding to any token before it. So the first occurrence wins, including
// its casing, and the order is kept.
//
// Membership is checked by linear search over preceding tokens. Vary lists are short,
// so this outperforms hashing, which would also require folding every token into a
// new buffer.
func Dedupe(tokens []Token, dst *arena.Arena[Token]) error {
	for i, token := range tokens {
		if Contains(tokens[:i], token) {
			continue
		}

		if !dst.Append(token) {
			return errors.ErrAllocation
		}
	}

	return nil
}

// Contains reports whether any of the tokens is equal to the token under ASCII case
// folding.
func Contains(tokens []Token, token Token) bool {
	for _, t := range tokens {
		if strcomp.EqualFold(t, token) {
			return true
		}
	}

	return false
}
