package strcomp

// EqualFold reports whether a and b are equal under ASCII case folding. Non-letter bytes
// must match exactly, so that e.g. '@' and '`' are not considered equal.
func EqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] && toLower(a[i]) != toLower(b[i]) {
			return false
		}
	}

	return true
}

// EqualFoldString is EqualFold for cases when one of the operands is a constant.
func EqualFoldString(a []byte, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] && toLower(a[i]) != toLower(b[i]) {
			return false
		}
	}

	return true
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c | 0x20
	}

	return c
}
