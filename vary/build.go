package vary

import (
	"github.com/indigo-web/compressvary/errors"
	"github.com/indigo-web/utils/arena"
)

// EmitEmptyVary decides, whether a Vary field with an empty value is added when there
// are no tokens at all. It is not, so responses without Vary stay without it.
const EmitEmptyVary = false

var separator = []byte(", ")

// Build joins the tokens into a single value, allocated from the arena. No tokens
// result in an empty value without touching the arena.
func Build(tokens []Token, a *arena.Arena[byte]) ([]byte, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	if !a.Append(tokens[0]...) {
		return nil, errors.ErrAllocation
	}

	for _, token := range tokens[1:] {
		if !a.Append(separator...) || !a.Append(token...) {
			return nil, errors.ErrAllocation
		}
	}

	return a.Finish(), nil
}
