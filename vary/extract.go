package vary

import (
	"github.com/indigo-web/compressvary/errors"
	"github.com/indigo-web/compressvary/internal/strcomp"
	"github.com/indigo-web/compressvary/kv"
	"github.com/indigo-web/utils/arena"
)

const Key = "Vary"

// Extract walks the headers once and collects tokens of every Vary field into a single
// arena segment, in the order they're met. Each Vary field is removed afterwards, other
// fields stay untouched.
func Extract(headers *kv.Storage, dst *arena.Arena[Token]) ([]Token, error) {
	for field := range headers.Fields() {
		if !strcomp.EqualFoldString(field.Key, Key) {
			continue
		}

		for token := range Tokens(field.Value) {
			if !dst.Append(token) {
				return nil, errors.ErrAllocation
			}
		}

		headers.Remove(field)
	}

	return dst.Finish(), nil
}
