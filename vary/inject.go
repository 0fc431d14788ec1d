package vary

import (
	"github.com/indigo-web/compressvary/errors"
	"github.com/indigo-web/utils/arena"
)

const AcceptEncoding = "Accept-Encoding"

var acceptEncoding = []byte(AcceptEncoding)

// InjectAcceptEncoding appends Accept-Encoding to the current segment of dst if the
// response was negotiated and none of the tokens is Accept-Encoding already. It must
// be called after the tokens were deduplicated into dst, so the token goes last.
func InjectAcceptEncoding(tokens []Token, dst *arena.Arena[Token], negotiated bool) error {
	if !negotiated || Contains(tokens, acceptEncoding) {
		return nil
	}

	if !dst.Append(acceptEncoding) {
		return errors.ErrAllocation
	}

	return nil
}
