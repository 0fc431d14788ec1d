package vary

import (
	"github.com/indigo-web/compressvary/http"
	"github.com/indigo-web/compressvary/pipeline"
)

var _ pipeline.Stage = Filter

var key = []byte(Key)

// Filter merges all the Vary fields of the response into a single one, if the directive
// is enabled in the response's scope. Otherwise, the response is passed further as is.
// Next isn't called if the merge failed.
func Filter(next pipeline.Handler, response *http.Response) error {
	if response.Scope == nil || !response.Scope.CompressVary {
		return next(response)
	}

	if err := Merge(response); err != nil {
		return err
	}

	return next(response)
}

// Merge replaces all the Vary fields of the response by a single one, holding unique
// tokens in the order of their first occurrence. Accept-Encoding is appended if the
// response was negotiated. The new field is added to the end of the headers.
func Merge(response *http.Response) error {
	tokens, err := Extract(response.Headers, response.Tokens())
	if err != nil {
		return err
	}

	unique := response.Unique()
	if err = Dedupe(tokens, unique); err != nil {
		return err
	}

	if err = InjectAcceptEncoding(tokens, unique, response.EncodingNegotiated); err != nil {
		return err
	}

	set := unique.Finish()
	if len(set) == 0 && !EmitEmptyVary {
		return nil
	}

	value, err := Build(set, response.Values())
	if err != nil {
		return err
	}

	response.Headers.Add(key, value)

	return nil
}
