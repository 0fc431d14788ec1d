package http

import (
	"github.com/indigo-web/compressvary/config"
	"github.com/indigo-web/compressvary/kv"
	"github.com/indigo-web/utils/arena"
)

type Headers = *kv.Storage

// Response is the state of a single response passing through the stage pipeline. Every
// piece of memory it hands out lives until Release is called.
type Response struct {
	// Headers holds the response header fields in their emission order.
	Headers Headers
	// EncodingNegotiated is set by the host when the body representation was selected
	// through content-encoding negotiation against the request's Accept-Encoding.
	EncodingNegotiated bool
	// Scope is the resolved configuration of the block serving the request. It's never
	// nil while the response is processed.
	Scope *config.Scope

	values         *arena.Arena[byte]
	tokens, unique *arena.Arena[[]byte]
}

// NewResponse returns a new instance with pre-allocated per-response memory, sized
// according to the config.
func NewResponse(cfg *config.Config) *Response {
	space, tokens := cfg.Vary.Space, cfg.Vary.Tokens

	return &Response{
		Headers: kv.NewSegmented(cfg.Headers.Segment.Size),
		values:  arena.NewArena[byte](min(space.Default, space.Maximal), space.Maximal),
		tokens:  arena.NewArena[[]byte](min(tokens.Default, tokens.Maximal), tokens.Maximal),
		unique:  arena.NewArena[[]byte](min(tokens.Default, tokens.Maximal), tokens.Maximal),
	}
}

// Values returns the arena for header values, built while processing the response.
func (r *Response) Values() *arena.Arena[byte] {
	return r.values
}

// Tokens returns the arena for raw token views.
func (r *Response) Tokens() *arena.Arena[[]byte] {
	return r.tokens
}

// Unique returns the arena for deduplicated token views.
func (r *Response) Unique() *arena.Arena[[]byte] {
	return r.unique
}

// Release drops everything the response holds at once, so the instance can be reused.
// Header values produced by stages must not be used after this call.
func (r *Response) Release() {
	r.Headers.Clear()
	r.EncodingNegotiated = false
	r.Scope = nil
	r.values.Clear()
	r.tokens.Clear()
	r.unique.Clear()
}
