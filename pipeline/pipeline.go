package pipeline

import (
	"github.com/indigo-web/compressvary/http"
)

// Handler processes the response. It's the capability every stage delegates to.
type Handler func(response *http.Response) error

// Stage works like a chain of nested calls, next may be even directly the terminal
// handler. A stage that doesn't abort must call next exactly once.
type Stage func(next Handler, response *http.Response) error

// Compose makes a single Handler from the stages and the terminal handler. The first
// stage is called first. The chain is built once and never changes afterwards.
func Compose(terminal Handler, stages ...Stage) Handler {
	handler := terminal

	for i := len(stages) - 1; i >= 0; i-- {
		handler = bind(stages[i], handler)
	}

	return handler
}

// Terminate is a terminal handler doing nothing.
func Terminate(*http.Response) error {
	return nil
}

func bind(stage Stage, next Handler) Handler {
	return func(response *http.Response) error {
		return stage(next, response)
	}
}
