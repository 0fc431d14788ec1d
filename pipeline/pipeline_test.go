package pipeline

import (
	"errors"
	"testing"

	"github.com/indigo-web/compressvary/config"
	"github.com/indigo-web/compressvary/http"
	"github.com/stretchr/testify/require"
)

type stage uint8

const (
	s1 stage = iota + 1
	s2
	s3
	terminal
)

type callstack struct {
	chain []stage
}

func (c *callstack) Push(s stage) {
	c.chain = append(c.chain, s)
}

func (c *callstack) Chain() []stage {
	return c.chain
}

func getStage(s stage, stack *callstack) Stage {
	return func(next Handler, response *http.Response) error {
		stack.Push(s)

		return next(response)
	}
}

func getTerminal(stack *callstack) Handler {
	return func(*http.Response) error {
		stack.Push(terminal)
		return nil
	}
}

func TestCompose(t *testing.T) {
	response := http.NewResponse(config.Default())

	t.Run("order", func(t *testing.T) {
		stack := new(callstack)
		handler := Compose(getTerminal(stack), getStage(s1, stack), getStage(s2, stack), getStage(s3, stack))
		require.NoError(t, handler(response))
		require.Equal(t, []stage{s1, s2, s3, terminal}, stack.Chain())
	})

	t.Run("no stages", func(t *testing.T) {
		stack := new(callstack)
		require.NoError(t, Compose(getTerminal(stack))(response))
		require.Equal(t, []stage{terminal}, stack.Chain())
	})

	t.Run("abort", func(t *testing.T) {
		stack := new(callstack)
		errAbort := errors.New("abort")
		failing := func(Handler, *http.Response) error {
			stack.Push(s2)
			return errAbort
		}

		handler := Compose(getTerminal(stack), getStage(s1, stack), failing, getStage(s3, stack))
		require.ErrorIs(t, handler(response), errAbort)
		require.Equal(t, []stage{s1, s2}, stack.Chain())
	})

	t.Run("reusable", func(t *testing.T) {
		stack := new(callstack)
		handler := Compose(Terminate, getStage(s1, stack))
		require.NoError(t, handler(response))
		require.NoError(t, handler(response))
		require.Equal(t, []stage{s1, s1}, stack.Chain())
	})
}
