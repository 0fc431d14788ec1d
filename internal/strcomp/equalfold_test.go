package strcomp

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestEqualFold(t *testing.T) {
	t.Run("equal strings", func(t *testing.T) {
		require.True(t, EqualFold([]byte("abc"), []byte("abc")))
		require.True(t, EqualFoldString([]byte("Vary"), "Vary"))
	})

	t.Run("different cases", func(t *testing.T) {
		require.True(t, EqualFold([]byte("abc"), []byte("ABC")))
		require.True(t, EqualFold([]byte("ABC"), []byte("abc")))
		require.True(t, EqualFoldString([]byte("aCCEPT-eNCODING"), "Accept-Encoding"))
	})

	t.Run("different strings equal length", func(t *testing.T) {
		require.False(t, EqualFold([]byte("abc"), []byte("def")))
		require.False(t, EqualFoldString([]byte("vart"), "Vary"))
	})

	t.Run("different strings by length", func(t *testing.T) {
		require.False(t, EqualFold([]byte("abc"), []byte("define")))
		require.False(t, EqualFoldString([]byte("Var"), "Vary"))
	})

	t.Run("non-letters", func(t *testing.T) {
		require.False(t, EqualFold([]byte("@"), []byte("`")))
		require.False(t, EqualFold([]byte("["), []byte("{")))
		require.True(t, EqualFold([]byte("x-1_2"), []byte("X-1_2")))
	})
}
