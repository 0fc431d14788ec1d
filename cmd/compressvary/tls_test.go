package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/acme/autocert"
)

func TestAutocertCache(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("cache location is taken from XDG_CACHE_HOME on linux only")
	}

	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	cache, err := autocertCache()
	require.NoError(t, err)
	require.Equal(t, autocert.DirCache(filepath.Join(base, "compressvary-autocert")), cache)

	info, err := os.Stat(filepath.Join(base, "compressvary-autocert"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
