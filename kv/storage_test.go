package kv

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func collectPairs(s *Storage) (pairs []string) {
	for key, value := range s.Pairs() {
		pairs = append(pairs, string(key)+": "+string(value))
	}

	return pairs
}

func collectValues(s *Storage, key string) (values []string) {
	for value := range s.Values(key) {
		values = append(values, string(value))
	}

	return values
}

func removeAll(s *Storage, key string) *Storage {
	for f := range s.Fields() {
		if strings.EqualFold(string(f.Key), key) {
			s.Remove(f)
		}
	}

	return s
}

func TestStorage(t *testing.T) {
	getHeaders := func() *Storage {
		return NewSegmented(2).
			AddString("Foo", "bar").
			AddString("Hello", "World").
			AddString("Lorem", "ipsum").
			AddString("hello", "Pavlo")
	}

	t.Run("add", func(t *testing.T) {
		kv := getHeaders()
		require.Equal(t, 4, kv.Len())
		require.Equal(t, 2, kv.Segments())
		require.Equal(t, []string{"Foo: bar", "Hello: World", "Lorem: ipsum", "hello: Pavlo"}, collectPairs(kv))
		require.Equal(t, []string{"World", "Pavlo"}, collectValues(kv, "HELLO"))
	})

	t.Run("remove", func(t *testing.T) {
		kv := removeAll(getHeaders(), "HELLO")

		require.Equal(t, 2, kv.Len())
		require.Equal(t, []string{"Foo: bar", "Lorem: ipsum"}, collectPairs(kv))
		_, found := kv.Get("hello")
		require.False(t, found)
		// tombstones keep their seats
		require.Equal(t, 2, kv.Segments())
	})

	t.Run("remove twice", func(t *testing.T) {
		kv := getHeaders()
		for f := range kv.Fields() {
			kv.Remove(f)
			kv.Remove(f)
			require.True(t, f.Removed())
			require.Nil(t, f.Key)
			require.Nil(t, f.Value)
			break
		}

		require.Equal(t, 3, kv.Len())
	})

	t.Run("append after tombstones", func(t *testing.T) {
		kv := removeAll(getHeaders(), "foo").AddString("Vary", "Accept")
		require.Equal(t, []string{"Hello: World", "Lorem: ipsum", "hello: Pavlo", "Vary: Accept"}, collectPairs(kv))
		require.Equal(t, 3, kv.Segments())
	})

	t.Run("field pointers survive growth", func(t *testing.T) {
		kv := NewSegmented(1).AddString("A", "1")
		var first *Field
		for f := range kv.Fields() {
			first = f
		}

		for i := 0; i < 10; i++ {
			kv.AddString(fmt.Sprintf("K%d", i), "v")
		}

		require.Equal(t, "A", string(first.Key))
		kv.Remove(first)
		require.Equal(t, 10, kv.Len())
		require.Equal(t, 11, kv.Segments())
	})

	t.Run("get", func(t *testing.T) {
		kv := getHeaders()
		value, found := kv.Get("lorem")
		require.True(t, found)
		require.Equal(t, "ipsum", string(value))

		_, found = kv.Get("Vary")
		require.False(t, found)
	})

	t.Run("clear and reuse", func(t *testing.T) {
		kv := getHeaders().Clear()
		require.True(t, kv.Empty())
		require.Equal(t, 1, kv.Segments())
		require.Empty(t, collectPairs(kv))

		kv.AddString("a", "b").AddString("c", "d").AddString("e", "f")
		require.Equal(t, []string{"a: b", "c: d", "e: f"}, collectPairs(kv))
		require.Equal(t, 2, kv.Segments())
	})

	t.Run("early break", func(t *testing.T) {
		kv := getHeaders()
		var seen int
		for range kv.Pairs() {
			seen++
			if seen == 2 {
				break
			}
		}

		require.Equal(t, 2, seen)
	})
}
