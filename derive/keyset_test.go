package derive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wallet-std/descriptors/derive"
)

func TestKeySetInsertionOrder(t *testing.T) {
	keyset := derive.NewKeySet[string, int]()
	keyset.Insert("c", 1)
	keyset.Insert("a", 2)
	keyset.Insert("b", 3)

	require.Equal(t, 3, keyset.Len())
	require.Equal(t, []string{"c", "a", "b"}, keyset.Keys())

	// Re-insertion overwrites the value but keeps the position.
	keyset.Insert("a", 20)
	require.Equal(t, 3, keyset.Len())
	require.Equal(t, []string{"c", "a", "b"}, keyset.Keys())

	value, ok := keyset.Get("a")
	require.True(t, ok)
	require.Equal(t, 20, value)

	_, ok = keyset.Get("d")
	require.False(t, ok)
	require.True(t, keyset.Contains("b"))
	require.False(t, keyset.Contains("d"))
}

func TestKeySetForEach(t *testing.T) {
	keyset := derive.NewKeySet[string, int]()
	keyset.Insert("a", 1)
	keyset.Insert("b", 2)
	keyset.Insert("c", 3)

	var visited []string
	keyset.ForEach(func(key string, value int) bool {
		visited = append(visited, key)
		return true
	})
	require.Equal(t, []string{"a", "b", "c"}, visited)

	visited = nil
	keyset.ForEach(func(key string, value int) bool {
		visited = append(visited, key)
		return len(visited) < 2
	})
	require.Equal(t, []string{"a", "b"}, visited)
}

func TestKeySetEqual(t *testing.T) {
	eq := func(a, b int) bool { return a == b }

	a := derive.NewKeySet[string, int]()
	a.Insert("x", 1)
	a.Insert("y", 2)

	b := derive.NewKeySet[string, int]()
	b.Insert("x", 1)
	b.Insert("y", 2)
	require.True(t, a.Equal(b, eq))

	// Same entries, different order.
	c := derive.NewKeySet[string, int]()
	c.Insert("y", 2)
	c.Insert("x", 1)
	require.False(t, a.Equal(c, eq))

	// Different value.
	d := derive.NewKeySet[string, int]()
	d.Insert("x", 1)
	d.Insert("y", 3)
	require.False(t, a.Equal(d, eq))

	// Different size.
	e := derive.NewKeySet[string, int]()
	e.Insert("x", 1)
	require.False(t, a.Equal(e, eq))
}
