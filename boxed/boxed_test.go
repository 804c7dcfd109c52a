package boxed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoxRoundTrip(t *testing.T) {
	b := New(int32(5))
	got, ok := Load[int32](b)
	require.True(t, ok)
	require.Equal(t, int32(5), got)

	_, ok = Load[int64](b)
	require.False(t, ok)

	p, ok := Mut[int32](b)
	require.True(t, ok)
	*p = 13
	got, _ = Load[int32](b)
	require.Equal(t, int32(13), got)
}

func TestBoxTake(t *testing.T) {
	b := New("hello")
	_, ok := Take[int](b)
	require.False(t, ok)
	require.False(t, b.Empty())

	s, ok := Take[string](b)
	require.True(t, ok)
	require.Equal(t, "hello", s)
	require.True(t, b.Empty())

	_, ok = Take[string](b)
	require.False(t, ok)
}
