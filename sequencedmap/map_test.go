package sequencedmap_test

import (
	"slices"
	"testing"

	"github.com/speakeasy-api/oasgraph/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Set_PreservesOrder_Success(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New(
		sequencedmap.NewElem("b", 2),
		sequencedmap.NewElem("a", 1),
	)
	m.Set("c", 3)

	assert.Equal(t, []string{"b", "a", "c"}, slices.Collect(m.Keys()))
	assert.Equal(t, []int{2, 1, 3}, slices.Collect(m.Values()))
	assert.Equal(t, 3, m.Len())
}

func TestMap_Set_ReplacesInPlace_Success(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 10)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"a", "b"}, slices.Collect(m.Keys()))
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestMap_Delete_Success(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New(
		sequencedmap.NewElem("a", 1),
		sequencedmap.NewElem("b", 2),
		sequencedmap.NewElem("c", 3),
	)
	m.Delete("b")
	m.Delete("missing")

	assert.False(t, m.Has("b"))
	assert.Equal(t, []string{"a", "c"}, slices.Collect(m.Keys()))
}

func TestMap_NilSafe_Success(t *testing.T) {
	t.Parallel()

	var m *sequencedmap.Map[string, int]

	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has("a"))
	assert.Equal(t, 0, m.GetOrZero("a"))
	assert.Empty(t, slices.Collect(m.Keys()))

	b, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestMap_ZeroValue_Set_Success(t *testing.T) {
	t.Parallel()

	var m sequencedmap.Map[string, string]
	m.Set("k", "v")

	assert.Equal(t, "v", m.GetOrZero("k"))
}

func TestMap_MarshalJSON_Success(t *testing.T) {
	t.Parallel()

	m := sequencedmap.From(func(yield func(string, int) bool) {
		_ = yield("z", 1) && yield("a", 2)
	})

	b, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"z":1,"a":2}`, string(b))
	assert.Equal(t, `{"z":1,"a":2}`, string(b))
}
