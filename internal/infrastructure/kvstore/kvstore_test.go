package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_LoadSave(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, found, err := s.Load(ctx, "ingredients")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, "ingredients", `[]`))
	require.NoError(t, s.Save(ctx, "ingredients", `[{"name":"Beans"}]`))

	v, found, err := s.Load(ctx, "ingredients")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"name":"Beans"}]`, v)
	assert.Equal(t, []string{"ingredients"}, s.Keys())
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s := WithPrefix("pos_", inner)

	require.NoError(t, s.Save(ctx, "products", `[]`))
	assert.ElementsMatch(t, []string{"pos_products"}, inner.Keys())

	v, found, err := s.Load(ctx, "products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, v)

	_, found, _ = inner.Load(ctx, "products")
	assert.False(t, found)
}

func TestWithPrefix_EmptyPrefixReturnsStore(t *testing.T) {
	inner := NewMemoryStore()
	assert.Same(t, inner, WithPrefix("", inner))
}
