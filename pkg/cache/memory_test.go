package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "chave", "valor", time.Minute))

	var got string
	found, err := c.Get(ctx, "chave", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "valor", got)
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute, zaptest.NewLogger(t))

	var got string
	found, err := c.Get(context.Background(), "inexistente", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Struct(t *testing.T) {
	type role struct {
		ID   int64
		Name string
	}

	c := NewMemoryCache(time.Minute, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "role:BASIC", &role{ID: 2, Name: "BASIC"}, time.Minute))

	var got role
	found, err := c.Get(ctx, "role:BASIC", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, "BASIC", got.Name)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "chave", "valor", time.Minute))
	require.NoError(t, c.Delete(ctx, "chave"))

	var got string
	found, err := c.Get(ctx, "chave", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "efêmera", "valor", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var got string
	found, err := c.Get(ctx, "efêmera", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNoOpCache(t *testing.T) {
	c := &NoOpCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "chave", "valor", time.Minute))

	var got string
	found, err := c.Get(ctx, "chave", &got)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, c.Delete(ctx, "chave"))
	assert.NoError(t, c.Ping(ctx))
}
