package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

func TestRedisAdapter_GetSet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	err := adapter.Set(ctx, "test_key", []byte("test_value"), 10*time.Second)
	assert.NoError(t, err)

	retrieved, err := adapter.Get(ctx, "test_key")
	assert.NoError(t, err)
	assert.Equal(t, []byte("test_value"), retrieved)
}

func TestRedisAdapter_GetNotFound(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "non_existent_key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisAdapter_SetNX(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	ok, err := adapter.SetNX(ctx, "once", []byte("first"), 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = adapter.SetNX(ctx, "once", []byte("second"), 0)
	require.NoError(t, err)
	assert.False(t, ok)

	val, err := adapter.Get(ctx, "once")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), val)
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "delete_test", []byte("value"), 0))
	assert.NoError(t, adapter.Delete(ctx, "delete_test"))

	_, err := adapter.Get(ctx, "delete_test")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisAdapter_TTL(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "ttl_test", []byte("expires_soon"), 1*time.Second))

	_, err := adapter.Get(ctx, "ttl_test")
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, "ttl_test")
	assert.Error(t, err)
}

func TestRedisAdapter_List(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	n, err := adapter.Append(ctx, "list", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = adapter.Append(ctx, "list", []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	items, err := adapter.Range(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, items)

	empty, err := adapter.Range(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRedisAdapter_SetMembers(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.AddMember(ctx, "set", "x"))
	require.NoError(t, adapter.AddMember(ctx, "set", "y"))
	require.NoError(t, adapter.AddMember(ctx, "set", "x"))

	members, err := adapter.Members(ctx, "set")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"x", "y"}, members)
}

func TestRedisAdapter_HashFields(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.SetField(ctx, "hash", "f1", []byte("v1")))
	require.NoError(t, adapter.SetField(ctx, "hash", "f2", []byte("v2")))

	v, err := adapter.Field(ctx, "hash", "f1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	_, err = adapter.Field(ctx, "hash", "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := adapter.Fields(ctx, "hash")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, []byte("v2"), all["f2"])
}

func TestRedisAdapter_Ping(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	assert.NoError(t, adapter.Ping(context.Background()))
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
