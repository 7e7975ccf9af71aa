package persistence

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LimiterStorage {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	storage := NewLimiterStorage(client, "growid:test:"+uuid.NewString()+":")
	t.Cleanup(func() { _ = storage.Reset() })
	return storage
}

func TestLimiterStorageRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("ip", []byte("counter"), time.Minute))
	got, err = s.Get("ip")
	require.NoError(t, err)
	assert.Equal(t, []byte("counter"), got)

	require.NoError(t, s.Delete("ip"))
	got, err = s.Get("ip")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLimiterStorageReset(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.Set("a", []byte("1"), time.Minute))
	require.NoError(t, s.Set("b", []byte("2"), time.Minute))
	require.NoError(t, s.Reset())

	for _, key := range []string{"a", "b"} {
		got, err := s.Get(key)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestLimiterStorageIgnoresEmptyKeys(t *testing.T) {
	s := NewLimiterStorage(nil, "p:")

	got, err := s.Get("")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, s.Set("", []byte("x"), time.Second))
	assert.NoError(t, s.Delete(""))
	assert.NoError(t, s.Close())
}
