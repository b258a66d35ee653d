package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todomvc/internal/store"
)

// Set TODOMVC_TEST_REDIS=host:port to run against a live server.
func TestRoundTrip(t *testing.T) {
	addr := os.Getenv("TODOMVC_TEST_REDIS")
	if addr == "" {
		t.Skip("TODOMVC_TEST_REDIS not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, addr, 0)
	require.NoError(t, err)
	defer s.Close()

	key := "todomvc-test-" + uuid.NewString()
	t.Cleanup(func() { s.rdb.Del(context.Background(), key) })

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, key, []byte(`[]`)))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestOpenUnreachable(t *testing.T) {
	_, err := Open(context.Background(), "127.0.0.1:1", 0)
	assert.Error(t, err)
}
