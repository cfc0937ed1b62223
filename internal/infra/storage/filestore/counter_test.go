package filestore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCounter(t *testing.T) (*Counter, string) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "data", "quote_counter")
	c, err := NewCounter(path, logger)
	require.NoError(t, err)
	return c, path
}

func TestCounter_StartsAtZero(t *testing.T) {
	c, _ := newTestCounter(t)
	cur, err := c.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), cur)
}

func TestCounter_NextPersists(t *testing.T) {
	c, path := newTestCounter(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := c.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3", string(raw))

	reopened, err := NewCounter(path, nil)
	require.NoError(t, err)
	n, err := reopened.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestCounter_CorruptFileIsZero(t *testing.T) {
	c, path := newTestCounter(t)
	require.NoError(t, os.WriteFile(path, []byte("NaN"), 0o644))

	n, err := c.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCounter_ConcurrentNextIsUnique(t *testing.T) {
	c, _ := newTestCounter(t)
	ctx := context.Background()

	const workers = 8
	const per = 10
	var mu sync.Mutex
	seen := map[int64]bool{}
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < per; j++ {
				n, err := c.Next(ctx)
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*per)
	cur, err := c.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(workers*per), cur)
}

func TestCounter_CancelledContext(t *testing.T) {
	c, _ := newTestCounter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
	cur, _ := c.Current(context.Background())
	assert.Equal(t, int64(0), cur)
}
