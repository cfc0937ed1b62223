package redis

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSequence(t *testing.T) (*Sequence, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Dial(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	logger, _ := test.NewNullLogger()
	return NewSequence(client, "", logger), mr
}

func TestSequence_StartsAtZero(t *testing.T) {
	seq, _ := newSequence(t)
	n, err := seq.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestSequence_NextIncrements(t *testing.T) {
	seq, mr := newSequence(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	v, err := mr.Get(DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	cur, err := seq.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cur)
}

func TestSequence_ConcurrentUnique(t *testing.T) {
	seq, _ := newSequence(t)
	ctx := context.Background()

	var (
		mu   sync.Mutex
		seen = map[int64]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := seq.Next(ctx)
			assert.NoError(t, err)
			mu.Lock()
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}

func TestSequence_ServerDown(t *testing.T) {
	seq, mr := newSequence(t)
	mr.Close()
	_, err := seq.Next(context.Background())
	assert.Error(t, err)
}

func TestDial_BadURL(t *testing.T) {
	_, err := Dial(context.Background(), "://nope")
	assert.Error(t, err)
}

func TestSequence_CorruptValueCountsAsZero(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Dial(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()
	logger, hook := test.NewNullLogger()
	seq := NewSequence(client, "", logger)
	ctx := context.Background()

	require.NoError(t, mr.Set(DefaultKey, "garbage"))

	cur, err := seq.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cur)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	n, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSequence_NegativeValueCountsAsZero(t *testing.T) {
	seq, mr := newSequence(t)
	require.NoError(t, mr.Set(DefaultKey, "-5"))

	cur, err := seq.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), cur)

	n, err := seq.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
