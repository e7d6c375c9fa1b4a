package keylock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistry_SameKeySerialises(t *testing.T) {
	reg := NewRegistry(4)
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := reg.Lock(ctx, "E-1")
			require.NoError(t, err)
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(100 * time.Microsecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), maxInside)
	require.Zero(t, reg.Len(), "entries are removed once nobody holds or waits")
}

func TestRegistry_DistinctKeysDoNotBlock(t *testing.T) {
	reg := NewRegistry(1) // same shard for every key
	ctx := context.Background()

	unlockA, err := reg.Lock(ctx, "A")
	require.NoError(t, err)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB, err := reg.Lock(ctx, "B")
		require.NoError(t, err)
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on B blocked behind A")
	}
}

func TestRegistry_ContextCancelWhileWaiting(t *testing.T) {
	reg := NewRegistry(0)

	unlock, err := reg.Lock(context.Background(), "E-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = reg.Lock(ctx, "E-1")
	require.ErrorIs(t, err, ErrLockAborted)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, reg.Len(), "aborted waiter must drop its reference")

	unlock()
	require.Zero(t, reg.Len())
}

func TestRegistry_UnlockIsIdempotent(t *testing.T) {
	reg := NewRegistry(2)
	ctx := context.Background()

	unlock, err := reg.Lock(ctx, "E-1")
	require.NoError(t, err)
	unlock()
	unlock()

	unlock2, err := reg.Lock(ctx, "E-1")
	require.NoError(t, err)
	unlock2()
	require.Zero(t, reg.Len())
}

func TestRegistry_LockAllOverlappingSetsDoNotDeadlock(t *testing.T) {
	reg := NewRegistry(8)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var counter int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		keys := []string{"A", "B", "C"}
		if i%2 == 0 {
			keys = []string{"C", "B", "A", "A"}
		}
		wg.Add(1)
		go func(keys []string) {
			defer wg.Done()
			unlock, err := reg.LockAll(ctx, keys)
			require.NoError(t, err)
			atomic.AddInt64(&counter, 1)
			unlock()
		}(keys)
	}
	wg.Wait()

	require.Equal(t, int64(20), counter)
	require.Zero(t, reg.Len())
}

func TestRegistry_LockAllReleasesPartialOnAbort(t *testing.T) {
	reg := NewRegistry(8)

	holdB, err := reg.Lock(context.Background(), "B")
	require.NoError(t, err)
	defer holdB()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = reg.LockAll(ctx, []string{"A", "B"})
	require.ErrorIs(t, err, ErrLockAborted)

	// A must be free again.
	unlockA, err := reg.Lock(context.Background(), "A")
	require.NoError(t, err)
	unlockA()
}

func TestUniqueSorted(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, uniqueSorted([]string{"c", "a", "b", "a"}))
	require.Empty(t, uniqueSorted(nil))
}
