// Package keylock serialises work on the same key across goroutines.
//
// A Registry hands out one exclusive lock per key. Entries are reference
// counted and removed as soon as nobody holds or waits on them, so memory
// stays proportional to the number of keys in flight rather than the number
// of keys ever seen.
package keylock

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aevon-lab/machine-events/internal/core/partition"
)

// ErrLockAborted is returned when the context ends before the lock is granted.
var ErrLockAborted = errors.New("key lock wait aborted")

// DefaultShards is used when a Registry is created with shards <= 0.
const DefaultShards = 64

// Unlock releases a lock obtained from a Locker. Calling it more than once is a no-op.
type Unlock func()

// Locker grants exclusive access per key. The in-process Registry is one
// implementation; a deployment spanning several instances can plug in a
// distributed one behind the same contract.
type Locker interface {
	// Lock blocks until key is exclusively held by the caller or ctx ends.
	Lock(ctx context.Context, key string) (Unlock, error)

	// LockAll acquires every key in a deadlock-free global order and returns
	// one Unlock that releases all of them.
	LockAll(ctx context.Context, keys []string) (Unlock, error)
}

type entry struct {
	sem  chan struct{}
	refs int
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// Registry is the in-process Locker. The zero value is not usable; call NewRegistry.
type Registry struct {
	shards []*shard
}

// NewRegistry creates a Registry whose key map is split into n shards to keep
// bookkeeping contention low under many concurrent batches.
func NewRegistry(n int) *Registry {
	if n <= 0 {
		n = DefaultShards
	}
	r := &Registry{shards: make([]*shard, n)}
	for i := range r.shards {
		r.shards[i] = &shard{entries: make(map[string]*entry)}
	}
	return r
}

func (r *Registry) shardFor(key string) *shard {
	return r.shards[partition.For(key, len(r.shards))]
}

// Lock acquires the lock for key. Distinct keys never block each other.
func (r *Registry) Lock(ctx context.Context, key string) (Unlock, error) {
	s := r.shardFor(key)

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		s.entries[key] = e
	}
	e.refs++
	s.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		r.release(s, key, e)
		return nil, errors.Join(ErrLockAborted, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			r.release(s, key, e)
		})
	}, nil
}

// LockAll acquires keys in sorted order, skipping duplicates. On failure every
// lock taken so far is released before the error is returned.
func (r *Registry) LockAll(ctx context.Context, keys []string) (Unlock, error) {
	ordered := uniqueSorted(keys)
	unlocks := make([]Unlock, 0, len(ordered))

	releaseAll := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, key := range ordered {
		unlock, err := r.Lock(ctx, key)
		if err != nil {
			releaseAll()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}

	var once sync.Once
	return func() { once.Do(releaseAll) }, nil
}

// Len reports how many keys currently have a holder or waiter.
func (r *Registry) Len() int {
	total := 0
	for _, s := range r.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

func (r *Registry) release(s *shard, key string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(s.entries, key)
	}
}

func uniqueSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
