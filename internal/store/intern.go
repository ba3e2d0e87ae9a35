package store

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

// numShards is the number of independent lock domains. Interning two
// payloads with different structural hashes almost never contends.
const numShards = 32

// Ref is a reference-counted canonical entry for a payload of type T.
//
// A Ref is handed out by Interner.Intern and compared by identity: two
// Refs from the same interner are the same entry iff they are the same
// pointer (equivalently, have the same ID). The payload is immutable
// after interning.
type Ref[T any] struct {
	val     T
	id      uint64
	hash    uint64
	holders atomic.Int64
}

// Value returns the interned payload.
func (r *Ref[T]) Value() T { return r.val }

// ID returns the entry's unique identifier within its interner.
// IDs start at 1; 0 is reserved as "no entry" for downstream hashing.
func (r *Ref[T]) ID() uint64 { return r.id }

// Holders returns the current external holder count.
func (r *Ref[T]) Holders() int64 { return r.holders.Load() }

// Retain adds an external holder and returns the same entry.
func (r *Ref[T]) Retain() *Ref[T] {
	r.holders.Add(1)
	return r
}

// Release drops an external holder. Once the count reaches zero the
// entry becomes eligible for eviction by the next Collect.
func (r *Ref[T]) Release() {
	r.holders.Add(-1)
}

type shard[T any] struct {
	mu      sync.RWMutex
	buckets map[uint64][]*Ref[T]
}

// Interner is a sharded hash-consing cache for payloads of type T.
//
// The caller supplies the structural hash and equality; the interner
// resolves hash collisions by scanning the bucket with the equality
// function (identity tie-breaking).
type Interner[T any] struct {
	hash    func(T) uint64
	eq      func(T, T) bool
	release func(T)
	logger  *slog.Logger
	nextID  atomic.Uint64
	shards  [numShards]shard[T]
}

// Option configures an Interner.
type Option[T any] func(*Interner[T])

// WithLogger sets the logger used for collection statistics.
// The default logger discards everything.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(in *Interner[T]) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithRelease registers a hook invoked with a payload whose ownership
// the store has dropped: either a candidate discarded because an equal
// payload was already resident, or a payload evicted by Collect.
//
// The ir package uses this to release the holder counts a node carries
// on its children, so collection cascades across chained Collect calls.
func WithRelease[T any](release func(T)) Option[T] {
	return func(in *Interner[T]) {
		in.release = release
	}
}

// New creates an empty interner with the given structural hash and
// equality functions.
func New[T any](hash func(T) uint64, eq func(T, T) bool, opts ...Option[T]) *Interner[T] {
	in := &Interner[T]{
		hash:   hash,
		eq:     eq,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for i := range in.shards {
		in.shards[i].buckets = make(map[uint64][]*Ref[T])
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Intern returns the canonical entry for v, bumping its holder count.
// If an equal payload is resident its entry is returned and v is
// discarded (triggering the release hook); otherwise v is inserted.
// Interning never fails.
func (in *Interner[T]) Intern(v T) *Ref[T] {
	h := in.hash(v)
	s := &in.shards[h%numShards]

	// Fast path: read-lock lookup.
	s.mu.RLock()
	if r := s.find(in.eq, h, v); r != nil {
		r.holders.Add(1)
		s.mu.RUnlock()
		in.discard(v)
		return r
	}
	s.mu.RUnlock()

	s.mu.Lock()
	// Re-check under the write lock: another goroutine may have
	// inserted an equal payload between the two lookups.
	if r := s.find(in.eq, h, v); r != nil {
		r.holders.Add(1)
		s.mu.Unlock()
		in.discard(v)
		return r
	}
	r := &Ref[T]{val: v, id: in.nextID.Add(1), hash: h}
	r.holders.Store(1)
	s.buckets[h] = append(s.buckets[h], r)
	s.mu.Unlock()
	return r
}

func (s *shard[T]) find(eq func(T, T) bool, h uint64, v T) *Ref[T] {
	for _, r := range s.buckets[h] {
		if eq(r.val, v) {
			return r
		}
	}
	return nil
}

func (in *Interner[T]) discard(v T) {
	if in.release != nil {
		in.release(v)
	}
}

// Collect evicts every entry whose holder count is zero and returns the
// number evicted. Evicted payloads are passed to the release hook, so a
// chain of entries each held only by its parent collects over repeated
// calls, one level per call.
func (in *Interner[T]) Collect() int {
	var evicted []T
	for i := range in.shards {
		s := &in.shards[i]
		s.mu.Lock()
		for h, bucket := range s.buckets {
			kept := bucket[:0]
			for _, r := range bucket {
				if r.holders.Load() == 0 {
					evicted = append(evicted, r.val)
				} else {
					kept = append(kept, r)
				}
			}
			if len(kept) == 0 {
				delete(s.buckets, h)
			} else {
				s.buckets[h] = kept
			}
		}
		s.mu.Unlock()
	}
	for _, v := range evicted {
		in.discard(v)
	}
	if len(evicted) > 0 {
		in.logger.Debug("collected interned entries", "evicted", len(evicted))
	}
	return len(evicted)
}

// Len returns the number of resident entries.
func (in *Interner[T]) Len() int {
	n := 0
	for i := range in.shards {
		s := &in.shards[i]
		s.mu.RLock()
		for _, bucket := range s.buckets {
			n += len(bucket)
		}
		s.mu.RUnlock()
	}
	return n
}
