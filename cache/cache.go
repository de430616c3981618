package cache

// cache/cache.go

import (
	"sync"

	"github.com/evanjt06/ringlru/internal"
	"go.uber.org/zap"
)

// Stats holds current item counts and operation counters.
type Stats struct {
	Items     int // entries currently in the cache
	Capacity  int
	Hits      int // Get calls that found the key
	Misses    int // Get calls that did not
	Inserts   int // Set calls that added a new key
	Updates   int // Set calls that replaced the value of an existing key
	Evictions int // entries dropped to make room for a new key
	Rejected  int // calls refused by key validation
}

// OpenCache is an LRU safe for concurrent use. Every call holds one mutex
// around the underlying LRU and logs what it did.
type OpenCache[K comparable, V any] struct {
	mu     sync.Mutex
	lru    *LRU[K, V]
	stats  Stats
	logger *zap.SugaredLogger
}

// constructor, panics if capacity is not positive
func NewOpenCache[K comparable, V any](capacity int, logger *zap.SugaredLogger) *OpenCache[K, V] {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	oc := &OpenCache[K, V]{logger: logger}
	oc.lru = NewWithEvict[K, V](capacity, oc.evicted)
	return oc
}

// runs with mu held, from inside lru.Insert
func (oc *OpenCache[K, V]) evicted(key K, _ V) {
	oc.stats.Evictions++
	oc.logger.Debugw("Deleted entry due to capacity",
		"key", key,
	)
}

// flush all logs
func (oc *OpenCache[K, V]) Close() error {
	return oc.logger.Sync()
}

func (oc *OpenCache[K, V]) Get(key K) (V, bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	var zero V
	if !oc.valid(key) {
		return zero, false
	}

	v, ok := oc.lru.Get(key)
	if !ok {
		oc.stats.Misses++
		return zero, false
	}

	oc.stats.Hits++
	oc.logger.Debugw("Moved entry to front of LRU",
		"key", key,
	)
	return v, true
}

// Set stores value under key. It returns the replaced value and true when
// key was already present.
func (oc *OpenCache[K, V]) Set(key K, value V) (V, bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if !oc.valid(key) {
		var zero V
		return zero, false
	}

	prev, replaced := oc.lru.Insert(key, value)
	if replaced {
		oc.stats.Updates++
		oc.logger.Debugw("Replaced entry and moved it to front of LRU",
			"key", key,
		)
	} else {
		oc.stats.Inserts++
		oc.logger.Debugw("Inserted entry at front of LRU",
			"key", key,
			"len", oc.lru.Len(),
		)
	}
	return prev, replaced
}

// Peek returns the value for key without touching recency or hit counters.
func (oc *OpenCache[K, V]) Peek(key K) (V, bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if !oc.valid(key) {
		var zero V
		return zero, false
	}
	return oc.lru.Peek(key)
}

func (oc *OpenCache[K, V]) Contains(key K) bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if !oc.valid(key) {
		return false
	}
	return oc.lru.Contains(key)
}

// Oldest returns the entry that would be evicted next.
func (oc *OpenCache[K, V]) Oldest() (K, V, bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	return oc.lru.Oldest()
}

// Keys returns keys in MRU -> LRU order.
func (oc *OpenCache[K, V]) Keys() []K {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	return oc.lru.Keys()
}

func (oc *OpenCache[K, V]) Len() int {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	return oc.lru.Len()
}

func (oc *OpenCache[K, V]) Cap() int {
	return oc.lru.Cap()
}

func (oc *OpenCache[K, V]) Stats() Stats {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	s := oc.stats
	s.Items = oc.lru.Len()
	s.Capacity = oc.lru.Cap()
	return s
}

// Log writes every entry, MRU first, to the logger at info level.
func (oc *OpenCache[K, V]) Log() {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	oc.logger.Infow("Cache contents", "len", oc.lru.Len(), "cap", oc.lru.Cap())
	rank := 0
	oc.lru.Range(func(k K, v V) bool {
		oc.logger.Infow("Entry", "rank", rank, "key", k, "value", v)
		rank++
		return true
	})
}

func (oc *OpenCache[K, V]) valid(key K) bool {
	if err := internal.ValidateKey(key); err != nil {
		oc.stats.Rejected++
		// should be in key value pairs
		oc.logger.Debugw("Invalid key rejected", "key", key, "error", err)
		return false
	}
	return true
}
