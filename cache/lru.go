package cache

// EvictFunc is called with the key and value of an entry pushed out of a full cache.
type EvictFunc[K comparable, V any] func(key K, value V)

// slot is one arena cell. next walks towards older entries, prev towards newer.
type slot[K comparable, V any] struct {
	key   K
	value V
	next  int
	prev  int
}

// LRU is a fixed-capacity least-recently-used cache.
//
// Entries live in a slot arena that grows until it holds capacity entries and
// is recycled in place afterwards; recency is a ring of slot indices, so no
// per-entry allocation happens once the cache is full.
//
// LRU is not safe for concurrent use. Wrap it (see OpenCache) when sharing it
// between goroutines.
type LRU[K comparable, V any] struct {
	index    map[K]int
	slots    []slot[K, V]
	capacity int
	head     int // most recently used
	tail     int // least recently used, next to be evicted
	onEvict  EvictFunc[K, V]
}

// New returns an empty cache holding at most capacity entries.
// It panics if capacity is not positive.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	return NewWithEvict[K, V](capacity, nil)
}

// NewWithEvict is like New but calls onEvict for every entry evicted to make
// room for a new key. Overwriting an existing key is not an eviction.
func NewWithEvict[K comparable, V any](capacity int, onEvict EvictFunc[K, V]) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: capacity must be positive")
	}

	return &LRU[K, V]{
		index:    make(map[K]int, capacity),
		slots:    make([]slot[K, V], 0, capacity),
		capacity: capacity,
		onEvict:  onEvict,
	}
}

// Get returns the value stored for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	i, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	c.touch(i)
	return c.slots[i].value, true
}

// Insert stores value under key and marks it most recently used.
//
// If key was already present its previous value is returned with true.
// Otherwise the zero value and false are returned; when the cache is full
// the least recently used entry is evicted to make room.
func (c *LRU[K, V]) Insert(key K, value V) (V, bool) {
	if i, ok := c.index[key]; ok {
		prev := c.slots[i].value
		c.slots[i].value = value
		c.touch(i)
		return prev, true
	}

	if len(c.slots) == c.capacity {
		c.recycle(key, value)
	} else {
		c.push(key, value)
	}

	var zero V
	return zero, false
}

// Peek returns the value for key without updating its recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	i, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.slots[i].value, true
}

// Contains reports whether key is present without updating its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Oldest returns the least recently used entry, the one the next insertion
// of a new key into a full cache would evict.
func (c *LRU[K, V]) Oldest() (K, V, bool) {
	if len(c.slots) == 0 {
		var (
			k K
			v V
		)
		return k, v, false
	}

	s := &c.slots[c.tail]
	return s.key, s.value, true
}

// Keys returns the keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.slots))
	c.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Range calls fn for each entry from most to least recently used until fn
// returns false. fn must not modify the cache.
func (c *LRU[K, V]) Range(fn func(key K, value V) bool) {
	i := c.head
	for range len(c.slots) {
		s := &c.slots[i]
		if !fn(s.key, s.value) {
			return
		}
		i = s.next
	}
}

// Len returns the number of entries in the cache.
func (c *LRU[K, V]) Len() int {
	return len(c.slots)
}

// Cap returns the maximum number of entries the cache holds.
func (c *LRU[K, V]) Cap() int {
	return c.capacity
}

// push appends a new slot and links it in as head. Only valid below capacity.
func (c *LRU[K, V]) push(key K, value V) {
	i := len(c.slots)
	if i == 0 {
		c.slots = append(c.slots, slot[K, V]{key: key, value: value})
		c.index[key] = 0
		c.head, c.tail = 0, 0
		return
	}

	c.slots = append(c.slots, slot[K, V]{
		key:   key,
		value: value,
		next:  c.head,
		prev:  c.tail,
	})
	c.slots[c.head].prev = i
	c.slots[c.tail].next = i
	c.index[key] = i
	c.head = i
}

// recycle overwrites the tail slot with a new entry and promotes it.
func (c *LRU[K, V]) recycle(key K, value V) {
	i := c.tail
	s := &c.slots[i]
	oldKey, oldValue := s.key, s.value

	delete(c.index, oldKey)
	s.key = key
	s.value = value
	c.index[key] = i
	c.touch(i)

	if c.onEvict != nil {
		c.onEvict(oldKey, oldValue)
	}
}

// touch moves live slot i to the head of the ring.
func (c *LRU[K, V]) touch(i int) {
	if i == c.head {
		return
	}

	// two-slot ring: i is the tail and both links already point at head
	if len(c.slots) == 2 {
		c.head, c.tail = c.tail, c.head
		return
	}

	next, prev := c.slots[i].next, c.slots[i].prev
	if i == c.tail {
		c.tail = prev
	}

	c.slots[prev].next = next
	c.slots[next].prev = prev

	c.slots[i].next = c.head
	c.slots[c.head].prev = i
	c.slots[i].prev = c.tail
	c.slots[c.tail].next = i

	c.head = i
}
