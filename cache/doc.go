// Package cache implements a fixed-capacity LRU cache with O(1) Get and Insert.
//
// LRU keeps its entries in a slot arena and orders them with a ring of slot
// indices instead of a pointer-linked list. Once the cache is full, inserting
// a new key reuses the least recently used slot in place.
//
//	c := cache.New[string, int](2)
//	c.Insert("a", 1)
//	c.Insert("b", 2)
//	c.Get("a")       // 1, true; "b" is now least recently used
//	c.Insert("c", 3) // evicts "b"
//
// LRU is meant for a single owner. OpenCache wraps it with a mutex, key
// validation, counters and zap logging for shared use.
package cache
