package pool

import (
	"hash/maphash"

	"github.com/wippyai/resource-core/errors"
)

const (
	hashMask   = 0b11_1111
	numBuckets = hashMask + 1
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Map is a hash map whose buckets are pooled vectors. It trades raw speed for
// not generating garbage on insert/remove.
//
// Iteration order is insertion order within a bucket and undefined across
// buckets.
type Map[K comparable, V any] struct {
	hash    func(K) uint64
	buckets [numBuckets]*Vector[entry[K, V]]
	arrays  *ArrayPool[entry[K, V]]
	count   int
}

// NewMap creates a map. hash may be nil, in which case keys are hashed with
// hash/maphash.
func NewMap[K comparable, V any](hash func(K) uint64) *Map[K, V] {
	if hash == nil {
		seed := maphash.MakeSeed()
		hash = func(k K) uint64 { return maphash.Comparable(seed, k) }
	}
	return &Map[K, V]{
		hash:   hash,
		arrays: Shared[entry[K, V]](),
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.count
}

// Add inserts a new entry. Adding an existing key fails; use Set to upsert.
func (m *Map[K, V]) Add(key K, value V) error {
	b := m.bucketFor(key, true)
	if indexIn(b, key) >= 0 {
		return errors.DuplicateKey(errors.PhaseContainer, key)
	}
	b.Add(entry[K, V]{key: key, value: value})
	m.count++
	return nil
}

// Set inserts or replaces the entry for key.
func (m *Map[K, V]) Set(key K, value V) {
	b := m.bucketFor(key, true)
	if i := indexIn(b, key); i >= 0 {
		b.items[i].value = value
		return
	}
	b.Add(entry[K, V]{key: key, value: value})
	m.count++
}

// Get returns the value for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	b := m.bucketFor(key, false)
	if b != nil {
		if i := indexIn(b, key); i >= 0 {
			return b.items[i].value, true
		}
	}
	var zero V
	return zero, false
}

// ContainsKey reports whether key is present.
func (m *Map[K, V]) ContainsKey(key K) bool {
	b := m.bucketFor(key, false)
	return b != nil && indexIn(b, key) >= 0
}

// Remove deletes the entry for key, reporting whether it existed.
func (m *Map[K, V]) Remove(key K) bool {
	b := m.bucketFor(key, false)
	if b == nil {
		return false
	}
	i := indexIn(b, key)
	if i < 0 {
		return false
	}
	_ = b.RemoveAt(i)
	m.count--
	return true
}

// Each calls fn for every entry until fn returns false. fn must not mutate
// the map.
func (m *Map[K, V]) Each(fn func(K, V) bool) {
	for _, b := range m.buckets {
		if b == nil {
			continue
		}
		for _, e := range b.Slice() {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Keys appends every key to dst and returns it.
func (m *Map[K, V]) Keys(dst []K) []K {
	m.Each(func(k K, _ V) bool {
		dst = append(dst, k)
		return true
	})
	return dst
}

// Clear removes all entries, keeping bucket storage.
func (m *Map[K, V]) Clear() {
	for _, b := range m.buckets {
		if b != nil {
			b.Clear()
		}
	}
	m.count = 0
}

// Release returns all bucket storage to the pool and empties the map.
func (m *Map[K, V]) Release() {
	for i, b := range m.buckets {
		if b != nil {
			b.Release()
			m.buckets[i] = nil
		}
	}
	m.count = 0
}

func (m *Map[K, V]) bucketFor(key K, create bool) *Vector[entry[K, V]] {
	idx := m.hash(key) & hashMask
	b := m.buckets[idx]
	if b == nil && create {
		b = NewVectorFrom(m.arrays, DefaultInitialCapacity)
		m.buckets[idx] = b
	}
	return b
}

func indexIn[K comparable, V any](b *Vector[entry[K, V]], key K) int {
	for i := 0; i < b.count; i++ {
		if b.items[i].key == key {
			return i
		}
	}
	return -1
}
