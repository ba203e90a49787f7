package pool

import (
	"github.com/wippyai/resource-core/errors"
)

// DefaultInitialCapacity is the capacity used when none is requested.
const DefaultInitialCapacity = 4

var vectorPath = []string{"vector"}

// Vector is a growable array whose storage is rented from an ArrayPool.
// Indices are stable until an Insert or RemoveAt shifts them.
type Vector[T any] struct {
	arrays  *ArrayPool[T]
	items   []T
	count   int
	version uint64
}

// NewVector creates a vector backed by the shared pool for T.
func NewVector[T any](initialCapacity int) *Vector[T] {
	return NewVectorFrom(Shared[T](), initialCapacity)
}

// NewVectorFrom creates a vector backed by the given pool.
func NewVectorFrom[T any](arrays *ArrayPool[T], initialCapacity int) *Vector[T] {
	if initialCapacity < 1 {
		initialCapacity = DefaultInitialCapacity
	}
	return &Vector[T]{
		arrays: arrays,
		items:  arrays.Rent(initialCapacity),
	}
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return v.count
}

// Cap returns the size of the current backing array.
func (v *Vector[T]) Cap() int {
	return len(v.items)
}

// Version returns a counter that changes on every mutation.
func (v *Vector[T]) Version() uint64 {
	return v.version
}

// Slice returns a view of the live elements. The view is invalidated by any
// mutation of the vector.
func (v *Vector[T]) Slice() []T {
	return v.items[:v.count]
}

// Add appends an element, growing the backing array if full.
func (v *Vector[T]) Add(item T) {
	v.ensureSpace()
	v.items[v.count] = item
	v.count++
	v.version++
}

// At returns the element at index.
func (v *Vector[T]) At(index int) (T, error) {
	if index < 0 || index >= v.count {
		var zero T
		return zero, errors.OutOfBounds(errors.PhaseContainer, vectorPath, index, v.count)
	}
	return v.items[index], nil
}

// Set replaces the element at index.
func (v *Vector[T]) Set(index int, item T) error {
	if index < 0 || index >= v.count {
		return errors.OutOfBounds(errors.PhaseContainer, vectorPath, index, v.count)
	}
	v.items[index] = item
	v.version++
	return nil
}

// Insert places item at index, shifting later elements up. index may equal Len.
func (v *Vector[T]) Insert(index int, item T) error {
	if index < 0 || index > v.count {
		return errors.OutOfBounds(errors.PhaseContainer, vectorPath, index, v.count)
	}
	v.ensureSpace()
	copy(v.items[index+1:v.count+1], v.items[index:v.count])
	v.items[index] = item
	v.count++
	v.version++
	return nil
}

// RemoveAt deletes the element at index, shifting later elements down.
func (v *Vector[T]) RemoveAt(index int) error {
	if index < 0 || index >= v.count {
		return errors.OutOfBounds(errors.PhaseContainer, vectorPath, index, v.count)
	}
	copy(v.items[index:v.count-1], v.items[index+1:v.count])
	v.count--
	var zero T
	v.items[v.count] = zero
	v.version++
	return nil
}

// IndexFunc returns the index of the first element satisfying fn, or -1.
func (v *Vector[T]) IndexFunc(fn func(T) bool) int {
	for i := 0; i < v.count; i++ {
		if fn(v.items[i]) {
			return i
		}
	}
	return -1
}

// RemoveFunc removes the first element satisfying fn.
func (v *Vector[T]) RemoveFunc(fn func(T) bool) bool {
	i := v.IndexFunc(fn)
	if i < 0 {
		return false
	}
	_ = v.RemoveAt(i)
	return true
}

// RemoveLast removes and returns the last element.
func (v *Vector[T]) RemoveLast() (T, error) {
	item, ok := v.TryRemoveLast()
	if !ok {
		return item, errors.New(errors.PhaseContainer, errors.KindOutOfBounds).
			Path(vectorPath...).
			Detail("vector is empty").
			Build()
	}
	return item, nil
}

// TryRemoveLast removes and returns the last element if there is one.
func (v *Vector[T]) TryRemoveLast() (T, bool) {
	var zero T
	if v.count == 0 {
		return zero, false
	}
	v.count--
	item := v.items[v.count]
	v.items[v.count] = zero
	v.version++
	return item, true
}

// Clear removes all elements, keeping the backing array.
func (v *Vector[T]) Clear() {
	clear(v.items[:v.count])
	v.count = 0
	v.version++
}

// Release returns the backing array to its pool. The vector stays usable and
// rents a fresh array on the next Add.
func (v *Vector[T]) Release() {
	if v.items != nil {
		v.arrays.Return(v.items, true)
	}
	v.items = nil
	v.count = 0
	v.version++
}

func (v *Vector[T]) ensureSpace() {
	if v.items == nil {
		v.items = v.arrays.Rent(DefaultInitialCapacity)
		return
	}
	if v.count < len(v.items) {
		return
	}
	next := v.arrays.Rent(len(v.items) * 2)
	copy(next, v.items[:v.count])
	v.arrays.Return(v.items, true)
	v.items = next
}

// IndexOf returns the index of the first element equal to item, or -1.
func IndexOf[T comparable](v *Vector[T], item T) int {
	return v.IndexFunc(func(x T) bool { return x == item })
}

// Contains reports whether item is present.
func Contains[T comparable](v *Vector[T], item T) bool {
	return IndexOf(v, item) >= 0
}
