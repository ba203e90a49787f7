package pool

import (
	"math/bits"
	"sync"
)

const (
	// Arrays above this size class are never recycled.
	maxPooledClass = 20 // 1<<20 elements
)

// ArrayPool recycles arrays in power-of-two size classes.
// Safe for concurrent use.
type ArrayPool[T any] struct {
	classes [maxPooledClass + 1]sync.Pool
}

// NewArrayPool creates an empty array pool.
func NewArrayPool[T any]() *ArrayPool[T] {
	return &ArrayPool[T]{}
}

type sharedKey[T any] struct{}

var shared sync.Map

// Shared returns the process-wide pool for element type T.
func Shared[T any]() *ArrayPool[T] {
	if p, ok := shared.Load(sharedKey[T]{}); ok {
		return p.(*ArrayPool[T])
	}
	p, _ := shared.LoadOrStore(sharedKey[T]{}, NewArrayPool[T]())
	return p.(*ArrayPool[T])
}

func sizeClass(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Rent returns an array of at least minLen elements. The returned slice's
// length is the full rented size and may exceed minLen.
func (p *ArrayPool[T]) Rent(minLen int) []T {
	if minLen < 1 {
		minLen = 1
	}
	class := sizeClass(minLen)
	if class > maxPooledClass {
		return make([]T, minLen)
	}
	if v := p.classes[class].Get(); v != nil {
		return *(v.(*[]T))
	}
	return make([]T, 1<<class)
}

// Return hands an array back to the pool. Arrays that were not produced by
// Rent (non power-of-two capacity) or are oversized are dropped.
// When clearArray is set the contents are zeroed first, which callers must do
// for element types holding pointers.
func (p *ArrayPool[T]) Return(arr []T, clearArray bool) {
	c := cap(arr)
	if c == 0 || c&(c-1) != 0 {
		return
	}
	class := sizeClass(c)
	if class > maxPooledClass {
		return
	}
	arr = arr[:c]
	if clearArray {
		clear(arr)
	}
	p.classes[class].Put(&arr)
}
