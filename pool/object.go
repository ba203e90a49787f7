package pool

// ObjectPool recycles instances produced by a factory.
//
// Return does not check that an instance came from this pool, nor that it is
// not returned twice. Callers are responsible for that discipline.
type ObjectPool[T any] struct {
	factory func() T
	items   *Vector[T]
}

// NewObjectPool creates a pool and pre-creates prewarm instances.
func NewObjectPool[T any](factory func() T, prewarm int) *ObjectPool[T] {
	if prewarm < 0 {
		prewarm = 0
	}
	p := &ObjectPool[T]{
		factory: factory,
		items:   NewVector[T](max(prewarm*2, DefaultInitialCapacity)),
	}
	for i := 0; i < prewarm; i++ {
		p.items.Add(factory())
	}
	return p
}

// Rent returns a recycled instance, or a new one if the pool is empty.
func (p *ObjectPool[T]) Rent() T {
	if item, ok := p.items.TryRemoveLast(); ok {
		return item
	}
	return p.factory()
}

// Return puts an instance back into the pool.
func (p *ObjectPool[T]) Return(item T) {
	p.items.Add(item)
}

// Len returns the number of idle instances.
func (p *ObjectPool[T]) Len() int {
	return p.items.Len()
}

// Release drops all idle instances and returns the pool's own storage.
func (p *ObjectPool[T]) Release() {
	p.items.Release()
}
