// Package pool provides allocation-avoiding containers backed by pooled arrays.
//
// The containers here exist so that the resource core can track thousands of
// short-lived dependency edges and group memberships without producing
// garbage on every mutation.
//
//	ArrayPool[T]  - size-classed array recycler (thread-safe, process-wide via Shared)
//	Vector[T]     - growable vector whose backing array is rented from an ArrayPool
//	Map[K, V]     - bucketed hash map whose buckets are pooled Vectors
//	ObjectPool[T] - recycler for whole container instances
//	StringPool    - pooled byte storage for resource display names
//
// # Ownership
//
// A Vector or Map owns its backing arrays until Release is called, at which
// point they go back to the ArrayPool. Forgetting to call Release does not
// corrupt anything, the arrays are simply collected by the GC instead of
// being recycled.
//
// # Concurrency
//
// ArrayPool is safe for concurrent use. Vector, Map, ObjectPool and
// StringPool are not: callers confine each instance to a single goroutine.
package pool
