package resource

import (
	"github.com/wippyai/resource-core/errors"
)

// Iterator is a lazy, version-checked view over a container's resources.
// It remembers the container version it was created at and fails with an
// enumeration-invalidated error once the container has been mutated.
// The zero Iterator is invalid.
type Iterator[T any] struct {
	count   func() int
	at      func(int) (T, error)
	current func() uint64
	phase   errors.Phase
	version uint64
}

// NewIterator creates an iterator over count elements fetched by at.
// version is sampled now and re-checked on every access.
func NewIterator[T any](phase errors.Phase, count func() int, at func(int) (T, error), version func() uint64) Iterator[T] {
	return Iterator[T]{
		phase:   phase,
		count:   count,
		at:      at,
		current: version,
		version: version(),
	}
}

// Empty returns a valid iterator that never has elements.
func Empty[T any](phase errors.Phase) Iterator[T] {
	return NewIterator(phase,
		func() int { return 0 },
		func(int) (T, error) {
			var zero T
			return zero, errors.OutOfBounds(phase, []string{"iterator"}, 0, 0)
		},
		func() uint64 { return 0 },
	)
}

// Valid reports whether it was produced by a container.
func (it Iterator[T]) Valid() bool {
	return it.count != nil
}

func (it Iterator[T]) check() error {
	if it.count == nil {
		return errors.InvalidDefault(it.phase, "Iterator")
	}
	if it.current() != it.version {
		return errors.EnumerationInvalidated(it.phase, "container was modified after the enumeration was created")
	}
	return nil
}

// Len returns the number of elements.
func (it Iterator[T]) Len() (int, error) {
	if err := it.check(); err != nil {
		return 0, err
	}
	return it.count(), nil
}

// At returns the element at index.
func (it Iterator[T]) At(index int) (T, error) {
	var zero T
	if err := it.check(); err != nil {
		return zero, err
	}
	if n := it.count(); index < 0 || index >= n {
		return zero, errors.OutOfBounds(it.phase, []string{"iterator"}, index, n)
	}
	return it.at(index)
}

// Each calls fn for every element in order until fn returns false.
// The version is re-checked before each element.
func (it Iterator[T]) Each(fn func(int, T) bool) error {
	if err := it.check(); err != nil {
		return err
	}
	for i := 0; i < it.count(); i++ {
		v, err := it.At(i)
		if err != nil {
			return err
		}
		if !fn(i, v) {
			return nil
		}
	}
	return nil
}

// Collect copies every element into a new slice.
func (it Iterator[T]) Collect() ([]T, error) {
	n, err := it.Len()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	err = it.Each(func(_ int, v T) bool {
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CopyTo copies every element into dst and returns the count written.
// dst must be large enough to hold all elements.
func (it Iterator[T]) CopyTo(dst []T) (int, error) {
	n, err := it.Len()
	if err != nil {
		return 0, err
	}
	if len(dst) < n {
		return 0, errors.New(it.phase, errors.KindOutOfBounds).
			Path("iterator").
			Detail("destination length %d is smaller than element count %d", len(dst), n).
			Build()
	}
	for i := 0; i < n; i++ {
		v, err := it.At(i)
		if err != nil {
			return i, err
		}
		dst[i] = v
	}
	return n, nil
}
