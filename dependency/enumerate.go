package dependency

import (
	"github.com/wippyai/resource-core/errors"
	"github.com/wippyai/resource-core/pool"
	"github.com/wippyai/resource-core/resource"
)

// versionOf tracks the dependent vector of target. The returned func changes
// value whenever that vector is mutated, removed or replaced.
func (t *Tracker) versionOf(target resource.Ident) func() uint64 {
	start, _ := t.edges.Get(target)
	return func() uint64 {
		cur, _ := t.edges.Get(target)
		if cur != start || (t.closed && start != nil) {
			return ^uint64(0)
		}
		if cur == nil {
			return 0
		}
		return cur.Version()
	}
}

func (t *Tracker) dependentsOf(target resource.Ident) *pool.Vector[resource.Resource] {
	deps, _ := t.edges.Get(target)
	return deps
}

func countOfKind(deps *pool.Vector[resource.Resource], tag resource.TypeTag) int {
	if deps == nil {
		return 0
	}
	n := 0
	for _, d := range deps.Slice() {
		if d.Kind() == tag {
			n++
		}
	}
	return n
}

func nthOfKind(deps *pool.Vector[resource.Resource], tag resource.TypeTag, index int) (resource.Resource, bool) {
	if deps == nil || index < 0 {
		return resource.Resource{}, false
	}
	for _, d := range deps.Slice() {
		if d.Kind() != tag {
			continue
		}
		if index == 0 {
			return d, true
		}
		index--
	}
	return resource.Resource{}, false
}

// Dependents returns a version-checked iterator over every dependent of
// target, in registration order.
func (t *Tracker) Dependents(target resource.Resource) (resource.Iterator[resource.Resource], error) {
	if err := t.checkOpen(); err != nil {
		return resource.Iterator[resource.Resource]{}, err
	}
	if err := checkValid(target); err != nil {
		return resource.Iterator[resource.Resource]{}, err
	}
	id := target.Ident()
	return resource.NewIterator(errors.PhaseDependency,
		func() int {
			if deps := t.dependentsOf(id); deps != nil {
				return deps.Len()
			}
			return 0
		},
		func(i int) (resource.Resource, error) {
			deps := t.dependentsOf(id)
			if deps == nil {
				return resource.Resource{}, errors.OutOfBounds(errors.PhaseDependency, []string{"dependents"}, i, 0)
			}
			return deps.At(i)
		},
		t.versionOf(id),
	), nil
}

// DependentsOfType returns a version-checked iterator over the dependents of
// target that belong to kind.
func DependentsOfType[T any](t *Tracker, target resource.Resource, kind *resource.Kind[T]) (resource.Iterator[T], error) {
	if err := t.checkOpen(); err != nil {
		return resource.Iterator[T]{}, err
	}
	if err := checkValid(target); err != nil {
		return resource.Iterator[T]{}, err
	}
	id := target.Ident()
	return resource.NewIterator(errors.PhaseDependency,
		func() int { return countOfKind(t.dependentsOf(id), kind.Tag()) },
		func(i int) (T, error) { return nthDependent(t, id, kind, i) },
		t.versionOf(id),
	), nil
}

// NthDependentOfType returns the index-th dependent of target that belongs to
// kind. The range error reports how many such dependents exist.
func NthDependentOfType[T any](t *Tracker, target resource.Resource, kind *resource.Kind[T], index int) (T, error) {
	var zero T
	if err := t.checkOpen(); err != nil {
		return zero, err
	}
	if err := checkValid(target); err != nil {
		return zero, err
	}
	return nthDependent(t, target.Ident(), kind, index)
}

func nthDependent[T any](t *Tracker, target resource.Ident, kind *resource.Kind[T], index int) (T, error) {
	deps := t.dependentsOf(target)
	d, ok := nthOfKind(deps, kind.Tag(), index)
	if !ok {
		var zero T
		return zero, errors.OutOfBoundsOfType(errors.PhaseDependency, kind.Name(), index, countOfKind(deps, kind.Tag()))
	}
	return kind.Wrap(d)
}
