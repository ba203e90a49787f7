package group

import (
	"github.com/wippyai/resource-core/errors"
	"github.com/wippyai/resource-core/resource"
)

// Group is a handle to a resource group of either flavor. It is itself a
// resource: it can be named, disposed, and be the target or dependent of
// dependency edges. The zero Group is invalid.
type Group struct {
	resource.Resource
}

func (g Group) provider() (*Provider, error) {
	if !g.IsValid() {
		return nil, errors.InvalidDefault(errors.PhaseGroup, g.Kind().Name())
	}
	impl, _ := g.Implementation()
	p, ok := impl.(*Provider)
	if !ok || p.flavor.Kind != g.Kind() {
		return nil, errors.TypeMismatch(errors.PhaseGroup, "ResourceGroup", g.Kind().Name())
	}
	return p, nil
}

func (g Group) data() (*Provider, *data, error) {
	p, err := g.provider()
	if err != nil {
		return nil, nil, err
	}
	d, err := p.lookup(g.Handle())
	if err != nil {
		return nil, nil, err
	}
	return p, d, nil
}

// Flavor returns the group's flavor.
func (g Group) Flavor() (Flavor, error) {
	p, err := g.provider()
	if err != nil {
		return Flavor{}, err
	}
	return p.flavor, nil
}

// Add appends r and registers the edge group -> r, so r cannot be disposed
// while the group holds it. Fails once the group is sealed.
func (g Group) Add(r resource.Resource) error {
	p, err := g.provider()
	if err != nil {
		return err
	}
	return p.add(g.Handle(), r)
}

// Seal prevents further Add calls. Sealing twice is a no-op.
func (g Group) Seal() error {
	p, err := g.provider()
	if err != nil {
		return err
	}
	return p.seal(g.Handle())
}

// IsSealed reports whether the group has been sealed.
func (g Group) IsSealed() (bool, error) {
	_, d, err := g.data()
	if err != nil {
		return false, err
	}
	return d.sealed, nil
}

// Count returns the number of contained resources.
func (g Group) Count() (int, error) {
	_, d, err := g.data()
	if err != nil {
		return 0, err
	}
	return d.count, nil
}

// Capacity returns how many resources fit before the storage grows.
func (g Group) Capacity() (int, error) {
	_, d, err := g.data()
	if err != nil {
		return 0, err
	}
	return len(d.items), nil
}

// CascadesByDefault reports whether Dispose also disposes contained resources.
func (g Group) CascadesByDefault() (bool, error) {
	_, d, err := g.data()
	if err != nil {
		return false, err
	}
	return d.cascade, nil
}

// Rename replaces the display name. An empty name restores the default.
func (g Group) Rename(name string) error {
	p, err := g.provider()
	if err != nil {
		return err
	}
	return p.rename(g.Handle(), name)
}

// At returns the index-th contained resource in insertion order.
func (g Group) At(index int) (resource.Resource, error) {
	_, d, err := g.data()
	if err != nil {
		return resource.Resource{}, err
	}
	if index < 0 || index >= d.count {
		return resource.Resource{}, errors.OutOfBounds(errors.PhaseGroup, []string{"group"}, index, d.count)
	}
	return d.items[index], nil
}

// Resources returns a version-checked iterator over every contained resource.
func (g Group) Resources() (resource.Iterator[resource.Resource], error) {
	p, d, err := g.data()
	if err != nil {
		return resource.Iterator[resource.Resource]{}, err
	}
	raw := g.Handle()
	return resource.NewIterator(errors.PhaseGroup,
		func() int { return len(p.contents(raw)) },
		func(i int) (resource.Resource, error) { return p.contents(raw)[i], nil },
		p.versionOf(raw, d),
	), nil
}

// Dispose disposes the group with its default cascade policy.
// Disposing an already disposed group is a no-op.
func (g Group) Dispose() error {
	return g.Resource.Dispose()
}

// DisposeWith disposes the group, disposing contained resources when cascade
// is true. A group that is still a dependency target is left untouched.
func (g Group) DisposeWith(cascade bool) error {
	p, err := g.provider()
	if err != nil {
		return err
	}
	return p.disposeWith(g.Handle(), cascade)
}

func countOfKind(items []resource.Resource, tag resource.TypeTag) int {
	n := 0
	for _, r := range items {
		if r.Kind() == tag {
			n++
		}
	}
	return n
}

func nthOfKind(items []resource.Resource, tag resource.TypeTag, index int) (resource.Resource, bool) {
	if index < 0 {
		return resource.Resource{}, false
	}
	for _, r := range items {
		if r.Kind() != tag {
			continue
		}
		if index == 0 {
			return r, true
		}
		index--
	}
	return resource.Resource{}, false
}

// ResourcesOfType returns a version-checked iterator over the contained
// resources that belong to kind, in insertion order.
func ResourcesOfType[T any](g Group, kind *resource.Kind[T]) (resource.Iterator[T], error) {
	p, d, err := g.data()
	if err != nil {
		return resource.Iterator[T]{}, err
	}
	raw := g.Handle()
	return resource.NewIterator(errors.PhaseGroup,
		func() int { return countOfKind(p.contents(raw), kind.Tag()) },
		func(i int) (T, error) { return nthResource(p, raw, kind, i) },
		p.versionOf(raw, d),
	), nil
}

// NthResourceOfType returns the index-th contained resource that belongs to
// kind. The range error reports how many such resources the group holds.
func NthResourceOfType[T any](g Group, kind *resource.Kind[T], index int) (T, error) {
	p, _, err := g.data()
	if err != nil {
		var zero T
		return zero, err
	}
	return nthResource(p, g.Handle(), kind, index)
}

func nthResource[T any](p *Provider, raw uintptr, kind *resource.Kind[T], index int) (T, error) {
	items := p.contents(raw)
	r, ok := nthOfKind(items, kind.Tag(), index)
	if !ok {
		var zero T
		return zero, errors.New(errors.PhaseGroup, errors.KindOutOfBounds).
			Resource(p.flavor.Kind.Name(), p.displayName(raw)).
			Value(index).
			Detail("index %d is out of range for resources of kind %s in this group (actual count = %d)",
				index, kind.Name(), countOfKind(items, kind.Tag())).
			Build()
	}
	return kind.Wrap(r)
}
