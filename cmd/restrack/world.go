package main

import (
	"fmt"

	"github.com/wippyai/resource-core/errors"
	"github.com/wippyai/resource-core/group"
	"github.com/wippyai/resource-core/internal/native"
	"github.com/wippyai/resource-core/resource"
	"github.com/wippyai/resource-core/runtime"
)

// World is a scenario's resource graph materialized in a runtime.
type World struct {
	rt      *runtime.Runtime
	native  *native.Provider
	objects map[string]resource.Resource
	groups  map[string]group.Group
	order   []string
}

// Entry is a snapshot of one named object in a world.
type Entry struct {
	Name       string
	Display    string
	Kind       string
	Dependents int
	Members    int
	IsGroup    bool
	Sealed     bool
	Disposed   bool
}

// Build creates every resource and group the scenario declares.
func Build(rt *runtime.Runtime, sc *Scenario) (*World, error) {
	w := &World{
		rt:      rt,
		native:  native.New(rt.Tracker(), rt.Notifier()),
		objects: make(map[string]resource.Resource),
		groups:  make(map[string]group.Group),
	}

	for _, spec := range sc.Resources {
		deps := make([]resource.Resource, 0, len(spec.DependsOn))
		for _, name := range spec.DependsOn {
			deps = append(deps, w.objects[name])
		}
		r, err := w.native.Create(kindFor(spec.Kind), spec.Display, deps...)
		if err != nil {
			return nil, errors.Load("create "+spec.Name, err)
		}
		w.put(spec.Name, r)
	}

	for _, spec := range sc.Groups {
		g, err := w.createGroup(spec)
		if err != nil {
			return nil, errors.Load("create group "+spec.Name, err)
		}
		w.groups[spec.Name] = g
		w.put(spec.Name, g.Resource)
	}
	return w, nil
}

func (w *World) createGroup(spec GroupSpec) (group.Group, error) {
	p := w.rt.Groups()
	if spec.Combined {
		p = w.rt.CombinedGroups()
	}
	capacity := spec.Capacity
	if capacity == 0 {
		capacity = w.rt.Config().GroupInitialCapacity
	}

	g, err := p.Create(spec.Cascade, capacity, spec.Display)
	if err != nil {
		return group.Group{}, err
	}
	for _, m := range spec.Members {
		if err := g.Add(w.objects[m]); err != nil {
			return group.Group{}, err
		}
	}
	if spec.Sealed {
		if err := g.Seal(); err != nil {
			return group.Group{}, err
		}
	}
	return g, nil
}

func (w *World) put(name string, r resource.Resource) {
	w.objects[name] = r
	w.order = append(w.order, name)
}

// Resource returns the resource or group declared as name.
func (w *World) Resource(name string) (resource.Resource, bool) {
	r, ok := w.objects[name]
	return r, ok
}

// Apply runs one step and returns the error the operation produced. A check
// step returns an error describing the first mismatch.
func (w *World) Apply(st Step) error {
	switch st.Action {
	case ActionDispose:
		if g, ok := w.groups[st.Target]; ok {
			return g.Dispose()
		}
		return w.objects[st.Target].Dispose()

	case ActionDisposeGroup:
		g := w.groups[st.Group]
		if st.Cascade != nil {
			return g.DisposeWith(*st.Cascade)
		}
		return g.Dispose()

	case ActionAdd:
		return w.groups[st.Group].Add(w.objects[st.Target])

	case ActionSeal:
		return w.groups[st.Group].Seal()

	case ActionRename:
		if g, ok := w.groups[st.Target]; ok {
			return g.Rename(st.Name)
		}
		return w.native.Rename(w.objects[st.Target], st.Name)

	case ActionCheck:
		return w.check(st)
	}
	return errors.InvalidInput(errors.PhaseRuntime, fmt.Sprintf("unknown action %q", st.Action))
}

func (w *World) check(st Step) error {
	r := w.objects[st.Target]
	if st.Disposed != nil && r.IsDisposed() != *st.Disposed {
		return fmt.Errorf("%s: disposed = %t, want %t", st.Target, r.IsDisposed(), *st.Disposed)
	}
	if st.Dependents != nil {
		if n := w.rt.Tracker().DependentCount(r); n != *st.Dependents {
			return fmt.Errorf("%s: dependents = %d, want %d", st.Target, n, *st.Dependents)
		}
	}
	return nil
}

// Entries returns a snapshot of every declared object in declaration order.
func (w *World) Entries() []Entry {
	entries := make([]Entry, 0, len(w.order))
	for _, name := range w.order {
		r := w.objects[name]
		e := Entry{
			Name:     name,
			Kind:     r.Kind().Name(),
			Disposed: r.IsDisposed(),
		}
		if !e.Disposed {
			e.Display, _ = r.Name()
			e.Dependents = w.rt.Tracker().DependentCount(r)
		}
		if g, ok := w.groups[name]; ok {
			e.IsGroup = true
			if !e.Disposed {
				e.Members, _ = g.Count()
				e.Sealed, _ = g.IsSealed()
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// DependentsOf returns the display names of everything that depends on name.
func (w *World) DependentsOf(name string) ([]string, error) {
	r, ok := w.objects[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseRuntime, "resource", name)
	}
	it, err := w.rt.Tracker().Dependents(r)
	if err != nil {
		return nil, err
	}
	var names []string
	err = it.Each(func(_ int, d resource.Resource) bool {
		names = append(names, d.String())
		return true
	})
	return names, err
}
