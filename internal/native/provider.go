// Package native simulates a native resource provider that behaves like a
// kind-specific builder: it registers the edges a resource owns on creation
// and follows the guard, deregister, teardown sequence on disposal.
package native

import (
	"github.com/wippyai/resource-core/dependency"
	"github.com/wippyai/resource-core/errors"
	"github.com/wippyai/resource-core/resource"
)

type entry struct {
	failure error
	name    string
	targets []resource.Resource
	kind    resource.TypeTag
}

// Provider is an in-memory resource.Provider and resource.Disposer.
// Not safe for concurrent use.
type Provider struct {
	tracker  *dependency.Tracker
	notifier *resource.Notifier
	slots    *resource.Slots[*entry]
	disposed int
}

// New creates a provider registering edges in tracker. notifier may be nil.
func New(tracker *dependency.Tracker, notifier *resource.Notifier) *Provider {
	return &Provider{
		tracker:  tracker,
		notifier: notifier,
		slots:    resource.NewSlots[*entry](),
	}
}

// Create allocates a resource of kind that depends on every resource in
// dependsOn. If any edge cannot be registered, the edges already registered
// are rolled back and no resource is created.
func (p *Provider) Create(kind resource.TypeTag, name string, dependsOn ...resource.Resource) (resource.Resource, error) {
	e := &entry{kind: kind, name: name}
	r := resource.New(kind, p.slots.Insert(e), p)

	for _, target := range dependsOn {
		if err := p.tracker.Register(r, target); err != nil {
			for _, done := range e.targets {
				_ = p.tracker.Deregister(r, done)
			}
			p.slots.Remove(r.Handle())
			return resource.Resource{}, err
		}
		e.targets = append(e.targets, target)
	}

	p.notifier.Notify(resource.Event{Type: resource.EventResourceCreated, Subject: r.Ident()})
	return r, nil
}

// Name implements resource.Provider.
func (p *Provider) Name(raw uintptr) (string, error) {
	e, ok := p.slots.Get(raw)
	if !ok {
		return "", errors.Disposed(errors.PhaseResource, "NativeResource", raw)
	}
	if e.name == "" {
		return e.kind.DefaultName(), nil
	}
	return e.name, nil
}

// Rename changes the display name of a live resource.
func (p *Provider) Rename(r resource.Resource, name string) error {
	e, ok := p.slots.Get(r.Handle())
	if !ok {
		return errors.Disposed(errors.PhaseResource, r.Kind().Name(), r.Handle())
	}
	e.name = name
	return nil
}

// IsDisposed implements resource.Disposer.
func (p *Provider) IsDisposed(raw uintptr) bool {
	return !p.slots.Contains(raw)
}

// Dispose implements resource.Disposer. Disposing twice is a no-op.
func (p *Provider) Dispose(raw uintptr) error {
	e, ok := p.slots.Get(raw)
	if !ok {
		return nil
	}
	r := resource.New(e.kind, raw, p)
	if err := p.tracker.CheckPrematureDisposal(r); err != nil {
		return err
	}
	if e.failure != nil {
		return e.failure
	}
	for _, target := range e.targets {
		if err := p.tracker.Deregister(r, target); err != nil {
			return err
		}
	}
	p.slots.Remove(raw)
	p.disposed++
	p.notifier.Notify(resource.Event{Type: resource.EventResourceDisposed, Subject: r.Ident()})
	return nil
}

// FailDisposal makes every later Dispose of r fail with err, as a native
// teardown failure would. A nil err clears the failure.
func (p *Provider) FailDisposal(r resource.Resource, err error) {
	if e, ok := p.slots.Get(r.Handle()); ok {
		e.failure = err
	}
}

// Targets returns the resources r was created depending on.
func (p *Provider) Targets(r resource.Resource) []resource.Resource {
	e, ok := p.slots.Get(r.Handle())
	if !ok {
		return nil
	}
	return append([]resource.Resource(nil), e.targets...)
}

// Live returns the number of live resources.
func (p *Provider) Live() int {
	return p.slots.Len()
}

// Disposed returns how many resources were disposed through Dispose.
func (p *Provider) Disposed() int {
	return p.disposed
}

// Each calls fn for every live resource in allocation order.
func (p *Provider) Each(fn func(resource.Resource) bool) {
	p.slots.Each(func(raw uintptr, e *entry) bool {
		return fn(resource.New(e.kind, raw, p))
	})
}

// Close drops every live resource without consulting the tracker.
func (p *Provider) Close() error {
	p.slots.Clear()
	return nil
}
