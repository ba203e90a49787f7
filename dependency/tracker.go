package dependency

import (
	"go.uber.org/zap"

	"github.com/wippyai/resource-core/errors"
	"github.com/wippyai/resource-core/pool"
	"github.com/wippyai/resource-core/resource"
)

const trackerKind = "DependencyTracker"

// Options configures a Tracker.
type Options struct {
	Notifier *resource.Notifier
	// InitialCapacity is the starting size of each target's dependent vector.
	InitialCapacity int
	// Prewarm is the number of dependent vectors created up front.
	Prewarm int
}

// DefaultOptions returns default tracker configuration.
func DefaultOptions() Options {
	return Options{
		InitialCapacity: pool.DefaultInitialCapacity,
	}
}

// Tracker records "dependent depends on target" edges and refuses to let a
// target be disposed while dependents remain.
//
// Edges are stored only at the target. Not safe for concurrent use.
type Tracker struct {
	edges     *pool.Map[resource.Ident, *pool.Vector[resource.Resource]]
	vectors   *pool.ObjectPool[*pool.Vector[resource.Resource]]
	notifier  *resource.Notifier
	edgeCount int
	closed    bool
}

// New creates a tracker.
func New(opts Options) *Tracker {
	capacity := opts.InitialCapacity
	if capacity <= 0 {
		capacity = pool.DefaultInitialCapacity
	}
	return &Tracker{
		edges: pool.NewMap[resource.Ident, *pool.Vector[resource.Resource]](resource.Ident.Hash),
		vectors: pool.NewObjectPool(func() *pool.Vector[resource.Resource] {
			return pool.NewVector[resource.Resource](capacity)
		}, opts.Prewarm),
		notifier: opts.Notifier,
	}
}

// NewWithDefaults creates a tracker with default options and no observers.
func NewWithDefaults() *Tracker {
	return New(DefaultOptions())
}

func (t *Tracker) checkOpen() error {
	if t.closed {
		return errors.New(errors.PhaseDependency, errors.KindDisposed).
			Resource(trackerKind, "").
			Detail("tracker has been closed").
			Build()
	}
	return nil
}

func checkValid(rs ...resource.Resource) error {
	for _, r := range rs {
		if !r.IsValid() {
			return errors.InvalidDefault(errors.PhaseDependency, r.Kind().Name())
		}
	}
	return nil
}

func indexOfIdent(v *pool.Vector[resource.Resource], id resource.Ident) int {
	return v.IndexFunc(func(r resource.Resource) bool { return r.Ident() == id })
}

// Register records that dependent depends on target. Registering an existing
// edge is a no-op.
func (t *Tracker) Register(dependent, target resource.Resource) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	if err := checkValid(dependent, target); err != nil {
		return err
	}
	if dependent.Ident() == target.Ident() {
		return errors.New(errors.PhaseDependency, errors.KindInvalidInput).
			Resource(target.Kind().Name(), displayName(target)).
			Detail("a resource cannot depend on itself").
			Build()
	}

	deps, ok := t.edges.Get(target.Ident())
	if !ok {
		deps = t.vectors.Rent()
		t.edges.Set(target.Ident(), deps)
	} else if indexOfIdent(deps, dependent.Ident()) >= 0 {
		return nil
	}
	deps.Add(dependent)
	t.edgeCount++

	Logger().Debug("dependency registered",
		zap.Stringer("dependent", dependent.Ident()),
		zap.Stringer("target", target.Ident()),
		zap.Int("dependents", deps.Len()))
	t.notifier.Notify(resource.Event{
		Type:    resource.EventDependencyRegistered,
		Subject: target.Ident(),
		Related: dependent.Ident(),
		Count:   t.edgeCount,
	})
	return nil
}

// Deregister removes the edge dependent -> target. Removing an edge that does
// not exist is a silent no-op. A target left without dependents loses its
// entry entirely.
func (t *Tracker) Deregister(dependent, target resource.Resource) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	if err := checkValid(dependent, target); err != nil {
		return err
	}

	deps, ok := t.edges.Get(target.Ident())
	if !ok {
		return nil
	}
	idx := indexOfIdent(deps, dependent.Ident())
	if idx < 0 {
		return nil
	}
	if err := deps.RemoveAt(idx); err != nil {
		return err
	}
	t.edgeCount--
	if deps.Len() == 0 {
		t.edges.Remove(target.Ident())
		deps.Clear()
		t.vectors.Return(deps)
	}

	Logger().Debug("dependency deregistered",
		zap.Stringer("dependent", dependent.Ident()),
		zap.Stringer("target", target.Ident()),
		zap.Int("dependents", deps.Len()))
	t.notifier.Notify(resource.Event{
		Type:    resource.EventDependencyDeregistered,
		Subject: target.Ident(),
		Related: dependent.Ident(),
		Count:   t.edgeCount,
	})
	return nil
}

// CheckPrematureDisposal fails with a *errors.DependencyError if target still
// has dependents. Call it before tearing target down.
func (t *Tracker) CheckPrematureDisposal(target resource.Resource) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	if err := checkValid(target); err != nil {
		return err
	}

	deps, ok := t.edges.Get(target.Ident())
	if !ok || deps.Len() == 0 {
		return nil
	}

	total := deps.Len()
	listed := min(total, errors.MaxListedDependents)
	names := make([]string, 0, listed)
	for _, d := range deps.Slice()[:listed] {
		names = append(names, displayName(d))
	}
	err := errors.NewDependencyError(target.Kind().Name(), displayName(target), names, total)

	Logger().Warn("premature disposal refused",
		zap.Stringer("target", target.Ident()),
		zap.Int("dependents", total))
	t.notifier.Notify(resource.Event{
		Type:    resource.EventPrematureDisposal,
		Subject: target.Ident(),
		Count:   total,
	})
	return err
}

// HasDependents reports whether target has at least one dependent.
func (t *Tracker) HasDependents(target resource.Resource) bool {
	return t.DependentCount(target) > 0
}

// DependentCount returns the number of dependents of target.
func (t *Tracker) DependentCount(target resource.Resource) int {
	if t.closed {
		return 0
	}
	deps, ok := t.edges.Get(target.Ident())
	if !ok {
		return 0
	}
	return deps.Len()
}

// EdgeCount returns the total number of live edges.
func (t *Tracker) EdgeCount() int {
	return t.edgeCount
}

// TargetCount returns the number of resources that have dependents.
func (t *Tracker) TargetCount() int {
	if t.closed {
		return 0
	}
	return t.edges.Len()
}

// EraseAll drops every edge without consulting the premature-disposal guard.
// Intended for full shutdown.
func (t *Tracker) EraseAll() {
	if t.closed {
		return
	}
	erased := t.edgeCount
	t.edges.Each(func(_ resource.Ident, deps *pool.Vector[resource.Resource]) bool {
		deps.Clear()
		t.vectors.Return(deps)
		return true
	})
	t.edges.Clear()
	t.edgeCount = 0

	Logger().Debug("dependencies erased", zap.Int("edges", erased))
	t.notifier.Notify(resource.Event{
		Type:  resource.EventDependenciesErased,
		Count: 0,
	})
}

// Close erases all edges and returns pooled storage. Later operations fail
// with a disposed error. Close is idempotent.
func (t *Tracker) Close() error {
	if t.closed {
		return nil
	}
	t.EraseAll()
	t.edges.Release()
	for t.vectors.Len() > 0 {
		t.vectors.Rent().Release()
	}
	t.vectors.Release()
	t.closed = true
	return nil
}

// IsClosed reports whether Close has been called.
func (t *Tracker) IsClosed() bool {
	return t.closed
}

func displayName(r resource.Resource) string {
	name, err := r.Name()
	if err != nil {
		return r.Ident().String()
	}
	return name
}
