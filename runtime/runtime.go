package runtime

import (
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/resource-core/dependency"
	"github.com/wippyai/resource-core/errors"
	"github.com/wippyai/resource-core/group"
	"github.com/wippyai/resource-core/resource"
)

// Runtime owns one instance of every shared service: the dependency tracker,
// the name table, the group id source and both group providers.
//
// A Runtime and everything created through it must be confined to a single
// goroutine. Independent runtimes may run in parallel.
type Runtime struct {
	log      *zap.Logger
	notifier *resource.Notifier
	names    *resource.Names
	ids      *resource.IDSource
	tracker  *dependency.Tracker
	groups   *group.Provider
	combined *group.Provider
	cfg      Config
	id       uuid.UUID
	closed   bool
}

// New creates a runtime.
func New(cfg Config) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	base := cfg.Logger
	if base == nil {
		base = Logger()
	}

	r := &Runtime{
		cfg:      cfg,
		id:       id,
		log:      base.With(zap.String("runtime", id.String())),
		notifier: resource.NewNotifier(),
		names:    resource.NewNames(),
		ids:      &resource.IDSource{},
	}
	r.tracker = dependency.New(dependency.Options{
		Notifier:        r.notifier,
		InitialCapacity: cfg.DependentsInitialCapacity,
		Prewarm:         cfg.VectorPoolPrewarm,
	})
	opts := group.Options{
		IDs:      r.ids,
		Names:    r.names,
		Tracker:  r.tracker,
		Notifier: r.notifier,
		Prewarm:  cfg.VectorPoolPrewarm,
	}
	r.groups = group.NewProvider(group.Standard, opts)
	r.combined = group.NewProvider(group.Combined, opts)

	r.log.Debug("runtime created",
		zap.Int("group_capacity", cfg.GroupInitialCapacity),
		zap.Int("dependents_capacity", cfg.DependentsInitialCapacity))
	return r, nil
}

// ID returns the runtime's instance id.
func (r *Runtime) ID() uuid.UUID {
	return r.id
}

// Config returns the configuration the runtime was created with.
func (r *Runtime) Config() Config {
	return r.cfg
}

// Logger returns the runtime's logger.
func (r *Runtime) Logger() *zap.Logger {
	return r.log
}

// Tracker returns the dependency tracker.
func (r *Runtime) Tracker() *dependency.Tracker {
	return r.tracker
}

// Names returns the shared name table.
func (r *Runtime) Names() *resource.Names {
	return r.names
}

// IDs returns the shared id source.
func (r *Runtime) IDs() *resource.IDSource {
	return r.ids
}

// Notifier returns the event notifier used by every component.
func (r *Runtime) Notifier() *resource.Notifier {
	return r.notifier
}

// Groups returns the provider for standard groups.
func (r *Runtime) Groups() *group.Provider {
	return r.groups
}

// CombinedGroups returns the provider for combined groups.
func (r *Runtime) CombinedGroups() *group.Provider {
	return r.combined
}

// Subscribe adds an observer for lifecycle events.
func (r *Runtime) Subscribe(o resource.Observer) {
	r.notifier.Subscribe(o)
}

// Unsubscribe removes an observer.
func (r *Runtime) Unsubscribe(o resource.Observer) {
	r.notifier.Unsubscribe(o)
}

func (r *Runtime) checkOpen() error {
	if r.closed {
		return errors.New(errors.PhaseRuntime, errors.KindDisposed).
			Detail("runtime %s has been closed", r.id).
			Build()
	}
	return nil
}

// CreateGroup creates a standard group with the configured capacity.
func (r *Runtime) CreateGroup(cascadeByDefault bool, name string) (group.Group, error) {
	if err := r.checkOpen(); err != nil {
		return group.Group{}, err
	}
	return r.groups.Create(cascadeByDefault, r.cfg.GroupInitialCapacity, name)
}

// CreateCombinedGroup creates a combined group with the configured capacity.
func (r *Runtime) CreateCombinedGroup(cascadeByDefault bool, name string) (group.Group, error) {
	if err := r.checkOpen(); err != nil {
		return group.Group{}, err
	}
	return r.combined.Create(cascadeByDefault, r.cfg.GroupInitialCapacity, name)
}

// IsClosed reports whether Close has been called.
func (r *Runtime) IsClosed() bool {
	return r.closed
}

// Close tears everything down in dependency order: groups first, then the
// tracker, then the name table. Close is idempotent.
func (r *Runtime) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	err := multierr.Combine(
		r.groups.Close(),
		r.combined.Close(),
		r.tracker.Close(),
	)
	leaked := r.names.Len()
	r.names.Release()

	if leaked > 0 {
		r.log.Debug("released names still held at shutdown", zap.Int("names", leaked))
	}
	if err != nil {
		r.log.Warn("runtime closed with errors", zap.Error(err))
		return err
	}
	r.log.Debug("runtime closed")
	return nil
}
