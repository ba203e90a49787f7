package group

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/resource-core/dependency"
	"github.com/wippyai/resource-core/errors"
	"github.com/wippyai/resource-core/pool"
	"github.com/wippyai/resource-core/resource"
)

// Flavor distinguishes group namespaces. Flavors share every behavior and
// differ only in kind tag and default name.
type Flavor struct {
	Label string
	Kind  resource.TypeTag
}

var (
	// Standard is the plain resource group flavor.
	Standard = Flavor{
		Kind:  resource.RegisterKind("ResourceGroup", "Unnamed Resource Group"),
		Label: "resource group",
	}
	// Combined is the combined resource group flavor.
	Combined = Flavor{
		Kind:  resource.RegisterKind("CombinedResourceGroup", "Unnamed Combined Resource Group"),
		Label: "combined resource group",
	}
)

// Groups is the typed kind for Standard groups.
var Groups = resource.BindKind(Standard.Kind, func(r resource.Resource) Group { return Group{r} })

// CombinedGroups is the typed kind for Combined groups.
var CombinedGroups = resource.BindKind(Combined.Kind, func(r resource.Resource) Group { return Group{r} })

type data struct {
	items   []resource.Resource
	count   int
	version uint64
	cascade bool
	sealed  bool
}

// Options wires a Provider to its collaborators. Nil fields get private
// instances.
type Options struct {
	IDs      *resource.IDSource
	Names    *resource.Names
	Tracker  *dependency.Tracker
	Notifier *resource.Notifier
	// Prewarm is the number of group records created up front.
	Prewarm int
}

// Provider creates and operates on groups of one flavor.
// Not safe for concurrent use.
type Provider struct {
	ids      *resource.IDSource
	names    *resource.Names
	tracker  *dependency.Tracker
	notifier *resource.Notifier
	arrays   *pool.ArrayPool[resource.Resource]
	groups   *pool.Map[uintptr, *data]
	records  *pool.ObjectPool[*data]
	flavor   Flavor
	closed   bool
}

// NewProvider creates a provider for flavor.
func NewProvider(flavor Flavor, opts Options) *Provider {
	if opts.IDs == nil {
		opts.IDs = &resource.IDSource{}
	}
	if opts.Names == nil {
		opts.Names = resource.NewNames()
	}
	if opts.Tracker == nil {
		opts.Tracker = dependency.NewWithDefaults()
	}
	return &Provider{
		flavor:   flavor,
		ids:      opts.IDs,
		names:    opts.Names,
		tracker:  opts.Tracker,
		notifier: opts.Notifier,
		arrays:   pool.Shared[resource.Resource](),
		groups:   pool.NewMap[uintptr, *data](nil),
		records:  pool.NewObjectPool(func() *data { return &data{} }, opts.Prewarm),
	}
}

// Flavor returns the provider's flavor.
func (p *Provider) Flavor() Flavor {
	return p.flavor
}

// Len returns the number of live groups.
func (p *Provider) Len() int {
	return p.groups.Len()
}

func (p *Provider) self(raw uintptr) resource.Resource {
	return resource.New(p.flavor.Kind, raw, p)
}

// lookup tells apart a zero handle, a handle the id source never issued and
// a group that existed but is gone.
func (p *Provider) lookup(raw uintptr) (*data, error) {
	if raw == 0 {
		return nil, errors.InvalidDefault(errors.PhaseGroup, p.flavor.Kind.Name())
	}
	if raw > p.ids.Last() {
		return nil, errors.NotFound(errors.PhaseGroup, p.flavor.Kind.Name(), fmt.Sprintf("handle 0x%016X", raw))
	}
	if p.closed {
		return nil, errors.Disposed(errors.PhaseGroup, p.flavor.Kind.Name(), raw)
	}
	d, ok := p.groups.Get(raw)
	if !ok {
		return nil, errors.Disposed(errors.PhaseGroup, p.flavor.Kind.Name(), raw)
	}
	return d, nil
}

func (p *Provider) displayName(raw uintptr) string {
	return p.names.NameOrDefault(resource.Ident{Kind: p.flavor.Kind, Raw: raw})
}

// Create allocates a group able to hold initialCapacity resources before
// growing. An empty name selects the flavor's default name.
func (p *Provider) Create(cascadeByDefault bool, initialCapacity int, name string) (Group, error) {
	if p.closed {
		return Group{}, errors.New(errors.PhaseGroup, errors.KindDisposed).
			Resource(p.flavor.Kind.Name(), "").
			Detail("provider has been closed").
			Build()
	}
	if initialCapacity <= 0 {
		return Group{}, errors.InvalidInput(errors.PhaseGroup,
			"initial capacity must be greater than zero")
	}

	raw := p.ids.Next()
	d := p.records.Rent()
	*d = data{
		items:   p.arrays.Rent(initialCapacity),
		cascade: cascadeByDefault,
	}
	p.groups.Set(raw, d)
	p.names.Store(resource.Ident{Kind: p.flavor.Kind, Raw: raw}, name)

	g := Group{p.self(raw)}
	Logger().Debug("group created",
		zap.String("flavor", p.flavor.Label),
		zap.Stringer("group", g.Ident()),
		zap.Int("capacity", len(d.items)),
		zap.Bool("cascade", cascadeByDefault))
	p.notifier.Notify(resource.Event{Type: resource.EventGroupCreated, Subject: g.Ident()})
	return g, nil
}

// Name implements resource.Provider.
func (p *Provider) Name(raw uintptr) (string, error) {
	if _, err := p.lookup(raw); err != nil {
		return "", err
	}
	return p.displayName(raw), nil
}

// IsDisposed implements resource.Disposer.
func (p *Provider) IsDisposed(raw uintptr) bool {
	return p.closed || !p.groups.ContainsKey(raw)
}

// Dispose implements resource.Disposer using the group's default cascade
// policy.
func (p *Provider) Dispose(raw uintptr) error {
	d, ok := p.groups.Get(raw)
	if !ok || p.closed {
		return nil
	}
	return p.dispose(raw, d, d.cascade)
}

func (p *Provider) disposeWith(raw uintptr, cascade bool) error {
	d, ok := p.groups.Get(raw)
	if !ok || p.closed {
		return nil
	}
	return p.dispose(raw, d, cascade)
}

// dispose tears the group down in reverse insertion order. Errors from
// contained resources do not stop the teardown; they are combined and
// returned once the group is gone.
func (p *Provider) dispose(raw uintptr, d *data, cascade bool) error {
	self := p.self(raw)
	if err := p.tracker.CheckPrematureDisposal(self); err != nil {
		return err
	}

	var errs error
	for i := d.count - 1; i >= 0; i-- {
		r := d.items[i]
		if err := p.tracker.Deregister(self, r); err != nil {
			errs = multierr.Append(errs, err)
		}
		if !cascade {
			continue
		}
		if err := r.Dispose(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		p.notifier.Notify(resource.Event{
			Type:    resource.EventContainedDisposed,
			Subject: self.Ident(),
			Related: r.Ident(),
		})
	}

	count := d.count
	p.release(raw, d)

	if errs != nil {
		Logger().Warn("group disposed with errors",
			zap.Stringer("group", self.Ident()),
			zap.Int("resources", count),
			zap.Error(errs))
	} else {
		Logger().Debug("group disposed",
			zap.Stringer("group", self.Ident()),
			zap.Int("resources", count),
			zap.Bool("cascade", cascade))
	}
	p.notifier.Notify(resource.Event{Type: resource.EventGroupDisposed, Subject: self.Ident(), Count: count})
	return errs
}

func (p *Provider) release(raw uintptr, d *data) {
	p.names.Free(resource.Ident{Kind: p.flavor.Kind, Raw: raw})
	p.groups.Remove(raw)
	p.arrays.Return(d.items, true)
	*d = data{}
	p.records.Return(d)
}

// Close tears down every remaining group without cascading and without the
// premature-disposal guard, then releases the provider's storage. Intended
// for shutdown. Close is idempotent.
func (p *Provider) Close() error {
	if p.closed {
		return nil
	}
	var errs error
	raws := p.groups.Keys(nil)
	for _, raw := range raws {
		d, _ := p.groups.Get(raw)
		if !p.tracker.IsClosed() {
			self := p.self(raw)
			for i := d.count - 1; i >= 0; i-- {
				errs = multierr.Append(errs, p.tracker.Deregister(self, d.items[i]))
			}
		}
		count := d.count
		p.release(raw, d)
		p.notifier.Notify(resource.Event{Type: resource.EventGroupDisposed, Subject: p.self(raw).Ident(), Count: count})
	}
	p.groups.Release()
	p.records.Release()
	p.closed = true

	Logger().Debug("group provider closed",
		zap.String("flavor", p.flavor.Label),
		zap.Int("groups", len(raws)))
	return errs
}

func (p *Provider) add(raw uintptr, r resource.Resource) error {
	d, err := p.lookup(raw)
	if err != nil {
		return err
	}
	if !r.IsValid() {
		return errors.InvalidDefault(errors.PhaseGroup, r.Kind().Name())
	}
	if d.sealed {
		return errors.Sealed(p.flavor.Kind.Name(), p.displayName(raw))
	}

	self := p.self(raw)
	if err := p.tracker.Register(self, r); err != nil {
		return err
	}
	if d.count == len(d.items) {
		next := p.arrays.Rent(len(d.items) * 2)
		copy(next, d.items[:d.count])
		p.arrays.Return(d.items, true)
		d.items = next
	}
	d.items[d.count] = r
	d.count++
	d.version++

	p.notifier.Notify(resource.Event{
		Type:    resource.EventGroupResourceAdded,
		Subject: self.Ident(),
		Related: r.Ident(),
		Count:   d.count,
	})
	return nil
}

func (p *Provider) seal(raw uintptr) error {
	d, err := p.lookup(raw)
	if err != nil {
		return err
	}
	if d.sealed {
		return nil
	}
	d.sealed = true
	p.notifier.Notify(resource.Event{Type: resource.EventGroupSealed, Subject: p.self(raw).Ident(), Count: d.count})
	return nil
}

func (p *Provider) rename(raw uintptr, name string) error {
	if _, err := p.lookup(raw); err != nil {
		return err
	}
	p.names.Store(resource.Ident{Kind: p.flavor.Kind, Raw: raw}, name)
	return nil
}

// versionOf returns a func that changes whenever the group's contents change
// or the group is disposed.
func (p *Provider) versionOf(raw uintptr, start *data) func() uint64 {
	return func() uint64 {
		cur, ok := p.groups.Get(raw)
		if !ok || cur != start || p.closed {
			return ^uint64(0)
		}
		return cur.version
	}
}

func (p *Provider) contents(raw uintptr) []resource.Resource {
	d, ok := p.groups.Get(raw)
	if !ok || p.closed {
		return nil
	}
	return d.items[:d.count]
}
