package resource

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/wippyai/resource-core/errors"
)

// Ident is the universal lookup key for a resource: its kind and raw handle.
type Ident struct {
	Raw  uintptr
	Kind TypeTag
}

// IsZero reports whether id is the zero Ident.
func (id Ident) IsZero() bool {
	return id.Kind == InvalidTag && id.Raw == 0
}

// Hash returns a well-distributed hash of id for pooled maps.
func (id Ident) Hash() uint64 {
	var b [12]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(id.Kind))
	binary.LittleEndian.PutUint64(b[4:12], uint64(id.Raw))
	return xxhash.Sum64(b[:])
}

func (id Ident) String() string {
	return fmt.Sprintf("%s Handle 0x%016X", id.Kind.Name(), uint64(id.Raw))
}

// Provider is the implementation side of a resource. It knows how to act on
// raw handles it issued.
type Provider interface {
	// Name returns the display name of the resource behind raw.
	Name(raw uintptr) (string, error)
}

// Disposer is implemented by providers whose resources can be destroyed.
type Disposer interface {
	Dispose(raw uintptr) error
	IsDisposed(raw uintptr) bool
}

// Resource is a cheap, copyable (ident, implementation) pair.
// The zero Resource is invalid and every operation on it fails.
type Resource struct {
	impl  Provider
	ident Ident
}

// New pairs a raw handle of the given kind with its provider.
func New(kind TypeTag, raw uintptr, impl Provider) Resource {
	return Resource{
		ident: Ident{Kind: kind, Raw: raw},
		impl:  impl,
	}
}

// Ident returns the resource's lookup key.
func (r Resource) Ident() Ident {
	return r.ident
}

// Kind returns the resource's TypeTag.
func (r Resource) Kind() TypeTag {
	return r.ident.Kind
}

// Handle returns the raw handle.
func (r Resource) Handle() uintptr {
	return r.ident.Raw
}

// IsValid reports whether r has an implementation.
func (r Resource) IsValid() bool {
	return r.impl != nil
}

// Implementation returns the provider, or an invalid-default error.
func (r Resource) Implementation() (Provider, error) {
	if r.impl == nil {
		return nil, errors.InvalidDefault(errors.PhaseResource, r.ident.Kind.Name())
	}
	return r.impl, nil
}

// Name returns the resource's display name.
func (r Resource) Name() (string, error) {
	impl, err := r.Implementation()
	if err != nil {
		return "", err
	}
	return impl.Name(r.ident.Raw)
}

// Dispose destroys the resource through its provider. Providers that do not
// implement Disposer make this a no-op.
func (r Resource) Dispose() error {
	impl, err := r.Implementation()
	if err != nil {
		return err
	}
	if d, ok := impl.(Disposer); ok {
		return d.Dispose(r.ident.Raw)
	}
	return nil
}

// IsDisposed reports whether the provider considers the resource destroyed.
// Invalid resources and non-disposable providers report false.
func (r Resource) IsDisposed() bool {
	if d, ok := r.impl.(Disposer); ok {
		return d.IsDisposed(r.ident.Raw)
	}
	return false
}

// Equal reports whether both resources share ident and implementation.
func (r Resource) Equal(o Resource) bool {
	return r.ident == o.ident && r.impl == o.impl
}

func (r Resource) String() string {
	if r.impl == nil {
		return r.ident.Kind.Name() + " (invalid)"
	}
	name, err := r.impl.Name(r.ident.Raw)
	if err != nil || r.IsDisposed() {
		return r.ident.Kind.Name() + " (disposed)"
	}
	return fmt.Sprintf("%s %q", r.ident.Kind.Name(), name)
}
