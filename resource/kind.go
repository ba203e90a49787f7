package resource

import (
	"fmt"
	"sync"

	"github.com/wippyai/resource-core/errors"
)

// TypeTag identifies a resource kind for the lifetime of the process.
// Tag 0 is reserved and always invalid.
type TypeTag uint32

// InvalidTag is the zero TypeTag.
const InvalidTag TypeTag = 0

type kindInfo struct {
	name        string
	defaultName string
}

var (
	registryMu sync.RWMutex
	registry   = []kindInfo{{name: "Invalid", defaultName: "Invalid Resource"}}
)

// RegisterKind allocates a new TypeTag. name is used in diagnostics,
// defaultName is the display name of resources that were never named.
// Usually called once per kind from a package-level var.
func RegisterKind(name, defaultName string) TypeTag {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, kindInfo{name: name, defaultName: defaultName})
	return TypeTag(len(registry) - 1)
}

func (t TypeTag) info() kindInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if int(t) >= len(registry) {
		return kindInfo{name: fmt.Sprintf("Kind(%d)", uint32(t)), defaultName: "Unnamed Resource"}
	}
	return registry[t]
}

// Valid reports whether t was produced by RegisterKind.
func (t TypeTag) Valid() bool {
	if t == InvalidTag {
		return false
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	return int(t) < len(registry)
}

// Name returns the kind name given at registration.
func (t TypeTag) Name() string {
	return t.info().name
}

// DefaultName returns the display name used for unnamed resources of this kind.
func (t TypeTag) DefaultName() string {
	return t.info().defaultName
}

func (t TypeTag) String() string {
	return t.Name()
}

// Kind is a typed view over a TypeTag. It converts untyped Resource values
// into the caller's strongly typed resource type T, which is how typed
// enumerations avoid any per-kind code in the containers themselves.
type Kind[T any] struct {
	wrap func(Resource) T
	tag  TypeTag
}

// DefineKind registers a new kind and binds it to wrap.
func DefineKind[T any](name, defaultName string, wrap func(Resource) T) *Kind[T] {
	return BindKind(RegisterKind(name, defaultName), wrap)
}

// BindKind creates a typed view over an already registered tag.
func BindKind[T any](tag TypeTag, wrap func(Resource) T) *Kind[T] {
	return &Kind[T]{tag: tag, wrap: wrap}
}

// Untyped returns a Kind whose values are plain Resources.
func Untyped(tag TypeTag) *Kind[Resource] {
	return BindKind(tag, func(r Resource) Resource { return r })
}

// Tag returns the kind's TypeTag.
func (k *Kind[T]) Tag() TypeTag {
	return k.tag
}

// Name returns the kind name.
func (k *Kind[T]) Name() string {
	return k.tag.Name()
}

// Matches reports whether r belongs to this kind.
func (k *Kind[T]) Matches(r Resource) bool {
	return r.ident.Kind == k.tag
}

// Wrap converts r into T, failing if r is of another kind or invalid.
func (k *Kind[T]) Wrap(r Resource) (T, error) {
	var zero T
	if !r.IsValid() {
		return zero, errors.InvalidDefault(errors.PhaseResource, k.tag.Name())
	}
	if r.ident.Kind != k.tag {
		return zero, errors.TypeMismatch(errors.PhaseResource, k.tag.Name(), r.ident.Kind.Name())
	}
	return k.wrap(r), nil
}

// New builds a typed resource from a raw handle and its provider.
func (k *Kind[T]) New(raw uintptr, impl Provider) T {
	return k.wrap(New(k.tag, raw, impl))
}
