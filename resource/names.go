package resource

import (
	"github.com/wippyai/resource-core/pool"
)

// Names stores display names for resources, backed by pooled storage.
// Resources without an entry fall back to their kind's default name.
type Names struct {
	strings *pool.StringPool
	entries *pool.Map[Ident, pool.RentedString]
}

// NewNames creates an empty name table.
func NewNames() *Names {
	return &Names{
		strings: pool.NewStringPool(),
		entries: pool.NewMap[Ident, pool.RentedString](Ident.Hash),
	}
}

// Store records name for id, replacing any previous name.
// An empty name removes the entry so the default applies.
func (n *Names) Store(id Ident, name string) {
	n.Free(id)
	if name == "" {
		return
	}
	n.entries.Set(id, n.strings.Rent(name))
}

// Get returns the stored name for id.
func (n *Names) Get(id Ident) (string, bool) {
	s, ok := n.entries.Get(id)
	if !ok {
		return "", false
	}
	return s.String(), true
}

// NameOr returns the stored name for id, or fallback.
func (n *Names) NameOr(id Ident, fallback string) string {
	if s, ok := n.Get(id); ok {
		return s
	}
	return fallback
}

// NameOrDefault returns the stored name or the kind's default name.
func (n *Names) NameOrDefault(id Ident) string {
	return n.NameOr(id, id.Kind.DefaultName())
}

// Free removes the name for id and returns its storage to the pool.
func (n *Names) Free(id Ident) bool {
	s, ok := n.entries.Get(id)
	if !ok {
		return false
	}
	n.entries.Remove(id)
	s.Free()
	return true
}

// Len returns the number of stored names.
func (n *Names) Len() int {
	return n.entries.Len()
}

// Live returns the number of rented name buffers still outstanding.
func (n *Names) Live() int {
	return n.strings.Live()
}

// Release frees every name.
func (n *Names) Release() {
	n.entries.Each(func(_ Ident, s pool.RentedString) bool {
		s.Free()
		return true
	})
	n.entries.Release()
}
