// Package resource defines resource identity and the shared building blocks
// used by the dependency tracker and resource groups.
//
// # Identity
//
// A resource is a pair of an Ident (kind tag plus raw handle) and the
// Provider that issued the handle:
//
//	var Meshes = resource.DefineKind("Mesh", "Unnamed Mesh", func(r resource.Resource) Mesh {
//	    return Mesh{r}
//	})
//
//	mesh := Meshes.New(raw, meshProvider)
//
// The zero Resource is invalid; every accessor on it reports an
// invalid-default error instead of panicking.
//
// # Typed enumeration
//
// Containers expose their contents through Iterator values. An iterator
// samples the container version at creation and fails with an
// enumeration-invalidated error if the container changes afterwards:
//
//	it := group.ResourcesOfType(g, Meshes)
//	err := it.Each(func(i int, m Mesh) bool {
//	    fmt.Println(i, m)
//	    return true
//	})
//
// # Providers
//
// Providers allocate raw handles however they like. Slots offers an
// in-memory allocator with generation-checked handles, and IDSource issues
// monotonically increasing handles. Names keeps display names for
// resources whose providers do not store their own.
//
// # Events
//
// Dependency registration, group membership changes and disposals are
// published to Observers through a Notifier:
//
//	n := resource.NewNotifier()
//	n.Subscribe(myObserver)
//
// None of the types in this package lock. Callers own synchronization.
package resource
