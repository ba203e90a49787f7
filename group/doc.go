// Package group implements resource groups: ordered, heterogeneous,
// append-then-seal collections with typed retrieval and cascading disposal.
//
// # Creating groups
//
// A Provider serves one Flavor. Standard and Combined behave identically
// and only live in different kind namespaces:
//
//	groups := group.NewProvider(group.Standard, group.Options{
//	    IDs:     ids,
//	    Names:   names,
//	    Tracker: tracker,
//	})
//
//	g, err := groups.Create(true, 8, "level-1")
//	_ = g.Add(mesh)
//	_ = g.Add(texture)
//	_ = g.Seal()
//
// Adding a resource registers the edge group -> resource, so contained
// resources cannot be disposed while the group is alive.
//
// # Typed retrieval
//
//	meshes, _ := group.ResourcesOfType(g, Meshes)
//	n, _ := meshes.Len()
//	first, _ := group.NthResourceOfType(g, Meshes, 0)
//
// Iterators are invalidated by later Add calls and by disposal.
//
// # Disposal
//
// Dispose first checks that nothing depends on the group itself, then walks
// the contents in reverse insertion order, deregistering each edge and, when
// cascading, disposing the resource. Disposing twice is a no-op.
package group
