// Package dependency tracks "must outlive" edges between resources.
//
// Builders register an edge for everything a resource structurally owns and
// deregister those edges when it is torn down:
//
//	tr := dependency.NewWithDefaults()
//
//	_ = tr.Register(material, texture)
//
//	// texture cannot go yet
//	err := tr.CheckPrematureDisposal(texture) // *errors.DependencyError
//
//	_ = tr.Deregister(material, texture)
//	err = tr.CheckPrematureDisposal(texture) // nil
//
// Edges live only at the target, so "what depends on X" is cheap while
// "what does X depend on" is not answered by this package. Deregistering an
// edge that does not exist is not an error.
//
// Dependents can be enumerated, optionally filtered by kind:
//
//	it, _ := dependency.DependentsOfType(tr, texture, Materials)
//	n, _ := it.Len()
//
// Iterators fail with an enumeration-invalidated error once the target's
// dependents change.
//
// A Tracker is not safe for concurrent use.
package dependency
