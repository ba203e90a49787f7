// Package resourcecore manages the lifetime of opaque, handle-addressed
// resources whose real state lives outside the process.
//
// It does not know what a texture or a camera is. It only knows resource
// identity, display names, "must outlive" edges between resources and bulk
// grouping of resources.
//
// # Architecture Overview
//
//	resourcecore/        Root package with collaborator interfaces
//	├── runtime/         Long-lived service wiring everything together
//	├── dependency/      Dependency edge tracker and premature-disposal guard
//	├── group/           Sealable, heterogeneous resource groups
//	├── resource/        Identity, kinds, typed iterators, names, events
//	├── pool/            Pooled vector, map, object pool and string storage
//	├── metrics/         Prometheus observer for lifecycle events
//	├── errors/          Structured error types
//	└── cmd/restrack/    Scenario runner and interactive browser
//
// # Quick Start
//
//	rt, err := runtime.New(runtime.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close()
//
//	// A builder registers every edge its resource owns...
//	_ = rt.Tracker().Register(material, texture)
//
//	// ...and on disposal checks the guard before tearing down.
//	if err := rt.Tracker().CheckPrematureDisposal(texture); err != nil {
//	    return err // material still needs it
//	}
//
// # Disposal protocol
//
// A kind-specific provider disposing one of its resources should:
//
//  1. return early if the resource is already gone
//  2. call CheckPrematureDisposal on the resource itself
//  3. Deregister every edge the resource registered as a dependent
//  4. perform the native teardown
//
// # Threading
//
// Everything except the shared array pool and the kind registry is
// single-threaded. Confine a Runtime to one goroutine.
package resourcecore
