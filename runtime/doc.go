// Package runtime wires the resource core together into one long-lived
// service.
//
// # Quick Start
//
//	rt, err := runtime.New(runtime.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close()
//
//	// Record that material depends on texture
//	_ = rt.Tracker().Register(material, texture)
//
//	// Bulk lifetime management
//	g, _ := rt.CreateGroup(true, "level-1")
//	_ = g.Add(material)
//	_ = g.Seal()
//
//	// Tear down
//	_ = g.Dispose()
//
// # Observers
//
// Every lifecycle event of the tracker and both group providers is published
// through the runtime's notifier:
//
//	rt.Subscribe(observer)
//
// # Threading
//
// A Runtime is single-threaded. Confine it, and every resource created
// through it, to one goroutine. Separate runtimes share nothing except the
// process-wide array pool and kind registry, so they can run in parallel.
//
// # Shutdown
//
// Close disposes remaining groups without cascading, erases all dependency
// edges without the premature-disposal guard and frees every stored name.
package runtime
