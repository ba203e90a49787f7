package resourcecore

import "github.com/wippyai/resource-core/resource"

// Namer is implemented by every resource provider.
type Namer = resource.Provider

// Disposer is implemented by providers whose resources can be destroyed.
type Disposer = resource.Disposer

// Observer receives lifecycle events from a runtime.
type Observer = resource.Observer

// Lifecycle is the full contract a kind-specific provider offers.
type Lifecycle interface {
	Namer
	Disposer
}
