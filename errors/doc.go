// Package errors provides structured error types for the resource core.
//
// Errors are categorized by Phase (which subsystem raised the error) and Kind
// (error category). The Error type carries the resource kind and display name
// involved, a detail message and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseGroup, errors.KindSealed).
//		Resource("ResourceGroup", "Level Assets").
//		Detail("cannot add resource to a sealed group").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseContainer, path, 10, 5)
//	err := errors.Disposed(errors.PhaseGroup, "ResourceGroup", handle)
//
// Every Kind has a phase-independent sentinel (ErrDisposed, ErrSealed, ...)
// so callers can branch with the standard library:
//
//	if errors.Is(err, rcerrors.ErrPrematureDisposal) { ... }
//
// Premature disposal is reported with the richer DependencyError, which lists
// up to MaxListedDependents dependent names.
package errors
