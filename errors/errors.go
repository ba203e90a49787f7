package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates which subsystem raised the error
type Phase string

const (
	PhaseContainer  Phase = "container"  // pooled vector/map/object pool
	PhaseResource   Phase = "resource"   // resource values and names
	PhaseDependency Phase = "dependency" // dependency tracker
	PhaseGroup      Phase = "group"      // resource groups
	PhaseRuntime    Phase = "runtime"    // runtime lifecycle
	PhaseLoad       Phase = "load"       // scenario loading
	PhaseParse      Phase = "parse"      // scenario parsing
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidDefault         Kind = "invalid_default"
	KindDisposed               Kind = "disposed"
	KindSealed                 Kind = "sealed"
	KindPrematureDisposal      Kind = "premature_disposal"
	KindEnumerationInvalidated Kind = "enumeration_invalidated"
	KindOutOfBounds            Kind = "out_of_bounds"
	KindDuplicateKey           Kind = "duplicate_key"
	KindInvalidInput           Kind = "invalid_input"
	KindNotFound               Kind = "not_found"
	KindTypeMismatch           Kind = "type_mismatch"
)

// Sentinels match any error of the same Kind regardless of Phase.
var (
	ErrInvalidDefault         = &Error{Kind: KindInvalidDefault}
	ErrDisposed               = &Error{Kind: KindDisposed}
	ErrSealed                 = &Error{Kind: KindSealed}
	ErrPrematureDisposal      = &Error{Kind: KindPrematureDisposal}
	ErrEnumerationInvalidated = &Error{Kind: KindEnumerationInvalidated}
	ErrOutOfBounds            = &Error{Kind: KindOutOfBounds}
	ErrDuplicateKey           = &Error{Kind: KindDuplicateKey}
	ErrInvalidInput           = &Error{Kind: KindInvalidInput}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrTypeMismatch           = &Error{Kind: KindTypeMismatch}
)

// Error is the structured error type used throughout the core
type Error struct {
	Value        any
	Cause        error
	Phase        Phase
	Kind         Kind
	ResourceKind string
	ResourceName string
	Detail       string
	Path         []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	hasResource := e.ResourceKind != "" || e.ResourceName != ""
	if hasResource {
		b.WriteString(": ")
		if e.ResourceKind != "" {
			b.WriteString(e.ResourceKind)
		}
		if e.ResourceName != "" {
			if e.ResourceKind != "" {
				b.WriteByte(' ')
			}
			b.WriteString(fmt.Sprintf("%q", e.ResourceName))
		}
	}

	if e.Detail != "" {
		if hasResource {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// IsKind reports whether any error in err's chain is a structured error of kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) && e.Kind == kind {
		return true
	}
	var de *DependencyError
	return kind == KindPrematureDisposal && errors.As(err, &de)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Resource sets the resource kind and display name involved
func (b *Builder) Resource(kind, name string) *Builder {
	b.err.ResourceKind = kind
	b.err.ResourceName = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidDefault creates an error for operating on a zero-value resource
func InvalidDefault(phase Phase, resourceKind string) *Error {
	return &Error{
		Phase:        phase,
		Kind:         KindInvalidDefault,
		ResourceKind: resourceKind,
		Detail:       "resource has no implementation (zero value)",
	}
}

// Disposed creates an error for operating on a resource that no longer exists
func Disposed(phase Phase, resourceKind string, handle uintptr) *Error {
	return &Error{
		Phase:        phase,
		Kind:         KindDisposed,
		ResourceKind: resourceKind,
		Detail:       fmt.Sprintf("handle 0x%016X has been disposed", handle),
		Value:        handle,
	}
}

// Sealed creates an error for adding to a sealed group
func Sealed(groupKind, groupName string) *Error {
	return &Error{
		Phase:        PhaseGroup,
		Kind:         KindSealed,
		ResourceKind: groupKind,
		ResourceName: groupName,
		Detail:       "cannot add resource to a sealed group",
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// OutOfBoundsOfType creates an out of bounds error for a kind-filtered query
func OutOfBoundsOfType(phase Phase, resourceKind string, index, count int) *Error {
	return &Error{
		Phase:        phase,
		Kind:         KindOutOfBounds,
		ResourceKind: resourceKind,
		Detail:       fmt.Sprintf("index %d out of range for resources of this kind (actual count = %d)", index, count),
		Value:        index,
	}
}

// EnumerationInvalidated creates an error for a stale typed iterator
func EnumerationInvalidated(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEnumerationInvalidated,
		Detail: detail,
	}
}

// DuplicateKey creates an error for adding an existing key to a map
func DuplicateKey(phase Phase, key any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateKey,
		Detail: fmt.Sprintf("key %v already exists", key),
		Value:  key,
	}
}

// TypeMismatch creates a resource kind mismatch error
func TypeMismatch(phase Phase, expected, actual string) *Error {
	return &Error{
		Phase:        phase,
		Kind:         KindTypeMismatch,
		ResourceKind: actual,
		Detail:       fmt.Sprintf("expected resource kind %s", expected),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a scenario loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
