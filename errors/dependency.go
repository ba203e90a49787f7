package errors

import (
	"fmt"
	"strings"
)

// MaxListedDependents bounds how many dependent names a DependencyError carries.
const MaxListedDependents = 3

// DependencyError is returned when a resource is disposed while other
// resources still depend on it.
type DependencyError struct {
	TargetKind string
	TargetName string
	// Dependents holds at most MaxListedDependents display names.
	Dependents []string
	// Total is the full number of live dependents.
	Total int
}

// NewDependencyError creates a premature-disposal error. Only the first
// MaxListedDependents names are kept.
func NewDependencyError(targetKind, targetName string, dependents []string, total int) *DependencyError {
	listed := dependents
	if len(listed) > MaxListedDependents {
		listed = listed[:MaxListedDependents]
	}
	if total < len(listed) {
		total = len(listed)
	}
	return &DependencyError{
		TargetKind: targetKind,
		TargetName: targetName,
		Dependents: append([]string(nil), listed...),
		Total:      total,
	}
}

// Truncated reports whether some dependent names were left out.
func (e *DependencyError) Truncated() bool {
	return e.Total > len(e.Dependents)
}

func (e *DependencyError) Error() string {
	var b strings.Builder
	b.WriteString("[dependency] premature_disposal: ")
	b.WriteString(e.TargetKind)
	b.WriteString(fmt.Sprintf(" %q", e.TargetName))
	b.WriteString(fmt.Sprintf(" cannot be disposed while %d resource(s) still depend on it: ", e.Total))

	for i, name := range e.Dependents {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%q", name))
	}
	if e.Truncated() {
		b.WriteString(", ...")
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *DependencyError) Is(target error) bool {
	switch t := target.(type) {
	case *DependencyError:
		return true
	case *Error:
		return t.Kind == KindPrematureDisposal && (t.Phase == "" || t.Phase == PhaseDependency)
	}
	return false
}
