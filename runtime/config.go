package runtime

import (
	"go.uber.org/zap"

	"github.com/wippyai/resource-core/errors"
	"github.com/wippyai/resource-core/pool"
)

// Config configures a Runtime.
type Config struct {
	// Logger receives runtime lifecycle logs. Nil uses the package logger.
	Logger *zap.Logger
	// GroupInitialCapacity is the capacity used by CreateGroup and
	// CreateCombinedGroup.
	GroupInitialCapacity int
	// DependentsInitialCapacity is the starting size of each target's
	// dependent vector.
	DependentsInitialCapacity int
	// VectorPoolPrewarm is the number of dependent vectors and group records
	// created up front.
	VectorPoolPrewarm int
}

// DefaultConfig returns default runtime configuration.
func DefaultConfig() Config {
	return Config{
		GroupInitialCapacity:      8,
		DependentsInitialCapacity: pool.DefaultInitialCapacity,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.GroupInitialCapacity <= 0:
		return errors.New(errors.PhaseRuntime, errors.KindInvalidInput).
			Path("GroupInitialCapacity").
			Value(c.GroupInitialCapacity).
			Detail("must be greater than zero").
			Build()
	case c.DependentsInitialCapacity <= 0:
		return errors.New(errors.PhaseRuntime, errors.KindInvalidInput).
			Path("DependentsInitialCapacity").
			Value(c.DependentsInitialCapacity).
			Detail("must be greater than zero").
			Build()
	case c.VectorPoolPrewarm < 0:
		return errors.New(errors.PhaseRuntime, errors.KindInvalidInput).
			Path("VectorPoolPrewarm").
			Value(c.VectorPoolPrewarm).
			Detail("must not be negative").
			Build()
	}
	return nil
}
