package pipe

import (
	"github.com/superpicky/releaser/pkg/context"
)

// Piper defines the interface for all pipeline stages.
// Each pipe represents one stage of the packaging run and is executed
// sequentially by the pipeline; the first non-skip error aborts the run.
type Piper interface {
	// String returns the stage name for logging and failure reports.
	String() string

	// Run executes the stage. A nil return advances the pipeline; a
	// SkipError (via pipe.Skip) advances it without counting as a failure;
	// any other error stops the run.
	Run(ctx *context.Context) error
}

// IsSkip indicates that a pipe was intentionally skipped.
type IsSkip interface {
	IsSkip() bool
}

// SkipError represents an intentional skip of a pipeline stage, such as
// notarization in test mode. Skips never fail the pipeline.
type SkipError struct {
	Reason string
}

func (e SkipError) Error() string { return e.Reason }
func (e SkipError) IsSkip() bool  { return true }

// Skip creates a new skip error with the given reason.
func Skip(reason string) SkipError {
	return SkipError{Reason: reason}
}
