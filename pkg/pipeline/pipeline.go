// Package pipeline executes all registered pipes in sequence.
//
// The run has two phases: the preflight phase checks the environment can
// complete the selected mode before anything happens, and the execution
// phase performs the packaging stages. The first failing pipe aborts the
// whole run; skipped pipes (mode gating) continue.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/logging"
	"github.com/superpicky/releaser/pkg/pipe"
)

// RunPreflight executes only the preflight pipes.
// Used by the check command and as the first phase of a full run.
func RunPreflight(ctx *context.Context) error {
	return runPipes(ctx, pipe.PreflightPipes)
}

// RunExecution executes only the packaging stages.
// Should be called after RunPreflight succeeds.
func RunExecution(ctx *context.Context) error {
	return runPipes(ctx, pipe.ExecutionPipes)
}

// RunAll executes preflight first, then the packaging stages.
func RunAll(ctx *context.Context) error {
	if err := RunPreflight(ctx); err != nil {
		return err
	}
	return RunExecution(ctx)
}

// runPipes executes a slice of pipes in sequence, stopping at the first
// non-skip error and wrapping it with the failing stage's name.
func runPipes(ctx *context.Context, pipes []Piper) error {
	for _, p := range pipes {
		ctx.Logger.WithField(logging.StageKey, p.String()).Info("")
		start := time.Now()

		if err := p.Run(ctx); err != nil {
			if isSkip(err) {
				ctx.Logger.Infof("Skipped: %v", err)
				continue
			}
			return fmt.Errorf("%s: %w", p.String(), err)
		}

		ctx.Logger.Debugf("Completed %s in %s", p.String(), time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func isSkip(err error) bool {
	var s pipe.IsSkip
	return errors.As(err, &s) && s.IsSkip()
}

// Piper is re-exported for convenience within the pipeline package.
type Piper = pipe.Piper
