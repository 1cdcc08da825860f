package bench

import (
	"time"

	"github.com/opbench/opbench/pkg/errors"
)

// launchFunc executes the measured operation iters times as one timed
// block and returns the elapsed wall time in seconds.
type launchFunc func(tc TestCase, iters int) (float64, error)

// launchForward times the forward pass. JIT-capable operators get their
// graph generated outside the timed block.
func (r *Runner) launchForward(tc TestCase, iters int) (float64, error) {
	if jc, ok := tc.Op.(JITCapable); ok {
		if err := jc.GenerateJITForwardGraph(iters); err != nil {
			return 0, errors.Wrapf(err, errors.ErrOpForward,
				"generating JIT forward graph for %s", tc.Op.ModuleName())
		}
	}

	start := time.Now()
	err := tc.Op.RunForward(iters)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrOpForward,
			"running forward pass of %s", tc.Op.ModuleName())
	}
	return elapsed, nil
}

// launchBackward primes the operator with an untimed forward pass so an
// output exists, then times only the backward pass. JIT-capable operators
// take the eager path for priming since no graph is needed to get an output.
func (r *Runner) launchBackward(tc TestCase, iters int) (float64, error) {
	if _, ok := tc.Op.(JITCapable); ok {
		if err := tc.Op.RunForwardEager(); err != nil {
			return 0, errors.Wrapf(err, errors.ErrOpForward,
				"priming eager forward pass of %s", tc.Op.ModuleName())
		}
		if err := tc.Op.LossFunc(); err != nil {
			return 0, errors.Wrapf(err, errors.ErrOpBackward,
				"computing loss for %s", tc.Op.ModuleName())
		}
	} else {
		if err := tc.Op.RunForward(1); err != nil {
			return 0, errors.Wrapf(err, errors.ErrOpForward,
				"priming forward pass of %s", tc.Op.ModuleName())
		}
	}

	start := time.Now()
	err := tc.Op.RunBackward(iters)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrOpBackward,
			"running backward pass of %s", tc.Op.ModuleName())
	}
	return elapsed, nil
}

// resultIsSignificant decides whether the last measurement can be reported.
// One of three triggers must fire (the iteration cap was exceeded, the last
// run was long enough on its own, or the caller fixed the iteration count)
// and the cumulative time across all attempts must clear the per-test floor.
func (r *Runner) resultIsSignificant(iters int, runTimeSec, currTestTotalTime float64) bool {
	return (iters > r.cfg.MaxIters ||
		runTimeSec > r.cfg.PredefinedMinimumSecs ||
		r.explicitIters) &&
		currTestTotalTime > r.cfg.MinTimePerTest
}

// predictNumIterNeeded grows the iteration count for the next attempt.
func (r *Runner) predictNumIterNeeded(iters int) int {
	return iters * r.cfg.Multiplier
}

// measureTime runs the operation with a growing iteration count until the
// measurement is significant, then reports microseconds per iteration from
// the final attempt only. Earlier attempts contribute nothing but their
// wall time toward the cumulative floor. Note that an explicit iteration
// count does not pin the loop to one attempt: when the cumulative floor is
// unmet the count is still re-multiplied.
func (r *Runner) measureTime(launch launchFunc, tc TestCase, iters int) (float64, error) {
	currTestTotalTime := 0.0
	for {
		runTimeSec, err := launch(tc, iters)
		if err != nil {
			return 0, err
		}
		currTestTotalTime += runTimeSec

		if r.resultIsSignificant(iters, runTimeSec, currTestTotalTime) {
			return 1e6 * runTimeSec / float64(iters), nil
		}

		iters = r.predictNumIterNeeded(iters)
		r.logger.Debug().
			Str("op", tc.Op.ModuleName()).
			Int("nextIters", iters).
			Float64("totalSec", currTestTotalTime).
			Msg("Measurement not yet significant, growing iteration count")
	}
}
