package bench

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/opbench/opbench/pkg/logging"
)

// DefaultBaseIters is the starting iteration count of the adaptive loop
// when the caller does not fix one explicitly.
const DefaultBaseIters = 100

// RunConfig is the per-invocation configuration snapshot of a Runner. All
// fields are set once at construction and read-only during a run.
type RunConfig struct {
	// Iterations, when positive, fixes the per-attempt iteration count
	// instead of the adaptive default
	Iterations int

	// WarmupIterations is the iteration count of the single untimed
	// priming execution before the adaptive loop
	WarmupIterations int

	// MinTimePerTest is the cumulative wall-time floor in seconds a
	// test must accumulate before its measurement is reported
	MinTimePerTest float64

	// Multiplier grows the iteration count between attempts
	Multiplier int

	// PredefinedMinimumSecs is the single-attempt duration that makes a
	// measurement significant on its own
	PredefinedMinimumSecs float64

	// MaxIters is the iteration count past which a measurement is
	// accepted regardless of duration
	MaxIters int

	Filter   Filter
	ListOps  bool
	Observer bool
}

// Runner executes every registered test case that survives the filter,
// measuring each with the adaptive timing loop. Construct one per
// invocation and discard it after Run returns.
type Runner struct {
	cfg           RunConfig
	reg           *Registry
	out           io.Writer
	logger        zerolog.Logger
	baseIters     int
	explicitIters bool
}

// NewRunner creates a Runner over the given registry. Zero-valued loop
// tunables fall back to the conventional defaults.
func NewRunner(reg *Registry, cfg RunConfig) *Runner {
	if cfg.Multiplier == 0 {
		cfg.Multiplier = 2
	}
	if cfg.PredefinedMinimumSecs == 0 {
		cfg.PredefinedMinimumSecs = 4.0
	}
	if cfg.MaxIters == 0 {
		cfg.MaxIters = 1000000
	}

	r := &Runner{
		cfg:       cfg,
		reg:       reg,
		out:       os.Stdout,
		logger:    logging.GetLogger("bench.runner"),
		baseIters: DefaultBaseIters,
	}
	if cfg.Iterations > 0 {
		r.baseIters = cfg.Iterations
		r.explicitIters = true
	}
	return r
}

// SetOutput redirects report output, mainly for tests.
func (r *Runner) SetOutput(w io.Writer) {
	r.out = w
}

// Run walks the registry in registration order, filters, seeds, warms up,
// measures and reports. The first operator failure aborts the whole run.
func (r *Runner) Run() error {
	r.printHeader()

	if r.cfg.ListOps {
		return nil
	}

	for _, id := range r.reg.IDs() {
		tc, err := r.reg.Get(id)
		if err != nil {
			return err
		}

		if !r.cfg.Filter.Keep(tc) {
			r.logger.Trace().Str("test", tc.Config.TestName).Msg("Filtered out")
			continue
		}

		// Reseeding per test keeps the randomly generated inputs
		// identical across repeated runs of the same test ID.
		Reseed(SeedFor(id))

		fmt.Fprintf(r.out, "# Benchmarking %s: %s\n", tc.Framework, tc.Op.ModuleName())
		r.logger.Info().
			Str("framework", tc.Framework).
			Str("op", tc.Op.ModuleName()).
			Str("test", tc.Config.TestName).
			Bool("backward", tc.Config.RunBackward).
			Msg("Benchmarking test case")

		launch := r.launchForward
		if tc.Config.RunBackward {
			launch = r.launchBackward
		}

		// Warmup: same launch path, timing discarded
		if _, err := launch(tc, r.cfg.WarmupIterations); err != nil {
			return err
		}

		reportedTimeUs, err := r.measureTime(launch, tc, r.baseIters)
		if err != nil {
			return err
		}

		r.printPerfResult(id, reportedTimeUs, tc)
	}

	return nil
}
