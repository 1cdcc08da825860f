package opbench

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/opbench/opbench/internal/version"
	"github.com/opbench/opbench/pkg/bench"
	"github.com/opbench/opbench/pkg/config"
	"github.com/opbench/opbench/pkg/logging"
	"github.com/opbench/opbench/pkg/ops"
)

var verbosity int

// NewRootCmd builds the opbench command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opbench",
		Short: "An operator microbenchmark runner",
		Long: `opbench runs registered operator benchmarks, adaptively growing the
iteration count of each test until its timing is stable enough to report,
and prints per-test execution time in microseconds.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// runFlags carries the run command's flag values before they are merged
// with the configuration file.
type runFlags struct {
	iterations       int
	warmupIterations int
	minTimePerTest   float64
	tag              string
	operator         string
	testName         string
	frameworks       []string
	forwardOnly      bool
	listOps          bool
	observer         bool
}

func newRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the registered operator benchmarks",
		Long: `Run executes every registered benchmark test case that survives the
filter flags. Filters are exact matches; an empty filter matches everything.
By default only forward tests run, --forward-only selects the backward set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// CLI flags beat the config file when set
			if cmd.Flags().Changed("iterations") {
				cfg.Bench.Iterations = flags.iterations
			}
			if cmd.Flags().Changed("warmup-iterations") {
				cfg.Bench.WarmupIterations = flags.warmupIterations
			}
			if cmd.Flags().Changed("min-time-per-test") {
				cfg.Bench.MinTimePerTest = flags.minTimePerTest
			}
			if cmd.Flags().Changed("observer") {
				cfg.Output.Observer = flags.observer
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := logging.GetLogger("cmd.run")

			reg := bench.NewRegistry()
			if err := ops.RegisterAll(reg); err != nil {
				return err
			}
			logger.Info().Int("testCases", reg.Len()).Msg("Registry populated")

			runner := bench.NewRunner(reg, bench.RunConfig{
				Iterations:            cfg.Bench.Iterations,
				WarmupIterations:      cfg.Bench.WarmupIterations,
				MinTimePerTest:        cfg.Bench.MinTimePerTest,
				Multiplier:            cfg.Bench.Multiplier,
				PredefinedMinimumSecs: cfg.Bench.PredefinedMinimumSecs,
				MaxIters:              cfg.Bench.MaxIters,
				Filter: bench.Filter{
					TestName:    flags.testName,
					Tag:         flags.tag,
					Operator:    flags.operator,
					Frameworks:  flags.frameworks,
					ForwardOnly: flags.forwardOnly,
				},
				ListOps:  flags.listOps,
				Observer: cfg.Output.Observer,
			})

			if err := runner.Run(); err != nil {
				return err
			}
			logger.Info().Msg("Run finished")
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.iterations, "iterations", 0,
		"Fix the per-attempt iteration count instead of adapting")
	cmd.Flags().IntVar(&flags.warmupIterations, "warmup-iterations", 100,
		"Iteration count of the untimed warmup execution")
	cmd.Flags().Float64Var(&flags.minTimePerTest, "min-time-per-test", 0,
		"Cumulative seconds a test must accumulate before reporting")
	cmd.Flags().StringVar(&flags.tag, "tag", "",
		"Only run test cases with this exact tag")
	cmd.Flags().StringVar(&flags.operator, "operator", "",
		"Only run test cases for this exact operator module name")
	cmd.Flags().StringVar(&flags.testName, "test-name", "",
		"Only run the test case with this exact name")
	cmd.Flags().StringSliceVar(&flags.frameworks, "framework", nil,
		"Only run test cases from these frameworks")
	cmd.Flags().BoolVar(&flags.forwardOnly, "forward-only", false,
		"Select the backward test set (compared against each case's backward flag)")
	cmd.Flags().BoolVar(&flags.listOps, "list-ops", false,
		"List the operators that would run, without benchmarking")
	cmd.Flags().BoolVar(&flags.observer, "observer", false,
		"Emit single-line machine-readable result records")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("opbench version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
