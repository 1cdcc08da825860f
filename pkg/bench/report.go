package bench

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// observerRecord is the machine-readable per-test result line.
type observerRecord struct {
	Type   string `json:"type"`
	Metric string `json:"metric"`
	Unit   string `json:"unit"`
	Value  string `json:"value"`
}

// printHeader emits the run banner and, in list mode, the operators that
// would run.
func (r *Runner) printHeader() {
	dashLine := strings.Repeat("-", 40)
	tag := r.cfg.Filter.Tag
	if tag == "" {
		tag = "all"
	}
	fmt.Fprintf(r.out, "# %s\n# Operator Micro-benchmarks\n# %s\n# Tag : %s\n\n",
		dashLine, dashLine, tag)

	if r.cfg.ListOps {
		fmt.Fprintln(r.out, "# List of Operators to run:")
		if r.cfg.Filter.Operator == "" {
			for _, name := range r.reg.ModuleNames() {
				fmt.Fprintf(r.out, "# %s\n", name)
			}
		} else {
			fmt.Fprintf(r.out, "# %s\n", r.cfg.Filter.Operator)
		}
	}
}

// printPerfResult emits one test's result, either as a human-readable
// block or as a single observer line.
func (r *Runner) printPerfResult(fullTestID string, reportedTimeUs float64, tc TestCase) {
	if r.cfg.Observer {
		rec := observerRecord{
			Type:   "NET",
			Metric: fullTestID,
			Unit:   "us",
			Value:  strconv.FormatFloat(reportedTimeUs, 'f', -1, 64),
		}
		// The record is flat strings; marshalling cannot fail
		line, _ := json.Marshal(rec)
		fmt.Fprintf(r.out, "BenchObserver %s\n", line)
		return
	}

	direction := "Forward"
	if tc.Config.RunBackward {
		direction = "Backward"
	}

	var b strings.Builder
	if _, ok := tc.Op.(JITCapable); ok {
		b.WriteString("# Mode: Eager\n")
	}
	fmt.Fprintf(&b, "# Name: %s\n", tc.Config.TestName)
	fmt.Fprintf(&b, "# Input: %s\n", tc.Config.InputConfig)
	fmt.Fprintf(&b, "%s Execution Time (us) : %.3f\n", direction, reportedTimeUs)
	fmt.Fprintln(r.out, b.String())
}
