// Package ops provides the built-in operators shipped with the benchmark
// runner, implemented on gonum. Each operator materializes its inputs
// lazily from the process-wide bench RNG so that the runner's per-test
// reseeding yields identical inputs across repeated runs.
package ops

import (
	"github.com/opbench/opbench/pkg/bench"
)

// Framework labels the built-in operators in test IDs and filters.
const Framework = "Gonum"

// randSlice draws n values from the benchmark RNG.
func randSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = bench.RNG().Float64()
	}
	return s
}

// shapeSet groups the input shapes generated under one tag.
type shapeSet struct {
	tag   string
	attrs []bench.AttrValues
}

// attrMap indexes a generated attribute combination by name.
func attrMap(attrs []bench.Attr) map[string]int {
	m := make(map[string]int, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	return m
}

// registerShapes expands the shape sets into test cases, one forward and
// one backward per combination, each with a fresh operator instance.
func registerShapes(reg *bench.Registry, shapes []shapeSet, build func(dims map[string]int) bench.OpBenchmark) error {
	for _, set := range shapes {
		for _, combo := range bench.CrossProduct(set.attrs...) {
			dims := attrMap(combo)
			for _, backward := range []bool{false, true} {
				tc := bench.TestCase{
					Op:        build(dims),
					Framework: Framework,
					Config: bench.TestConfig{
						TestName:    bench.TestNameFor(combo),
						InputConfig: bench.InputConfigFor(combo),
						Tag:         set.tag,
						RunBackward: backward,
					},
				}
				if err := reg.Register(tc); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// RegisterAll populates the registry with every built-in operator variant:
// short and long tags, forward and backward directions.
func RegisterAll(reg *bench.Registry) error {
	registrars := []func(*bench.Registry) error{
		registerAdd,
		registerMatMul,
		registerSum,
	}
	for _, register := range registrars {
		if err := register(reg); err != nil {
			return err
		}
	}
	return nil
}
