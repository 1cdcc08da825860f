package bench

import (
	"fmt"
	"sort"

	"github.com/opbench/opbench/pkg/errors"
	"github.com/opbench/opbench/pkg/registry"
)

// TestConfig describes one benchmark variant of an operator. It is created
// by the test-definition layer and never mutated.
type TestConfig struct {
	// TestName is a short identifier built from the input attributes,
	// e.g. "M8_N2_K1"
	TestName string

	// InputConfig is the human-readable description of the inputs,
	// e.g. "M: 8, N: 2, K: 1"
	InputConfig string

	// Tag classifies the variant, e.g. "short" or "long"
	Tag string

	// RunBackward selects the backward pass as the measured operation
	RunBackward bool
}

func (c TestConfig) String() string {
	return fmt.Sprintf("TestConfig(test_name=%s, input_config=%s, tag=%s, run_backward=%t)",
		c.TestName, c.InputConfig, c.Tag, c.RunBackward)
}

// TestCase pairs an operator with the framework that owns it and one
// configuration to measure. Immutable once constructed.
type TestCase struct {
	Op        OpBenchmark
	Framework string
	Config    TestConfig
}

// TestKey is the composite identity of a test case. Two registrations with
// the same key refer to the same test; the later one wins.
type TestKey struct {
	Module    string
	Framework string
	Config    TestConfig
}

// String renders the full test ID used for registry storage, seeding and
// observer output.
func (k TestKey) String() string {
	return k.Module + k.Framework + k.Config.String()
}

// Key derives the composite key of a test case.
func (tc TestCase) Key() TestKey {
	return TestKey{
		Module:    tc.Op.ModuleName(),
		Framework: tc.Framework,
		Config:    tc.Config,
	}
}

// Registry collects test cases for a run. It is passed explicitly to both
// the registration side and the runner; there is no process-global instance.
type Registry struct {
	cases registry.Registry[TestCase]
}

// NewRegistry creates an empty test case registry.
func NewRegistry() *Registry {
	return &Registry{cases: registry.New[TestCase]()}
}

// Register inserts a test case, overwriting any earlier registration with
// the same derived key.
func (r *Registry) Register(tc TestCase) error {
	if tc.Op == nil {
		return errors.New(errors.ErrOpInvalid, "test case has no operator")
	}
	if tc.Framework == "" {
		return errors.New(errors.ErrInvalidInput, "test case has no framework")
	}
	return r.cases.Register(tc.Key().String(), tc)
}

// IDs returns the full test IDs in registration order.
func (r *Registry) IDs() []string {
	return r.cases.Keys()
}

// Get returns the test case stored under the given full test ID.
func (r *Registry) Get(id string) (TestCase, error) {
	return r.cases.Get(id)
}

// Len returns the number of registered test cases.
func (r *Registry) Len() int {
	return r.cases.Count()
}

// ModuleNames returns the distinct operator module names present in the
// registry, sorted for stable listing output.
func (r *Registry) ModuleNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, id := range r.cases.Keys() {
		tc, err := r.cases.Get(id)
		if err != nil {
			continue
		}
		name := tc.Op.ModuleName()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
