package bench

import (
	"fmt"
	"strings"
)

// AttrValues names one input attribute and the values it ranges over when
// generating test configurations.
type AttrValues struct {
	Name   string
	Values []int
}

// Attr is one concrete attribute binding inside a generated combination.
type Attr struct {
	Name  string
	Value int
}

// CrossProduct expands the attribute ranges into every combination,
// varying the last attribute fastest. Attribute order is preserved inside
// each combination.
func CrossProduct(attrs ...AttrValues) [][]Attr {
	if len(attrs) == 0 {
		return nil
	}

	combos := [][]Attr{{}}
	for _, a := range attrs {
		var next [][]Attr
		for _, combo := range combos {
			for _, v := range a.Values {
				grown := make([]Attr, len(combo), len(combo)+1)
				copy(grown, combo)
				next = append(next, append(grown, Attr{Name: a.Name, Value: v}))
			}
		}
		combos = next
	}
	return combos
}

// TestNameFor renders a combination as a compact test name, e.g. "M8_N2_K1".
func TestNameFor(attrs []Attr) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = fmt.Sprintf("%s%d", a.Name, a.Value)
	}
	return strings.Join(parts, "_")
}

// InputConfigFor renders a combination as the human-readable input
// description, e.g. "M: 8, N: 2, K: 1".
func InputConfigFor(attrs []Attr) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = fmt.Sprintf("%s: %d", a.Name, a.Value)
	}
	return strings.Join(parts, ", ")
}

// GenerateConfigs builds one TestConfig per attribute combination, all
// sharing the same tag and direction.
func GenerateConfigs(tag string, runBackward bool, attrs ...AttrValues) []TestConfig {
	combos := CrossProduct(attrs...)
	cfgs := make([]TestConfig, 0, len(combos))
	for _, combo := range combos {
		cfgs = append(cfgs, TestConfig{
			TestName:    TestNameFor(combo),
			InputConfig: InputConfigFor(combo),
			Tag:         tag,
			RunBackward: runBackward,
		})
	}
	return cfgs
}
