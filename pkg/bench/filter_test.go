package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterCase(name, tag, framework string, backward bool) TestCase {
	return TestCase{
		Op:        &stubOp{name: "add"},
		Framework: framework,
		Config: TestConfig{
			TestName:    name,
			InputConfig: "M: 8, N: 2",
			Tag:         tag,
			RunBackward: backward,
		},
	}
}

func TestFilterKeep(t *testing.T) {
	tc := filterCase("M8_N2", "long", "Gonum", false)

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter keeps forward test", Filter{}, true},
		{"matching test name", Filter{TestName: "M8_N2"}, true},
		{"mismatched test name", Filter{TestName: "M8"}, false},
		{"matching tag", Filter{Tag: "long"}, true},
		{"mismatched tag rejects regardless of other matches", Filter{Tag: "short", TestName: "M8_N2", Operator: "add"}, false},
		{"matching operator", Filter{Operator: "add"}, true},
		{"mismatched operator", Filter{Operator: "matmul"}, false},
		{"operator substring does not match", Filter{Operator: "ad"}, false},
		{"framework in allow list", Filter{Frameworks: []string{"Other", "Gonum"}}, true},
		{"framework not in allow list", Filter{Frameworks: []string{"Other"}}, false},
		{"all constraints matching", Filter{TestName: "M8_N2", Tag: "long", Operator: "add", Frameworks: []string{"Gonum"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Keep(tc))
		})
	}
}

func TestFilterForwardOnlyEquality(t *testing.T) {
	forward := filterCase("t", "short", "Gonum", false)
	backward := filterCase("t", "short", "Gonum", true)

	// The flag is compared for equality against RunBackward: the default
	// keeps forward tests, setting it keeps backward tests.
	assert.True(t, Filter{ForwardOnly: false}.Keep(forward))
	assert.False(t, Filter{ForwardOnly: false}.Keep(backward))
	assert.False(t, Filter{ForwardOnly: true}.Keep(forward))
	assert.True(t, Filter{ForwardOnly: true}.Keep(backward))
}
