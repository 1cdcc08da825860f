package bench

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLaunch returns a launch function that reports the scripted
// durations in order, repeating the last one, and records the iteration
// counts it was asked for.
func scriptedLaunch(durations []float64, itersSeen *[]int) launchFunc {
	attempt := 0
	return func(tc TestCase, iters int) (float64, error) {
		*itersSeen = append(*itersSeen, iters)
		d := durations[min(attempt, len(durations)-1)]
		attempt++
		return d, nil
	}
}

func TestMeasureExplicitIterationsAcceptedImmediately(t *testing.T) {
	r := NewRunner(NewRegistry(), RunConfig{Iterations: 100})
	var itersSeen []int
	launch := scriptedLaunch([]float64{0.001}, &itersSeen)

	us, err := r.measureTime(launch, TestCase{Op: &stubOp{name: "add"}}, r.baseIters)

	require.NoError(t, err)
	assert.Equal(t, 10.0, us)
	assert.Equal(t, []int{100}, itersSeen)
}

func TestMeasureGrowsUntilRunTimeSignificant(t *testing.T) {
	// No explicit count: attempts double until one run exceeds the
	// predefined 4s minimum, and only that attempt's time is reported.
	r := NewRunner(NewRegistry(), RunConfig{})
	var itersSeen []int
	launch := scriptedLaunch([]float64{1.0, 2.0, 5.0}, &itersSeen)

	us, err := r.measureTime(launch, TestCase{Op: &stubOp{name: "add"}}, r.baseIters)

	require.NoError(t, err)
	assert.Equal(t, []int{100, 200, 400}, itersSeen)
	assert.Equal(t, 1e6*5.0/400, us)
}

func TestMeasureMaxItersTrigger(t *testing.T) {
	// Exceeding the iteration cap accepts the measurement even when the
	// run itself stays fast.
	r := NewRunner(NewRegistry(), RunConfig{MaxIters: 150})
	var itersSeen []int
	launch := scriptedLaunch([]float64{0.001}, &itersSeen)

	us, err := r.measureTime(launch, TestCase{Op: &stubOp{name: "add"}}, r.baseIters)

	require.NoError(t, err)
	assert.Equal(t, []int{100, 200}, itersSeen)
	assert.Equal(t, 1e6*0.001/200, us)
}

func TestMeasureExplicitCountStillGrowsBelowCumulativeFloor(t *testing.T) {
	// An explicit iteration count does not pin the loop: until the
	// cumulative floor is met the count is re-multiplied anyway.
	r := NewRunner(NewRegistry(), RunConfig{Iterations: 100, MinTimePerTest: 0.5})
	var itersSeen []int
	launch := scriptedLaunch([]float64{0.1, 0.2, 0.3}, &itersSeen)

	us, err := r.measureTime(launch, TestCase{Op: &stubOp{name: "add"}}, r.baseIters)

	require.NoError(t, err)
	assert.Equal(t, []int{100, 200, 400}, itersSeen)
	assert.Equal(t, 1e6*0.3/400, us)
}

func TestMeasureCustomMultiplier(t *testing.T) {
	r := NewRunner(NewRegistry(), RunConfig{Multiplier: 3, MaxIters: 500})
	var itersSeen []int
	launch := scriptedLaunch([]float64{0.001}, &itersSeen)

	_, err := r.measureTime(launch, TestCase{Op: &stubOp{name: "add"}}, r.baseIters)

	require.NoError(t, err)
	assert.Equal(t, []int{100, 300, 900}, itersSeen)
}

func TestMeasureErrorPropagates(t *testing.T) {
	r := NewRunner(NewRegistry(), RunConfig{Iterations: 100})
	failing := func(tc TestCase, iters int) (float64, error) {
		return 0, fmt.Errorf("segfault in kernel")
	}

	_, err := r.measureTime(failing, TestCase{Op: &stubOp{name: "add"}}, r.baseIters)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "segfault")
}

func TestResultIsSignificant(t *testing.T) {
	tests := []struct {
		name       string
		cfg        RunConfig
		iters      int
		runTimeSec float64
		totalSec   float64
		want       bool
	}{
		{"no trigger fired", RunConfig{}, 100, 0.001, 0.001, false},
		{"run time above predefined minimum", RunConfig{}, 100, 4.5, 4.5, true},
		{"iteration cap exceeded", RunConfig{MaxIters: 50}, 100, 0.001, 0.001, true},
		{"explicit count with floor met", RunConfig{Iterations: 100}, 100, 0.001, 0.001, true},
		{"explicit count with floor unmet", RunConfig{Iterations: 100, MinTimePerTest: 1.0}, 100, 0.001, 0.001, false},
		{"trigger fired but floor unmet", RunConfig{MinTimePerTest: 10.0}, 100, 4.5, 4.5, false},
		{"floor is strict", RunConfig{Iterations: 100, MinTimePerTest: 0.5}, 100, 0.5, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(NewRegistry(), tt.cfg)
			got := r.resultIsSignificant(tt.iters, tt.runTimeSec, tt.totalSec)
			assert.Equal(t, tt.want, got)
		})
	}
}
