package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opbench/opbench/pkg/bench"
	"github.com/opbench/opbench/pkg/errors"
)

var (
	_ bench.OpBenchmark = (*AddBench)(nil)
	_ bench.OpBenchmark = (*MatMulBench)(nil)
	_ bench.OpBenchmark = (*SumBench)(nil)
)

func TestRegisterAll(t *testing.T) {
	reg := bench.NewRegistry()
	require.NoError(t, RegisterAll(reg))

	// add: 4 short + 2 long shapes, matmul: 2 + 2, sum: 2 + 2,
	// each registered forward and backward
	assert.Equal(t, 28, reg.Len())
	assert.Equal(t, []string{"add", "matmul", "sum"}, reg.ModuleNames())
}

func TestRegisterAllCasesSurviveDefaultFilter(t *testing.T) {
	reg := bench.NewRegistry()
	require.NoError(t, RegisterAll(reg))

	kept := 0
	for _, id := range reg.IDs() {
		tc, err := reg.Get(id)
		require.NoError(t, err)
		if (bench.Filter{}).Keep(tc) {
			kept++
		}
	}
	// Half the registered cases are forward
	assert.Equal(t, 14, kept)
}

func TestAddForward(t *testing.T) {
	op := NewAdd(2, 3)
	require.NoError(t, op.RunForward(1))

	require.Len(t, op.out, 6)
	for i := range op.out {
		assert.InDelta(t, op.a[i]+op.b[i], op.out[i], 1e-12)
	}
}

func TestAddLossAndBackward(t *testing.T) {
	op := NewAdd(2, 2)
	require.NoError(t, op.RunForward(1))
	require.NoError(t, op.LossFunc())
	require.NoError(t, op.RunBackward(1))

	for _, g := range op.grad {
		assert.Equal(t, 1.0, g)
	}
}

func TestAddBackwardBeforeForwardFails(t *testing.T) {
	op := NewAdd(2, 2)

	err := op.RunBackward(1)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOpExecute))

	err = op.LossFunc()
	assert.True(t, errors.IsErrorCode(err, errors.ErrOpExecute))
}

func TestMatMulForward(t *testing.T) {
	op := NewMatMul(2, 2, 3)
	require.NoError(t, op.RunForward(1))

	// Check C = A * B element by element
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			for k := 0; k < 3; k++ {
				want += op.a.At(i, k) * op.b.At(k, j)
			}
			assert.InDelta(t, want, op.c.At(i, j), 1e-12)
		}
	}
}

func TestMatMulBackwardShapes(t *testing.T) {
	op := NewMatMul(4, 5, 3)
	require.NoError(t, op.RunForward(1))
	require.NoError(t, op.LossFunc())
	require.NoError(t, op.RunBackward(1))

	rows, cols := op.gradA.Dims()
	assert.Equal(t, [2]int{4, 3}, [2]int{rows, cols})
	rows, cols = op.gradB.Dims()
	assert.Equal(t, [2]int{3, 5}, [2]int{rows, cols})
}

func TestSumForward(t *testing.T) {
	op := NewSum(4)
	require.NoError(t, op.RunForward(1))

	want := 0.0
	for _, v := range op.a {
		want += v
	}
	assert.InDelta(t, want, op.out, 1e-12)
}

func TestSumBackward(t *testing.T) {
	op := NewSum(3)
	require.NoError(t, op.RunForward(1))
	require.NoError(t, op.LossFunc())
	require.NoError(t, op.RunBackward(1))

	for _, g := range op.grad {
		assert.Equal(t, 1.0, g)
	}
}

func TestInputsAreDeterministicUnderReseed(t *testing.T) {
	bench.Reseed(42)
	first := NewAdd(4, 4)
	require.NoError(t, first.RunForward(1))

	bench.Reseed(42)
	second := NewAdd(4, 4)
	require.NoError(t, second.RunForward(1))

	assert.Equal(t, first.a, second.a)
	assert.Equal(t, first.b, second.b)
}

func TestSetupRunsOnce(t *testing.T) {
	op := NewSum(8)
	require.NoError(t, op.RunForward(1))
	a := op.a

	require.NoError(t, op.RunForward(3))
	// Inputs are materialized once and reused across iterations
	assert.Equal(t, &a[0], &op.a[0])
}
