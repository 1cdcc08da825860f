package ops

import (
	"gonum.org/v1/gonum/mat"

	"github.com/opbench/opbench/pkg/bench"
	"github.com/opbench/opbench/pkg/errors"
)

// MatMulBench benchmarks dense matrix multiplication C = A(MxK) * B(KxN).
type MatMulBench struct {
	m, n, k      int
	a, b         *mat.Dense
	c            *mat.Dense
	gradA, gradB *mat.Dense
	gradC        *mat.Dense
	loss         float64
	ready        bool
}

// NewMatMul creates a matrix multiplication benchmark for MxK by KxN.
func NewMatMul(m, n, k int) *MatMulBench {
	return &MatMulBench{m: m, n: n, k: k}
}

func (o *MatMulBench) ModuleName() string { return "matmul" }

func (o *MatMulBench) setup() {
	if o.ready {
		return
	}
	o.a = mat.NewDense(o.m, o.k, randSlice(o.m*o.k))
	o.b = mat.NewDense(o.k, o.n, randSlice(o.k*o.n))
	o.c = mat.NewDense(o.m, o.n, nil)
	o.gradA = mat.NewDense(o.m, o.k, nil)
	o.gradB = mat.NewDense(o.k, o.n, nil)

	// Sum loss: the upstream gradient of C is all ones
	ones := make([]float64, o.m*o.n)
	for i := range ones {
		ones[i] = 1
	}
	o.gradC = mat.NewDense(o.m, o.n, ones)
	o.ready = true
}

func (o *MatMulBench) RunForward(iters int) error {
	o.setup()
	for i := 0; i < iters; i++ {
		o.c.Mul(o.a, o.b)
	}
	return nil
}

func (o *MatMulBench) RunForwardEager() error {
	return o.RunForward(1)
}

func (o *MatMulBench) LossFunc() error {
	if !o.ready {
		return errors.New(errors.ErrOpExecute, "loss requested before forward pass")
	}
	o.loss = mat.Sum(o.c)
	return nil
}

// RunBackward computes dA = dC * Bᵀ and dB = Aᵀ * dC.
func (o *MatMulBench) RunBackward(iters int) error {
	if !o.ready {
		return errors.New(errors.ErrOpExecute, "backward requested before forward pass")
	}
	for i := 0; i < iters; i++ {
		o.gradA.Mul(o.gradC, o.b.T())
		o.gradB.Mul(o.a.T(), o.gradC)
	}
	return nil
}

func registerMatMul(reg *bench.Registry) error {
	shapes := []shapeSet{
		{
			tag: "short",
			attrs: []bench.AttrValues{
				{Name: "M", Values: []int{8}},
				{Name: "N", Values: []int{16}},
				{Name: "K", Values: []int{1, 64}},
			},
		},
		{
			tag: "long",
			attrs: []bench.AttrValues{
				{Name: "M", Values: []int{128, 256}},
				{Name: "N", Values: []int{128}},
				{Name: "K", Values: []int{256}},
			},
		},
	}
	return registerShapes(reg, shapes, func(dims map[string]int) bench.OpBenchmark {
		return NewMatMul(dims["M"], dims["N"], dims["K"])
	})
}
