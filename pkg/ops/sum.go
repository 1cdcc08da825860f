package ops

import (
	"gonum.org/v1/gonum/floats"

	"github.com/opbench/opbench/pkg/bench"
	"github.com/opbench/opbench/pkg/errors"
)

// SumBench benchmarks a full reduction over an N-element vector.
type SumBench struct {
	n     int
	a     []float64
	grad  []float64
	out   float64
	ready bool
}

// NewSum creates a reduction benchmark over N elements.
func NewSum(n int) *SumBench {
	return &SumBench{n: n}
}

func (o *SumBench) ModuleName() string { return "sum" }

func (o *SumBench) setup() {
	if o.ready {
		return
	}
	o.a = randSlice(o.n)
	o.grad = make([]float64, o.n)
	o.ready = true
}

func (o *SumBench) RunForward(iters int) error {
	o.setup()
	for i := 0; i < iters; i++ {
		o.out = floats.Sum(o.a)
	}
	return nil
}

func (o *SumBench) RunForwardEager() error {
	return o.RunForward(1)
}

// LossFunc is a no-op: the reduction output is already a scalar.
func (o *SumBench) LossFunc() error {
	if !o.ready {
		return errors.New(errors.ErrOpExecute, "loss requested before forward pass")
	}
	return nil
}

// RunBackward propagates the scalar gradient back to every input element.
func (o *SumBench) RunBackward(iters int) error {
	if !o.ready {
		return errors.New(errors.ErrOpExecute, "backward requested before forward pass")
	}
	for i := 0; i < iters; i++ {
		for j := range o.grad {
			o.grad[j] = 1
		}
	}
	return nil
}

func registerSum(reg *bench.Registry) error {
	shapes := []shapeSet{
		{
			tag: "short",
			attrs: []bench.AttrValues{
				{Name: "N", Values: []int{64, 1024}},
			},
		},
		{
			tag: "long",
			attrs: []bench.AttrValues{
				{Name: "N", Values: []int{65536, 1048576}},
			},
		},
	}
	return registerShapes(reg, shapes, func(dims map[string]int) bench.OpBenchmark {
		return NewSum(dims["N"])
	})
}
