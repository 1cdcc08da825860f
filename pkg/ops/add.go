package ops

import (
	"gonum.org/v1/gonum/floats"

	"github.com/opbench/opbench/pkg/bench"
	"github.com/opbench/opbench/pkg/errors"
)

// AddBench benchmarks element-wise addition of two M*N vectors.
type AddBench struct {
	m, n  int
	a, b  []float64
	out   []float64
	grad  []float64
	loss  float64
	ready bool
}

// NewAdd creates an element-wise add benchmark over M*N elements.
func NewAdd(m, n int) *AddBench {
	return &AddBench{m: m, n: n}
}

func (o *AddBench) ModuleName() string { return "add" }

// setup draws the inputs from the benchmark RNG on first use.
func (o *AddBench) setup() {
	if o.ready {
		return
	}
	size := o.m * o.n
	o.a = randSlice(size)
	o.b = randSlice(size)
	o.out = make([]float64, size)
	o.grad = make([]float64, size)
	o.ready = true
}

func (o *AddBench) RunForward(iters int) error {
	o.setup()
	for i := 0; i < iters; i++ {
		copy(o.out, o.a)
		floats.Add(o.out, o.b)
	}
	return nil
}

func (o *AddBench) RunForwardEager() error {
	return o.RunForward(1)
}

func (o *AddBench) LossFunc() error {
	if !o.ready {
		return errors.New(errors.ErrOpExecute, "loss requested before forward pass")
	}
	o.loss = floats.Sum(o.out)
	return nil
}

// RunBackward propagates the loss gradient to both inputs. For a sum loss
// over an element-wise add, both input gradients are all ones.
func (o *AddBench) RunBackward(iters int) error {
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

func registerAdd(reg *bench.Registry) error {
	shapes := []shapeSet{
		{
			tag: "short",
			attrs: []bench.AttrValues{
				{Name: "M", Values: []int{8, 64}},
				{Name: "N", Values: []int{16, 64}},
			},
		},
		{
			tag: "long",
			attrs: []bench.AttrValues{
				{Name: "M", Values: []int{256, 1024}},
				{Name: "N", Values: []int{512}},
			},
		},
	}
	return registerShapes(reg, shapes, func(dims map[string]int) bench.OpBenchmark {
		return NewAdd(dims["M"], dims["N"])
	})
}
