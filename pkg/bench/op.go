package bench

// OpBenchmark is the capability surface an operator exposes to the runner.
// Implementations own their inputs and outputs; the runner only drives
// execution and never inspects results.
type OpBenchmark interface {
	// ModuleName identifies the operator, e.g. "add" or "matmul"
	ModuleName() string

	// RunForward executes the forward pass iters times
	RunForward(iters int) error

	// RunForwardEager executes a single eager forward pass, used to
	// materialize an output before a backward measurement
	RunForwardEager() error

	// LossFunc reduces the forward output to a scalar so a backward
	// pass has a gradient source
	LossFunc() error

	// RunBackward executes the backward pass iters times
	RunBackward(iters int) error
}

// JITCapable is implemented by operators whose framework compiles a graph
// ahead of the timed forward pass. The runner generates the graph before
// timing and primes backward runs with the eager path instead of RunForward.
type JITCapable interface {
	GenerateJITForwardGraph(iters int) error
}
