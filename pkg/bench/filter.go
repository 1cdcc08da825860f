package bench

// Filter selects which registered test cases a run executes. Zero-valued
// string fields and an empty framework list mean "no constraint". All
// matches are exact; there is no substring or pattern matching.
type Filter struct {
	TestName   string
	Tag        string
	Operator   string
	Frameworks []string

	// ForwardOnly is compared for equality against each test case's
	// RunBackward flag: false keeps forward tests, true keeps backward
	// tests. The name predates the equality check and is kept for
	// compatibility with existing invocations.
	ForwardOnly bool
}

// Keep reports whether a test case survives the filter. The result is a
// pure conjunction: every constraint must hold.
func (f Filter) Keep(tc TestCase) bool {
	return checkKeep(tc.Config.TestName, f.TestName) &&
		checkKeep(tc.Config.Tag, f.Tag) &&
		checkKeep(tc.Op.ModuleName(), f.Operator) &&
		checkKeepList(tc.Framework, f.Frameworks) &&
		tc.Config.RunBackward == f.ForwardOnly
}

func checkKeep(testFlag, cmdFlag string) bool {
	return cmdFlag == "" || testFlag == cmdFlag
}

func checkKeepList(testFlag string, cmdFlags []string) bool {
	if len(cmdFlags) == 0 {
		return true
	}
	for _, f := range cmdFlags {
		if testFlag == f {
			return true
		}
	}
	return false
}
