package opbench

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "version")
}

func TestRunCmdFlags(t *testing.T) {
	root := NewRootCmd()
	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)

	for _, flag := range []string{
		"iterations", "warmup-iterations", "min-time-per-test",
		"tag", "operator", "test-name", "framework",
		"forward-only", "list-ops", "observer",
	} {
		assert.NotNil(t, run.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestVersionCmd(t *testing.T) {
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
}

func TestRunCmdRejectsBadFlagValue(t *testing.T) {
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"run", "--iterations", "nope"})

	assert.Error(t, root.Execute())
}
