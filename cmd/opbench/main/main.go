package main

import (
	"fmt"
	"os"

	"github.com/opbench/opbench/cmd/opbench"
	"github.com/opbench/opbench/pkg/style"
)

func main() {
	rootCmd := opbench.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		msg := style.Render(style.ErrorStyle, fmt.Sprintf("Error: %v", err), os.Stderr)
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
