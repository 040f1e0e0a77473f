package main

import (
	"os"

	"github.com/arthur-debert/pipegen/cmd/pipegen"
	"github.com/arthur-debert/pipegen/pkg/output"
)

func main() {
	rootCmd := pipegen.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output.NewReporter(os.Stderr, false).Error(err)
		os.Exit(1)
	}
}
