// Package main provides the armada CLI application.
// armada generates an AWS account inventory snapshot and answers
// account-selection queries against it.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
