// Package main provides the patchmaker CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "patchmaker:", err)
		os.Exit(exitCode(err))
	}
}
