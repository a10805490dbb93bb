// Package main provides the entry point for the marco CLI.
package main

import (
	"fmt"
	"os"

	"github.com/marcoeng/marco/cmd/marco/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
