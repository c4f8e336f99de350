// Package main is the entry point for the campus explorer CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/evcraddock/campus-explorer/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
