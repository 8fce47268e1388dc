// Package main is the entry point for the sabres CLI tool.
package main

import (
	"os"

	"github.com/sabresdb/sabres/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
