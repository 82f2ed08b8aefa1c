// Package main is the entry point for the hdate CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/hdate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
