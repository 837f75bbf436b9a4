// Package main is the entry point for the guet CLI binary.
package main

import (
	"fmt"
	"os"

	"github.com/guet-cli/guet/cmd/guet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "guet:", err)
		os.Exit(1)
	}
}
