// Package main is the entry point for the depparse CLI.
package main

import (
	"os"

	"github.com/jmylchreest/depparse/cmd/depparse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
