// Package main provides the gathor binary entry point.
package main

import (
	"fmt"
	"os"

	"github.com/lysandre995/gathorapp/commands"
)

func main() {
	if err := commands.NewRoot().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
