// Package main is the entry point for the mcpdoctor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/mcpdoctor/cmd/mcpdoctor/commands"
	"github.com/thoreinstein/mcpdoctor/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		os.Exit(errors.ExitHealthy)
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(errors.ExitBlocking)
}
