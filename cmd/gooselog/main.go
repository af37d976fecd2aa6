// Package main provides the entry point for the gooselog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/garretreichenbach/gooselib/cmd/gooselog/cmd"
	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, goerrors.FormatForCLI(err))
		os.Exit(cmd.ExitCode(err))
	}
}
