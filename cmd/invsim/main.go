// Command invsim solves investment simulations from the command line, runs
// simulation files into reports, and serves the engine over HTTP.
package main

import (
	"errors"
	"os"

	"github.com/cgfgestion/investment-simulator/internal/calculation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes rejected inputs (2) and unrepresentable results (3)
// from other failures (1).
func exitCode(err error) int {
	switch {
	case errors.Is(err, calculation.ErrValidation):
		return 2
	case errors.Is(err, calculation.ErrComputation):
		return 3
	default:
		return 1
	}
}
