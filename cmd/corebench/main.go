package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0 // Benchmark completed at full fidelity
	ExitDegraded = 1 // Benchmark completed but fidelity was reduced
	ExitError    = 2 // Configuration or runtime error
)

// DegradedRunError indicates the benchmark completed, but affinity or
// priority control failed, so measurements ran at reduced fidelity.
type DegradedRunError struct {
	Message string
}

func (e *DegradedRunError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var degradedErr *DegradedRunError
		if errors.As(err, &degradedErr) {
			os.Exit(ExitDegraded)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
