// Command loadbiorhythm imports biorhythm data for one person: it runs the
// calculator over the requested window and bulk-inserts the results in a
// single transaction.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/camden-git/biorhythmbackend/importer"
)

// Exit codes: user errors (bad flags, conflicts) versus system errors
// (computation or persistence failures).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitCodeFor classifies a loader failure by its error taxonomy.
func exitCodeFor(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, importer.ErrInvalidInput) || errors.Is(err, importer.ErrAlreadyExists) {
		return exitUserError
	}
	return exitSysError
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCodeFor(err))
}
