/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"
)

// HandleFatalError prints a message and the underlying error, then exits.
func HandleFatalError(message string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
	} else {
		fmt.Fprintln(os.Stderr, message)
	}
	os.Exit(1)
}

// stdoutIsTerminal reports whether styled output makes sense.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// parseTaskNumber converts a 1-based task number from the command line to
// the 0-based index used by the service.
func parseTaskNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("task number must be an integer, got %q", arg)
	}
	return n - 1, nil
}
