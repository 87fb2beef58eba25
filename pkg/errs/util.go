/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package errs

import (
	"errors"
	"fmt"
	"os"
)

// ReportAndExit reports err to stderr and exits with its matching status
// code. A nil err exits successfully. Every loxgo error type carries its own
// ExitCode(), so this is mostly a friendly wrapper over that, plus the
// handling of errors that don't implement Error at all.
func ReportAndExit(err error) {
	if err == nil {
		os.Exit(StatusCodeSuccess)
	}

	var asErr Error
	if errors.As(err, &asErr) {
		fmt.Fprintf(os.Stderr, "%v\n", asErr)
		os.Exit(asErr.ExitCode())
	}

	fmt.Fprintf(os.Stderr, "internal error: unexpected error of type %T: %v\n", err, err)
	os.Exit(StatusCodeICE)
}
