package commands

import (
	"errors"
	"fmt"
	"io"

	"gtodo/internal/exitcode"
	"gtodo/internal/service"
)

// reportServiceError prints err and returns the matching exit code.
func reportServiceError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintln(errOut, "error: task not found")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// reportTaskRefError prints a task reference error and returns the exit code.
// Out-of-range numbers are user errors; anything else came from the backend.
func reportTaskRefError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, ErrTaskRefRequired):
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	case errors.Is(err, errInvalidRef), errors.Is(err, errOutOfRange):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		return reportServiceError(errOut, err)
	}
}
