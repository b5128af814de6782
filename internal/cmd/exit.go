// Package cmd provides command implementations for the cemctl CLI.
package cmd

import (
	"errors"

	oerrors "github.com/conceptlab/cemctl/internal/errors"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates experiment validation failed.
	ExitValidationError = 2

	// ExitExpansionError indicates run or grid expansion failed.
	ExitExpansionError = 3

	// ExitFormatDrift indicates `fmt --check` found unformatted files.
	ExitFormatDrift = 4

	// ExitNotFound indicates an experiment file or run was not found.
	ExitNotFound = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitExpansionError:
		return "Expansion Error"
	case ExitFormatDrift:
		return "Format Drift"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrValidation):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrExpansion):
		return ExitExpansionError
	case errors.Is(err, oerrors.ErrFormat):
		return ExitFormatDrift
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}
