package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"passwd/internal/domain"
	"passwd/internal/kdf"
)

// Exit codes.
const (
	ExitSuccess             = 0
	ExitError               = 1
	ExitCancelled           = 4
	ExitConfigError         = 10
	ExitInvalidLength       = 11
	ExitDerivationExhausted = 12
)

const saltHint = `generate a salt with "passwd salt" and export it as PASSWD_SALT, or build with -ldflags "-X passwd/internal/config.BuildSalt=<salt>"`

// CLIError carries the exit code for a failure and an optional hint.
type CLIError struct {
	Code    int
	Message string
	Hint    string
	Cause   error
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

func wrapError(code int, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Cause: err}
}

// classify turns a derivation failure into a CLIError with the matching exit code.
func classify(err error) error {
	var cliErr *CLIError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &cliErr):
		return err
	case errors.Is(err, kdf.ErrSalt):
		return &CLIError{Code: ExitConfigError, Message: "passwd is not configured", Hint: saltHint, Cause: err}
	case errors.Is(err, domain.ErrConfiguration):
		return wrapError(ExitConfigError, "invalid configuration", err)
	case errors.Is(err, domain.ErrInvalidLength):
		return wrapError(ExitInvalidLength, "cannot produce a password of that length", err)
	case errors.Is(err, domain.ErrDerivationExhausted):
		return wrapError(ExitDerivationExhausted, "no acceptable password found", err)
	default:
		return err
	}
}

// handleError prints err on the command's error stream and returns the exit code.
func handleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		cmd.PrintErrln("Operation cancelled")
		return ExitCancelled
	}

	var cliErr *CLIError
	if errors.As(classify(err), &cliErr) {
		cmd.PrintErrln("Error:", cliErr.Error())
		if cliErr.Hint != "" {
			cmd.PrintErrln("Hint:", cliErr.Hint)
		}
		return cliErr.Code
	}

	cmd.PrintErrln("Error:", err)
	return ExitError
}
