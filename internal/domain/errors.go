package domain

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code     string
	Message  string
	ExitCode int
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:     e.Code,
		Message:  e.Message,
		ExitCode: e.ExitCode,
		Err:      err,
	}
}

// Is matches on Code so that errors.Is(ErrReadTarget.WithError(x), ErrReadTarget) holds.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// ExitCode maps an error returned by the updater to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}
	return 1
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:     "INTERNAL_ERROR",
		Message:  "Unexpected error",
		ExitCode: 1,
	}

	// Validation errors
	ErrInvalidProjectID = &AppError{
		Code:     "INVALID_PROJECT_ID",
		Message:  "Invalid Infura Project ID",
		ExitCode: 1,
	}

	ErrInvalidContractAddress = &AppError{
		Code:     "INVALID_CONTRACT_ADDRESS",
		Message:  "Invalid contract address",
		ExitCode: 1,
	}

	ErrInvalidAddressFormat = &AppError{
		Code:     "INVALID_ADDRESS_FORMAT",
		Message:  "Invalid contract address format. Must be 40 hex characters with 0x prefix",
		ExitCode: 1,
	}

	ErrReadInput = &AppError{
		Code:     "READ_INPUT_FAILED",
		Message:  "Error reading input",
		ExitCode: 1,
	}

	// Cancellation
	ErrCancelled = &AppError{
		Code:     "CANCELLED",
		Message:  "Update cancelled",
		ExitCode: 1,
	}

	ErrInterrupted = &AppError{
		Code:     "INTERRUPTED",
		Message:  "Update cancelled by user",
		ExitCode: 1,
	}

	// Target file errors
	ErrTargetNotFound = &AppError{
		Code:     "TARGET_NOT_FOUND",
		Message:  "Flutter service not found",
		ExitCode: 1,
	}

	ErrReadTarget = &AppError{
		Code:     "READ_TARGET_FAILED",
		Message:  "Error reading Flutter config",
		ExitCode: 1,
	}

	ErrWriteTarget = &AppError{
		Code:     "WRITE_TARGET_FAILED",
		Message:  "Error updating Flutter config",
		ExitCode: 1,
	}
)
