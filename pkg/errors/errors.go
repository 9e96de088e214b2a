// Package errors provides structured error handling for ethos-login.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitAuth     = 3 // Not logged in or session rejected
	ExitNotFound = 4 // Resource not found
)

// EthosError is the structured error type for ethos-login.
type EthosError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *EthosError) Error() string {
	msg := e.Message

	// Details are sorted for deterministic output
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *EthosError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for EthosError.
func (e *EthosError) Is(target error) bool {
	var t *EthosError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &EthosError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &EthosError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &EthosError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Session errors.
	ErrNotAuthenticated = &EthosError{
		Code:       "NOT_AUTHENTICATED",
		Message:    "not logged in",
		Suggestion: "run 'ethos-login login --from <export.json>' first",
		ExitCode:   ExitAuth,
	}

	ErrSessionExpired = &EthosError{
		Code:       "SESSION_EXPIRED",
		Message:    "session expired",
		Suggestion: "log in again to refresh the session",
		ExitCode:   ExitAuth,
	}

	ErrSessionInvalid = &EthosError{
		Code:     "SESSION_INVALID",
		Message:  "session file is invalid",
		ExitCode: ExitAuth,
	}

	ErrAppMismatch = &EthosError{
		Code:     "APP_ID_MISMATCH",
		Message:  "session belongs to a different application",
		ExitCode: ExitAuth,
	}

	// Wallet errors.
	ErrNoWallet = &EthosError{
		Code:       "NO_WALLET",
		Message:    "no Ethos Everywhere wallet linked to this account",
		Suggestion: "link a cross-app wallet with the identity provider",
		ExitCode:   ExitNotFound,
	}

	ErrInvalidAddress = &EthosError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid address format",
		ExitCode: ExitInput,
	}

	// Ethos API errors.
	ErrNetworkError = &EthosError{
		Code:     "NETWORK_ERROR",
		Message:  "network communication failed",
		ExitCode: ExitGeneral,
	}

	ErrAPIError = &EthosError{
		Code:     "ETHOS_API_ERROR",
		Message:  "Failed to fetch Ethos user",
		ExitCode: ExitGeneral,
	}

	ErrMalformedResponse = &EthosError{
		Code:     "MALFORMED_RESPONSE",
		Message:  "malformed Ethos API response",
		ExitCode: ExitGeneral,
	}

	ErrRateLimited = &EthosError{
		Code:     "RATE_LIMITED",
		Message:  "Ethos API rate limit exceeded",
		ExitCode: ExitGeneral,
	}

	// Config errors.
	ErrConfigNotFound = &EthosError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &EthosError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrUnknownConfigKey = &EthosError{
		Code:     "UNKNOWN_CONFIG_KEY",
		Message:  "unknown configuration key",
		ExitCode: ExitInput,
	}

	// Score errors.
	ErrUnknownTier = &EthosError{
		Code:     "UNKNOWN_TIER",
		Message:  "unknown score tier",
		ExitCode: ExitInput,
	}
)

// New creates a new EthosError with the given code and message.
func New(code, message string) *EthosError {
	return &EthosError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ee *EthosError
	if errors.As(err, &ee) {
		return &EthosError{
			Code:       ee.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ee.Message),
			Details:    ee.Details,
			Suggestion: ee.Suggestion,
			Cause:      err,
			ExitCode:   ee.ExitCode,
		}
	}

	return &EthosError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ee *EthosError
	if errors.As(err, &ee) {
		return &EthosError{
			Code:       ee.Code,
			Message:    ee.Message,
			Details:    details,
			Suggestion: ee.Suggestion,
			Cause:      ee.Cause,
			ExitCode:   ee.ExitCode,
		}
	}

	return &EthosError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithCause attaches an underlying cause to an error, keeping its code.
func WithCause(err, cause error) error {
	if err == nil {
		return nil
	}

	var ee *EthosError
	if errors.As(err, &ee) {
		return &EthosError{
			Code:       ee.Code,
			Message:    ee.Message,
			Details:    ee.Details,
			Suggestion: ee.Suggestion,
			Cause:      cause,
			ExitCode:   ee.ExitCode,
		}
	}

	return fmt.Errorf("%w: %w", err, cause)
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ee *EthosError
	if errors.As(err, &ee) {
		return &EthosError{
			Code:       ee.Code,
			Message:    ee.Message,
			Details:    ee.Details,
			Suggestion: suggestion,
			Cause:      ee.Cause,
			ExitCode:   ee.ExitCode,
		}
	}

	return &EthosError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ee *EthosError
	if errors.As(err, &ee) {
		return ee.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ee *EthosError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return "GENERAL_ERROR"
}

// Message returns the short human-readable message of an error,
// without details or causes. Plain errors return their full text.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var ee *EthosError
	if errors.As(err, &ee) {
		return ee.Message
	}
	return err.Error()
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
