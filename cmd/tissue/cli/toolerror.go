// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory names the kind of failure a command hit. Tests and
// scripted wrappers branch on the category instead of matching error
// message text.
type ErrorCategory string

const (
	// CategoryValidation covers bad input: a missing or empty title,
	// wrong argument count, a tissuebox file that will not parse.
	// Fixing the input is the remedy.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound covers references to things that do not
	// exist: an unknown tissue title, a tag nothing carries, a GitHub
	// repository that is not there. The same arguments will fail the
	// same way again.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden covers permission failures, such as a GitHub
	// token without issue access.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict covers collisions with existing state: adding
	// a duplicate title, renaming onto a title already in use.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient covers temporary failures like network
	// errors, timeouts, and GitHub rate limits. A later retry may
	// succeed.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal covers everything unexpected: bugs, I/O
	// failures, interrupted writes. Worth reporting, not retrying.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands. The
// category travels structurally (via errors.As) rather than in the
// message text, so callers never have to parse prose to decide
// whether to retry, fix their input, or give up.
//
// A ToolError wraps an inner error, keeping the full chain intact
// for errors.Is. Build one through the per-category constructors
// (Validation, NotFound, and so on), not by filling the struct.
type ToolError struct {
	// Category is the failure kind. It never changes after
	// construction.
	Category ErrorCategory

	// Err carries the human-readable message and any wrapped cause.
	Err error

	// Hint is optional recovery guidance appended to the error text,
	// separated by a blank line. Set via WithHint.
	Hint string
}

// Error returns the underlying error message, followed by the hint
// when one is set. The category is not included in the string; it is
// metadata, not prose.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap exposes the inner error so errors.Is and errors.As can walk
// past the wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint attaches recovery guidance to the error and returns the
// receiver, so it chains off the constructors:
//
//	return cli.Validation("no tissuebox at %s", path).
//	    WithHint("Run 'tissue add <title>' to create one.")
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation reports bad input from the caller.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound reports a reference to something that does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden reports an operation the caller is not allowed to perform.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict reports an operation that collides with existing state.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient reports a temporary failure that a retry may clear.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal reports a failure the caller cannot fix: a bug or an I/O
// error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
