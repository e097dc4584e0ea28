// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tissueworks/tissuebox/lib/netutil"
)

// APIError is a non-2xx answer from the GitHub REST API. GitHub
// error bodies are structured JSON: a message, sometimes a pointer
// into the documentation, and on 422 responses a list of field-level
// validation failures.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the top-level error description from GitHub.
	Message string

	// DocumentationURL points to the relevant API documentation.
	DocumentationURL string

	// Errors contains field-level validation failures. Present only
	// on 422 Unprocessable Entity responses.
	Errors []ValidationError
}

// ValidationError describes one failed field of a 422 response.
type ValidationError struct {
	Resource string `json:"resource"`
	Code     string `json:"code"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (err *APIError) Error() string {
	message := fmt.Sprintf("github: HTTP %d: %s", err.StatusCode, err.Message)
	for _, detail := range err.Errors {
		// Validation entries often carry only a code ("missing_field",
		// "already_exists") with no message text.
		if detail.Message != "" {
			message += fmt.Sprintf("; %s.%s: %s", detail.Resource, detail.Field, detail.Message)
		} else {
			message += fmt.Sprintf("; %s.%s: %s", detail.Resource, detail.Field, detail.Code)
		}
	}
	return message
}

// responseError drains an HTTP response and decodes it as an API
// error.
func responseError(response *http.Response) *APIError {
	payload, _ := netutil.ReadResponse(response.Body)
	return decodeAPIError(response.StatusCode, payload)
}

// decodeAPIError builds an *APIError from a status code and raw
// body. Bodies that are not the JSON shape GitHub documents are kept
// verbatim as the message.
func decodeAPIError(statusCode int, payload []byte) *APIError {
	var wire struct {
		Message          string            `json:"message"`
		DocumentationURL string            `json:"documentation_url"`
		Errors           []ValidationError `json:"errors"`
	}
	if json.Unmarshal(payload, &wire) == nil && wire.Message != "" {
		return &APIError{
			StatusCode:       statusCode,
			Message:          wire.Message,
			DocumentationURL: wire.DocumentationURL,
			Errors:           wire.Errors,
		}
	}
	return &APIError{StatusCode: statusCode, Message: string(payload)}
}

// IsNotFound reports whether err is a GitHub API 404 Not Found
// response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 404
}

// IsRateLimited reports whether err is a GitHub API rate limit
// response. Primary limits surface as 403 with a telltale message,
// secondary (abuse) limits as 429.
func IsRateLimited(err error) bool {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return false
	}
	return apiError.StatusCode == 429 ||
		(apiError.StatusCode == 403 && isRateLimitMessage(apiError.Message))
}

// IsValidationFailed reports whether err is a GitHub API 422 response
// with field-level validation errors.
func IsValidationFailed(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 422
}

// IsTransient reports whether err is a GitHub API response worth
// retrying later: a server-side 5xx or a rate limit. Promotion maps
// these to a transient failure so the caller knows the tissue itself
// was fine.
func IsTransient(err error) bool {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return false
	}
	return apiError.StatusCode >= 500 || IsRateLimited(err)
}

// isRateLimitMessage tells a rate limit 403 apart from a permissions
// 403 by the message text.
func isRateLimitMessage(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "abuse detection")
}
