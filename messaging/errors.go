// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"errors"
	"fmt"
)

// APIError represents a structured error response from the Parley
// backend. Callers can use errors.As to extract the structured
// information:
//
//	var apiErr *messaging.APIError
//	if errors.As(err, &apiErr) {
//	    if apiErr.Code == messaging.ErrCodeNotFound { ... }
//	}
type APIError struct {
	// Code is the backend error code (e.g., "ERR_FORBIDDEN").
	Code string `json:"errcode"`
	// Message is the human-readable error description from the server.
	Message string `json:"error"`
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Standard backend error codes.
const (
	ErrCodeForbidden     = "ERR_FORBIDDEN"
	ErrCodeUnknownToken  = "ERR_UNKNOWN_TOKEN"
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeLimitExceeded = "ERR_LIMIT_EXCEEDED"
	ErrCodeInvalidParam  = "ERR_INVALID_PARAM"
	ErrCodeUnknown       = "ERR_UNKNOWN"
)

// IsAPIError checks whether err is a *APIError with the given error code.
func IsAPIError(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
