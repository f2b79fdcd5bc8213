package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const problemBase = "https://statline-api.forgo.software/errors/"

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Authentication errors (1xxx)
	ErrCodeUnauthorized ErrorCode = 1001

	// Resource errors (3xxx)
	ErrCodeNotFound ErrorCode = 3001

	// Validation errors (4xxx)
	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002
	ErrCodeUnknownField ErrorCode = 4003
	ErrCodeRateLimited  ErrorCode = 4004

	// Internal errors (5xxx)
	ErrCodeInternal         ErrorCode = 5001
	ErrCodeDatabase         ErrorCode = 5002
	ErrCodeStoreUnavailable ErrorCode = 5003
	ErrCodeMapping          ErrorCode = 5004
)

// ProblemDetails represents RFC 9457 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	// Extension fields
	Code   ErrorCode `json:"code,omitempty"`
	Entity string    `json:"entity,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem details as JSON response
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// Common error constructors

func NewUnauthorizedError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemBase + "unauthorized",
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
		Code:   ErrCodeUnauthorized,
	}
}

func NewNotFoundError(resource string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemBase + "not-found",
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: fmt.Sprintf("%s not found", resource),
		Code:   ErrCodeNotFound,
	}
}

func NewValidationError(errors []FieldError) *ProblemDetails {
	// Build detailed message from field errors
	detail := "One or more fields failed validation"
	if len(errors) > 0 {
		detail = fmt.Sprintf("%s: %s", errors[0].Field, errors[0].Message)
		if len(errors) > 1 {
			detail = fmt.Sprintf("%s (and %d more errors)", detail, len(errors)-1)
		}
	}
	return &ProblemDetails{
		Type:   problemBase + "validation",
		Title:  "Validation Error",
		Status: http.StatusUnprocessableEntity,
		Detail: detail,
		Code:   ErrCodeValidation,
		Errors: errors,
	}
}

// NewUnknownFieldError reports a filter the entity cannot be searched by
func NewUnknownFieldError(entity, field string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemBase + "unknown-field",
		Title:  "Unknown Filter Field",
		Status: http.StatusBadRequest,
		Detail: fmt.Sprintf("%s cannot be filtered by %q", entity, field),
		Code:   ErrCodeUnknownField,
		Entity: entity,
		Errors: []FieldError{{Field: field, Message: "not a filter field"}},
	}
}

func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return &ProblemDetails{
		Type:   problemBase + "internal",
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: detail,
		Code:   ErrCodeInternal,
	}
}

// NewMappingError reports stored data that could not be presented
func NewMappingError(entity, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemBase + "mapping",
		Title:  "Stored Record Unreadable",
		Status: http.StatusInternalServerError,
		Detail: detail,
		Code:   ErrCodeMapping,
		Entity: entity,
	}
}

func NewServiceUnavailableError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemBase + "store-unavailable",
		Title:  "Service Unavailable",
		Status: http.StatusServiceUnavailable,
		Detail: detail,
		Code:   ErrCodeStoreUnavailable,
	}
}

func NewBadRequestError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemBase + "bad-request",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: detail,
		Code:   ErrCodeInvalidInput,
	}
}

func NewRateLimitError(retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemBase + "rate-limited",
		Title:  "Too Many Requests",
		Status: http.StatusTooManyRequests,
		Detail: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter),
		Code:   ErrCodeRateLimited,
	}
}
