package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
	"github.com/forgo/statline/api/internal/service"
)

// MapServiceError converts a search or service error to a ProblemDetails
// response, so every endpoint reports the same failure the same way.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var (
		invalidField *search.InvalidFieldError
		invalidValue *search.InvalidValueError
		unavailable  *search.StoreUnavailableError
		mapping      *search.MappingError
	)

	switch {
	// ===== Request Errors → 400 / 422 =====
	case errors.As(err, &invalidField):
		return model.NewUnknownFieldError(invalidField.Entity, invalidField.Field)
	case errors.As(err, &invalidValue):
		pd := model.NewValidationError([]model.FieldError{{Field: invalidValue.Field, Message: invalidValue.Reason}})
		pd.Entity = invalidValue.Entity
		return pd

	// ===== Store Errors → 503 =====
	case errors.As(err, &unavailable):
		return model.NewServiceUnavailableError("record store is unavailable, retry later")
	case errors.Is(err, context.DeadlineExceeded):
		return model.NewServiceUnavailableError("record store did not answer in time")

	// ===== Stored Data Errors → 500 =====
	case errors.As(err, &mapping):
		return model.NewMappingError(mapping.Entity, fmt.Sprintf("record %d could not be read", mapping.Index))

	// ===== Seeding Errors =====
	case errors.Is(err, service.ErrUnknownEntity):
		return model.NewNotFoundError("entity")
	case errors.Is(err, service.ErrNoRecords):
		return model.NewValidationError([]model.FieldError{{Field: "records", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidDemoSize):
		return model.NewValidationError([]model.FieldError{{Field: "demo", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 && pd.Code == model.ErrCodeInternal {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
