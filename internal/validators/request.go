package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-todo-offline/models"
)

// Field names accepted by RequestValidator.
const (
	FieldMethod = "method"
	FieldURL    = "url"

	// FieldJSONBody requires a readable body holding a single JSON value.
	FieldJSONBody = "json_body"
)

var defaultRequestFields = []string{FieldMethod, FieldURL}

type RequestValidator struct {
}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate accepts models.Request and *models.Request.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Request:
		return v.validateRequest(ctx, value, fields...)
	case *models.Request:
		return v.validateRequest(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateRequest(_ context.Context, req models.Request, fields ...string) error {
	if len(fields) == 0 {
		fields = defaultRequestFields
	}

	for _, field := range fields {
		switch field {
		case FieldMethod:
			if req.Method == "" {
				return ErrEmptyMethod
			}
		case FieldURL:
			if req.URL == "" {
				return ErrEmptyURL
			}
		case FieldJSONBody:
			if req.BodyErr != nil {
				return fmt.Errorf("%w: %w", ErrUnreadableBody, req.BodyErr)
			}
			if !json.Valid(req.Body) {
				return ErrInvalidJSON
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}
