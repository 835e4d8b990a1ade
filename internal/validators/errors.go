package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrUnreadableBody = errors.New("request body could not be read")
	ErrInvalidJSON    = errors.New("request body is not valid JSON")
	ErrEmptyMethod    = errors.New("request method is required")
	ErrEmptyURL       = errors.New("request url is required")
)
