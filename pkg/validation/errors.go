package validation

import "errors"

var (
	// ErrFieldClosed is returned by Validate once the field has been closed.
	ErrFieldClosed = errors.New("validation: field is closed")

	// ErrValidationFailed is returned by Form.Validate when any field has an error.
	ErrValidationFailed = errors.New("validation failed")
)
