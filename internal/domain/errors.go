package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidValue = errors.New("invalid value")
)

// InvalidValueError reports a value rejected while setting or validating a field.
// Subject names the field or parameter, Value is what the caller supplied.
type InvalidValueError struct {
	Subject string
	Value   any
}

// InvalidValue returns an *InvalidValueError for subject and value.
func InvalidValue(subject string, value any) error {
	return &InvalidValueError{Subject: subject, Value: value}
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Subject, e.Value)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// NotFoundError reports a record id the store does not know.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("event %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
