package entity

import (
	"errors"
	"fmt"
)

// ValidationError is a caller-correctable precondition failure: blank or
// malformed input, a missing referenced entity, a duplicate identifier.
// It is always raised before any state is mutated.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// BusinessError is a domain rule violation on otherwise valid input:
// insufficient stock, over capacity, an illegal status transition.
type BusinessError struct {
	Msg string
}

func (e *BusinessError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func Businessf(format string, args ...any) error {
	return &BusinessError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsBusiness(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}
