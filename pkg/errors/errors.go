package errors

import (
	"errors"
	"fmt"
)

// Code classifies an application error.
type Code int

// Error codes, one per failure class surfaced by the data layer.
const (
	CodeNotFound Code = iota + 1000
	CodeDuplicate
	CodeValidation
	CodePersistence
)

// AppError represents an application error
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Duplicate(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeDuplicate,
		Message: fmt.Sprintf("%s already exists", resource),
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Err:     err,
	}
}

func Persistence(message string, err error) *AppError {
	return &AppError{
		Code:    CodePersistence,
		Message: message,
		Err:     err,
	}
}

func is(err error, code Code) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool    { return is(err, CodeNotFound) }
func IsDuplicate(err error) bool   { return is(err, CodeDuplicate) }
func IsValidation(err error) bool  { return is(err, CodeValidation) }
func IsPersistence(err error) bool { return is(err, CodePersistence) }
