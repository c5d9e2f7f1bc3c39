package service

import (
	"errors"
	"fmt"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeTimerBusy  = "TIMER_BUSY"
	CodeTimerIdle  = "TIMER_IDLE"
	CodeTransport  = "TRANSPORT_ERROR"
	CodeMalformed  = "MALFORMED_RESPONSE"
)

// FormAlert is the message shown when the add-task form is rejected.
const FormAlert = "Incorrect input in the task setting form"

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, err error, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
		Err:     err,
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewNotFound(resource, id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s не найден(а)", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

// NewValidationError rejects the add-task form. The message is the alert the
// user sees; field and reason go to Details.
func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: FormAlert,
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func newTransportError(op string, err error) *BusinessError {
	return NewBusinessError(CodeTransport, fmt.Sprintf("%s: бэкенд не ответил успешно", op), err, ToDetail("operation", op))
}

// IsCode reports whether err is a BusinessError with the given code.
func IsCode(err error, code string) bool {
	var be *BusinessError
	return errors.As(err, &be) && be.Code == code
}
