package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that record or row is absent in repository or storage.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrConfiguration means that a required startup parameter is missing or invalid.
	ErrConfiguration = "configuration_error"
	// ErrSecretUnavailable means that no shared secret could be resolved or persisted.
	ErrSecretUnavailable = "secret_unavailable"
	// ErrUnauthorized means that the caller did not present the shared secret.
	ErrUnauthorized = "unauthorized"
	// ErrForbidden means that the caller address is not in the allow-list.
	ErrForbidden = "forbidden"
	// ErrServiceUnavailable means that the target peer is unknown or DOWN.
	ErrServiceUnavailable = "service_unavailable"
	// ErrRouteNotFound means that the target peer has no route with the requested logical name.
	ErrRouteNotFound = "route_not_found"
	// ErrTransportFailure means that a network error or timeout occurred talking to a peer.
	ErrTransportFailure = "transport_failure"
	// ErrRemoteStatus means that a peer answered with a non-success HTTP status.
	ErrRemoteStatus = "remote_status"
)

// MyError represents an error within the context of mymesh services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrBadParameter, message, inner)
}

func NewConfigurationError(message string, inner error) *MyError {
	return NewMyError(ErrConfiguration, message, inner)
}

func NewSecretUnavailableError(message string, inner error) *MyError {
	return NewMyError(ErrSecretUnavailable, message, inner)
}

func NewUnauthorizedError(message string) *MyError {
	return NewMyError(ErrUnauthorized, message, nil)
}

func NewForbiddenError(message string) *MyError {
	return NewMyError(ErrForbidden, message, nil)
}

func NewServiceUnavailableError(message string) *MyError {
	return NewMyError(ErrServiceUnavailable, message, nil)
}

func NewRouteNotFoundError(message string) *MyError {
	return NewMyError(ErrRouteNotFound, message, nil)
}

func NewTransportFailureError(message string, inner error) *MyError {
	return NewMyError(ErrTransportFailure, message, inner)
}

// StatusError is the inner error of a remote_status MyError.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("peer returned status %d", e.StatusCode)
}

func NewRemoteStatusError(message string, statusCode int, body []byte) *MyError {
	return NewMyError(ErrRemoteStatus, message, &StatusError{StatusCode: statusCode, Body: body})
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a mymesh error, or nil if it is not a mymesh error.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

// RemoteStatusCode returns the HTTP status a peer answered with, if err is a remote_status error.
func RemoteStatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}

func IsConfigurationError(err error) bool {
	return IsMyError(err, ErrConfiguration)
}

func IsSecretUnavailableError(err error) bool {
	return IsMyError(err, ErrSecretUnavailable)
}

func IsUnauthorizedError(err error) bool {
	return IsMyError(err, ErrUnauthorized)
}

func IsForbiddenError(err error) bool {
	return IsMyError(err, ErrForbidden)
}

func IsServiceUnavailableError(err error) bool {
	return IsMyError(err, ErrServiceUnavailable)
}

func IsRouteNotFoundError(err error) bool {
	return IsMyError(err, ErrRouteNotFound)
}

func IsTransportFailureError(err error) bool {
	return IsMyError(err, ErrTransportFailure)
}

func IsRemoteStatusError(err error) bool {
	return IsMyError(err, ErrRemoteStatus)
}
