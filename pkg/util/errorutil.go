package util

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// Taxonomy codes returned in error payloads. These are stable and
// machine-readable; handlers never leak internal details past them.
const (
	CodeInvalidCredentials         = "INVALID_CREDENTIALS"
	CodeSecondFactorNotProvisioned = "SECOND_FACTOR_NOT_PROVISIONED"
	CodeSecondFactorRequired       = "SECOND_FACTOR_REQUIRED"
	CodeSecondFactorRejected       = "SECOND_FACTOR_REJECTED"
	CodeInvalidToken               = "INVALID_TOKEN"
	CodeExpiredToken               = "EXPIRED_TOKEN"
	CodeNotAuthenticated           = "NOT_AUTHENTICATED"
	CodeNotOwner                   = "NOT_OWNER"
	CodeNotFound                   = "NOT_FOUND"
	CodeValidationFailed           = "VALIDATION_FAILED"
	CodeInternalError              = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

// NewNotFound covers both genuinely missing and soft-deleted resources so
// callers cannot distinguish deletion history.
func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewNotAuthenticated(message string) error {
	return NewDomainError(CodeNotAuthenticated, message, http.StatusUnauthorized, nil)
}

func NewInvalidToken(message string) error {
	return NewDomainError(CodeInvalidToken, message, http.StatusUnauthorized, nil)
}

func NewExpiredToken() error {
	return NewDomainError(CodeExpiredToken, "token expired", http.StatusUnauthorized, nil)
}

func NewNotOwner() error {
	return NewDomainError(CodeNotOwner, "caller does not own this resource", http.StatusUnauthorized, nil)
}

func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "invalid credentials", http.StatusForbidden, nil)
}

func NewSecondFactorNotProvisioned() error {
	return NewDomainError(CodeSecondFactorNotProvisioned, "second factor not provisioned", http.StatusForbidden, nil)
}

func NewSecondFactorRequired() error {
	return NewDomainError(CodeSecondFactorRequired, "second factor code required", http.StatusForbidden, nil)
}

func NewSecondFactorRejected() error {
	return NewDomainError(CodeSecondFactorRejected, "second factor code rejected", http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Unrecognized errors
// become internal errors so no backend detail reaches the response body.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
