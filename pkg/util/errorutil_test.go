package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewValidationError("bad input", map[string]any{"field": "name"})

	mapped := ToDomainError(original)
	require.NotNil(t, mapped)
	assert.Equal(t, CodeValidationFailed, mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	assert.Equal(t, "name", mapped.Details["field"])
}

func TestToDomainErrorMapsMissingDocument(t *testing.T) {
	mapped := ToDomainError(mongo.ErrNoDocuments)
	require.NotNil(t, mapped)
	assert.Equal(t, CodeNotFound, mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")

	mapped := ToDomainError(cause)
	require.NotNil(t, mapped)
	assert.Equal(t, CodeInternalError, mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	// The backend detail stays out of the client-facing message.
	assert.Equal(t, "internal server error", mapped.Message)
	assert.ErrorIs(t, mapped, cause)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, cause, de.Unwrap())
}

func TestTaxonomyStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"invalid credentials", NewInvalidCredentials(), CodeInvalidCredentials, http.StatusForbidden},
		{"second factor not provisioned", NewSecondFactorNotProvisioned(), CodeSecondFactorNotProvisioned, http.StatusForbidden},
		{"second factor required", NewSecondFactorRequired(), CodeSecondFactorRequired, http.StatusForbidden},
		{"second factor rejected", NewSecondFactorRejected(), CodeSecondFactorRejected, http.StatusForbidden},
		{"invalid token", NewInvalidToken("bad"), CodeInvalidToken, http.StatusUnauthorized},
		{"expired token", NewExpiredToken(), CodeExpiredToken, http.StatusUnauthorized},
		{"not authenticated", NewNotAuthenticated("no"), CodeNotAuthenticated, http.StatusUnauthorized},
		{"not owner", NewNotOwner(), CodeNotOwner, http.StatusUnauthorized},
		{"not found", NewNotFound("order"), CodeNotFound, http.StatusNotFound},
		{"validation", NewValidationError("bad", nil), CodeValidationFailed, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var de *DomainError
			require.True(t, errors.As(tt.err, &de))
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}
}
