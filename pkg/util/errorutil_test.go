package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.Nil(t, ToDomainError(nil))
	})

	t.Run("passes domain errors through", func(t *testing.T) {
		original := NewValidationError("bad input", map[string]any{"field": "email"})
		mapped := ToDomainError(original)
		require.Equal(t, "VALIDATION_FAILED", mapped.Code)
		require.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	})

	t.Run("unwraps nested domain errors", func(t *testing.T) {
		wrapped := errors.Join(errors.New("outer"), NewUnauthorized("nope"))
		mapped := ToDomainError(wrapped)
		require.Equal(t, "UNAUTHORIZED", mapped.Code)
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		mapped := ToDomainError(pgx.ErrNoRows)
		require.Equal(t, "NOT_FOUND", mapped.Code)
		require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		mapped := ToDomainError(errors.New("boom"))
		require.Equal(t, "INTERNAL_ERROR", mapped.Code)
		require.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	})
}

func TestFailureConstructors(t *testing.T) {
	cause := errors.New("disk full")

	t.Run("storage failure", func(t *testing.T) {
		err := NewStorageFailure("failed to persist resume", cause)
		var domainErr *DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "STORAGE_FAILURE", domainErr.Code)
		require.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
		require.ErrorIs(t, err, cause)
	})

	t.Run("transaction failure", func(t *testing.T) {
		err := NewTransactionFailure("failed to commit", cause)
		var domainErr *DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "TRANSACTION_FAILURE", domainErr.Code)
		require.ErrorIs(t, err, cause)
	})
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("lead", map[string]any{"lead_id": "abc"})
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "lead not found", domainErr.Message)
	require.Equal(t, "abc", domainErr.Details["lead_id"])
}
