package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("no access")

	mapped := ToDomainError(original)
	require.NotNil(t, mapped)
	assert.Equal(t, "FORBIDDEN", mapped.Code)
	assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
}

func TestToDomainErrorWrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewConflict("email already registered", nil))

	mapped := ToDomainError(wrapped)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	for _, err := range []error{pgx.ErrNoRows, sql.ErrNoRows, fmt.Errorf("query: %w", pgx.ErrNoRows)} {
		mapped := ToDomainError(err)
		assert.Equal(t, "NOT_FOUND", mapped.Code)
		assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	}
}

func TestToDomainErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"}

	mapped := ToDomainError(pgErr)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	assert.Equal(t, "customers_email_key", mapped.Details["constraint"])
}

func TestToDomainErrorUnknownBecomesInternal(t *testing.T) {
	cause := errors.New("connection refused")

	mapped := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	assert.ErrorIs(t, mapped, cause)
	assert.Equal(t, "internal server error", mapped.Message)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestDomainErrorMessageFormatting(t *testing.T) {
	bare := &DomainError{Message: "boom"}
	assert.Equal(t, "boom", bare.Error())

	wrapped := &DomainError{Message: "boom", Err: errors.New("root cause")}
	assert.Equal(t, "boom: root cause", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "root cause")
}
