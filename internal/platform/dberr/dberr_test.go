// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/librarium/internal/platform/apperr"
	"github.com/taibuivan/librarium/internal/platform/dberr"
)

/*
TestWrap_Classification checks how driver errors map onto application errors.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound, http.StatusNotFound},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.CodeConflict, http.StatusConflict},
		{"foreign_key_violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeConflict, http.StatusConflict},
		{"syntax_error", &pgconn.PgError{Code: pgerrcode.SyntaxError}, apperr.CodeInternal, http.StatusInternalServerError},
		{"plain_error", errors.New("connection reset"), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

/*
TestWrap_HidesCause ensures internal detail stays out of the client message.
*/
func TestWrap_HidesCause(t *testing.T) {
	raw := errors.New(`relation "core.book" does not exist`)

	wrapped := dberr.Wrap(raw, "search_books")

	assert.NotContains(t, wrapped.Error(), "core.book")
	assert.ErrorIs(t, wrapped, raw)
}

/*
TestWrap_Passthrough covers nil and already-classified errors.
*/
func TestWrap_Passthrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	notFound := apperr.NotFound("Author")
	assert.Same(t, notFound, dberr.Wrap(notFound, "noop"))
}

/*
TestCode_Constraint reads SQLSTATE metadata off server errors.
*/
func TestCode_Constraint(t *testing.T) {
	err := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "book_isbn_key"}

	assert.Equal(t, pgerrcode.UniqueViolation, dberr.Code(err))
	assert.Equal(t, "book_isbn_key", dberr.Constraint(err))
	assert.Empty(t, dberr.Code(errors.New("plain")))
}
