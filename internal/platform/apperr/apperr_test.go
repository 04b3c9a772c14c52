// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/librarium/internal/platform/apperr"
)

/*
TestWithCause_KeepsSentinelIdentity checks that annotated copies still match their sentinel.
*/
func TestWithCause_KeepsSentinelIdentity(t *testing.T) {
	sentinel := apperr.Conflict("Already there")
	cause := errors.New("duplicate key value")

	annotated := sentinel.WithCause(cause)
	wrapped := fmt.Errorf("create: %w", annotated)

	assert.ErrorIs(t, wrapped, sentinel)
	assert.ErrorIs(t, wrapped, cause)
	assert.NotErrorIs(t, wrapped, apperr.Conflict("Something else"))
	assert.Nil(t, sentinel.Cause)
}

/*
TestAs extracts the application error from a wrapped chain.
*/
func TestAs(t *testing.T) {
	err := fmt.Errorf("service: %w", apperr.NotFound("Book"))

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "Book not found", appError.Error())
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.IsAppError(errors.New("plain")))
}
