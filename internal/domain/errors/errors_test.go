package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	base := errors.New("boom")
	e := NewAppError(http.StatusBadRequest, CodeValidation, "bad", base)
	assert.Equal(t, "boom", e.Error())
	assert.ErrorIs(t, e, base)

	noWrap := NewAppError(http.StatusBadRequest, CodeValidation, "bad", nil)
	assert.Equal(t, "bad", noWrap.Error())
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err      *AppError
		status   int
		code     string
		sentinel error
	}{
		{NotFound("missing"), http.StatusNotFound, CodeNotFound, ErrNotFound},
		{BadRequest("bad"), http.StatusBadRequest, CodeValidation, ErrInvalidInput},
		{Conflict("dup"), http.StatusConflict, CodeConflict, ErrAlreadyExists},
		{Unauthorized("nope"), http.StatusUnauthorized, CodeUnauthorized, ErrInvalidCredentials},
		{Expired("old"), http.StatusBadRequest, CodeExpired, ErrTokenExpired},
		{TooManyRequests("slow down"), http.StatusTooManyRequests, CodeTooManyRequests, ErrRateLimited},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status)
		assert.Equal(t, tc.code, tc.err.Code)
		assert.ErrorIs(t, tc.err, tc.sentinel)
	}

	internal := InternalError(errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "db down", internal.Error())
}
