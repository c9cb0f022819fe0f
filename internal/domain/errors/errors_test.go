package errors

import (
	"net/http"
	"testing"

	"warden/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "predefined", err: ErrDuplicateIdentity, want: KindDuplicateIdentity},
		{name: "wrapped", err: errors.Wrap(ErrInvalidCredentials, "login failed"), want: KindInvalidCredentials},
		{name: "database error", err: NewDatabaseExecuteError(errors.New("boom"), "insert"), want: KindInternal},
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestLoginFailuresShareRendering(t *testing.T) {
	assert.Equal(t, ErrIdentityNotFound.HTTPCode(), ErrInvalidCredentials.HTTPCode())
	assert.Equal(t, ErrIdentityNotFound.ErrorCode(), ErrInvalidCredentials.ErrorCode())
	assert.Equal(t, ErrIdentityNotFound.Message(), ErrInvalidCredentials.Message())

	assert.False(t, errors.Is(ErrIdentityNotFound, ErrInvalidCredentials))
	assert.False(t, errors.Is(ErrInvalidCredentials, ErrIdentityNotFound))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("email failed on required")

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrPasswordTooLong))
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode())
	assert.Equal(t, "email failed on required", err.Details())
}

func TestDatabaseExecuteError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "select")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Contains(t, err.Error(), "connection reset")
}
