package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus_Mapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Unauthenticated("no token"), http.StatusUnauthorized},
		{PermissionDenied("not yours"), http.StatusForbidden},
		{InvalidArgument("bad payload"), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{FailedPrecondition("wrong state"), http.StatusConflict},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "error: %v", tt.err)
	}
}

func TestKindOf_UnwrapsChain(t *testing.T) {
	inner := NotFound("booking not found")
	wrapped := fmt.Errorf("loading booking: %w", inner)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindInternal))
}

func TestInternal_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("failed to load booking", cause)

	assert.Equal(t, "failed to load booking", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}
