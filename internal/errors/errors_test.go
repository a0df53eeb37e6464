package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCode(t *testing.T) {
	base := InvalidInput("bad date")
	wrapped := Wrap(base, "diagnose")

	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.Equal(t, "diagnose: bad date", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("disk on fire"), "load %s", "catalog")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "load catalog: disk on fire", wrapped.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", OutOfRange("id 28"))

	assert.True(t, Is(err, CodeOutOfRange))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidInput("x"), http.StatusBadRequest},
		{OutOfRange("x"), http.StatusBadRequest},
		{NotFound("shuku"), http.StatusNotFound},
		{DatabaseError("query", fmt.Errorf("boom")), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "bad date", PublicMessage(InvalidInput("bad date")))
	assert.Equal(t, "internal server error", PublicMessage(DatabaseError("query", fmt.Errorf("password=secret"))))
	assert.Equal(t, "internal server error", PublicMessage(fmt.Errorf("raw")))
}

func TestInternalErrorIsServerSide(t *testing.T) {
	err := InternalError("panic: nil map")
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "internal server error", PublicMessage(err))
}
