package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:     http.StatusNotFound,
		KindValidation:   http.StatusBadRequest,
		KindBadRequest:   http.StatusBadRequest,
		KindConflict:     http.StatusConflict,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindUpstream:     http.StatusBadGateway,
		KindInternal:     http.StatusInternalServerError,
		KindUnknown:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, want, (&Error{Kind: kind}).HTTPStatus())
		})
	}
}

func TestGetKindThroughWrapping(t *testing.T) {
	base := NotFound("Booking not found with UUID: %s", "abc")
	wrapped := fmt.Errorf("cancel booking: %w", base)

	assert.Equal(t, KindNotFound, GetKind(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.Equal(t, "Booking not found with UUID: abc", Message(wrapped))
}

func TestErrorStringIncludesOpAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream(cause, "legacy API unavailable").WithOp("fetch")

	assert.Equal(t, "fetch: legacy API unavailable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestMessageForPlainError(t *testing.T) {
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, KindUnknown, GetKind(errors.New("boom")))
}
