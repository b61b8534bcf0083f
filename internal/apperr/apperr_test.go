package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := New(KindAttemptsExhausted, "Submit", "attempt %d of %d used", 3, 3)
	wrapped := fmt.Errorf("handler: %w", err)

	assert.True(t, errors.Is(wrapped, ErrAttemptsExhausted))
	assert.False(t, errors.Is(wrapped, ErrAlreadyCompleted))
	assert.Equal(t, KindAttemptsExhausted, KindOf(wrapped))
	assert.Equal(t, "Submit: attempt 3 of 3 used", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:          http.StatusNotFound,
		KindWindowClosed:      http.StatusConflict,
		KindAlreadyCompleted:  http.StatusConflict,
		KindAttemptsExhausted: http.StatusConflict,
		KindInvalidArgument:   http.StatusBadRequest,
		KindPermissionDenied:  http.StatusForbidden,
		KindIntegrityFault:    http.StatusInternalServerError,
		KindInternal:          http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), string(kind))
	}
}

func TestIsEligibility(t *testing.T) {
	assert.True(t, IsEligibility(KindWindowClosed))
	assert.True(t, IsEligibility(KindAlreadyCompleted))
	assert.True(t, IsEligibility(KindAttemptsExhausted))
	assert.False(t, IsEligibility(KindIntegrityFault))
	assert.False(t, IsEligibility(KindNotFound))
}
