package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPassesThroughTaggedErrors(t *testing.T) {
	err := InsufficientStock()
	got := From(fmt.Errorf("buy product: %w", err))

	assert.Equal(t, KindInsufficientStock, got.Kind)
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.False(t, got.Internal())
}

func TestFromWrapsUnknownAsInternal(t *testing.T) {
	cause := errors.New("connection reset")
	got := From(cause)

	require.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.True(t, got.Internal())
	assert.ErrorIs(t, got, cause)
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("Product"))

	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindOutOfStock))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}

func TestConstructorStatuses(t *testing.T) {
	cases := []struct {
		err    *Error
		kind   Kind
		status int
	}{
		{NotFound("Order"), KindNotFound, http.StatusNotFound},
		{InvalidOperation("You cannot buy your own product"), KindInvalidOperation, http.StatusBadRequest},
		{OutOfStock(), KindOutOfStock, http.StatusBadRequest},
		{InsufficientStock(), KindInsufficientStock, http.StatusBadRequest},
		{PriceMismatch(), KindPriceMismatch, http.StatusBadRequest},
		{Validation("quantity must be a positive integer"), KindValidation, http.StatusBadRequest},
		{Auth("Access denied"), KindAuth, http.StatusUnauthorized},
		{Forbidden("Forbidden"), KindForbidden, http.StatusForbidden},
	}

	for _, c := range cases {
		assert.Equal(t, c.kind, c.err.Kind)
		assert.Equal(t, c.status, c.err.Status)
	}
}
