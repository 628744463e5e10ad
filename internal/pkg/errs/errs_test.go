package errs_test

import (
	"errors"
	"testing"

	"bazaarlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("delivery", "abc", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: delivery abc (cause: record not found)", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestInvalidStateError(t *testing.T) {
	err := errs.NewInvalidStateError("order is not ready for delivery")

	assert.Equal(t, "invalid state: order is not ready for delivery", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidState)

	withCause := errs.NewInvalidStateErrorWithCause("agent inactive", errors.New("deactivated by admin"))
	assert.Equal(t, "invalid state: agent inactive (cause: deactivated by admin)", withCause.Error())
}

func TestConflictError(t *testing.T) {
	cause := errors.New("duplicated key")
	err := errs.NewConflictErrorWithCause("delivery already assigned", cause)

	assert.Equal(t, "conflict: delivery already assigned (cause: duplicated key)", err.Error())
	assert.Equal(t, cause, err.Cause)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestUnavailableError(t *testing.T) {
	err := errs.NewUnavailableError("no available delivery agents found")

	assert.Equal(t, "unavailable: no available delivery agents found", err.Error())
	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("orderId")

	assert.Equal(t, "orderId", err.ParamName)
	assert.Equal(t, "value is required: orderId", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestValueIsInvalidError(t *testing.T) {
	cause := errors.New("not a status")
	err := errs.NewValueIsInvalidErrorWithCause("status", cause)

	assert.Equal(t, "value is invalid: status (cause: not a status)", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 120.5, -90.0, 90.0)

		assert.Equal(t, "value is out of range: latitude is 120.5, min -90, max 90", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)

		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("PENDING", "DELIVERED")

	assert.Equal(t, "PENDING", err.From)
	assert.Equal(t, "DELIVERED", err.To)
	assert.Equal(t, "invalid transition: PENDING -> DELIVERED", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestSentinelErrors(t *testing.T) {
	for _, sentinel := range []error{
		errs.ErrObjectNotFound,
		errs.ErrInvalidState,
		errs.ErrConflict,
		errs.ErrUnavailable,
		errs.ErrValueIsRequired,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		errs.ErrInvalidTransition,
	} {
		require.Error(t, sentinel)
	}
}
