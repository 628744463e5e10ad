package order_test

import (
	"testing"

	"bazaarlink/internal/core/domain/model/order"
	"bazaarlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Pending, "PENDING"},
		{order.Confirmed, "CONFIRMED"},
		{order.Preparing, "PREPARING"},
		{order.Ready, "READY"},
		{order.OutForDelivery, "OUT_FOR_DELIVERY"},
		{order.Delivered, "DELIVERED"},
		{order.Cancelled, "CANCELLED"},
		{order.Unknown, "UNKNOWN"},
		{order.Status(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.Preparing, order.Ready,
			order.OutForDelivery, order.Delivered, order.Cancelled,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := order.StatusFromString("SHIPPED")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.StatusFromString("UNKNOWN")
		require.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{"pending to confirmed", order.Pending, order.Confirmed, true},
		{"confirmed to preparing", order.Confirmed, order.Preparing, true},
		{"preparing to ready", order.Preparing, order.Ready, true},
		{"ready to out for delivery", order.Ready, order.OutForDelivery, true},
		{"out for delivery to delivered", order.OutForDelivery, order.Delivered, true},
		{"forward skip is allowed", order.Pending, order.Ready, true},
		{"backward is rejected", order.Ready, order.Confirmed, false},
		{"same status is rejected", order.Preparing, order.Preparing, false},
		{"cancel from pending", order.Pending, order.Cancelled, true},
		{"cancel from confirmed", order.Confirmed, order.Cancelled, true},
		{"cancel from preparing rejected", order.Preparing, order.Cancelled, false},
		{"cancel from ready rejected", order.Ready, order.Cancelled, false},
		{"no way out of delivered", order.Delivered, order.Cancelled, false},
		{"no way out of cancelled", order.Cancelled, order.Confirmed, false},
		{"unknown source rejected", order.Unknown, order.Confirmed, false},
		{"unknown target rejected", order.Pending, order.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("legal move returns next status", func(t *testing.T) {
		next, err := order.Ready.TransitionTo(order.OutForDelivery)
		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, next)
	})

	t.Run("illegal move returns invalid transition", func(t *testing.T) {
		_, err := order.Delivered.TransitionTo(order.Pending)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "DELIVERED")
		assert.Contains(t, err.Error(), "PENDING")
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.OutForDelivery.IsTerminal())
}
