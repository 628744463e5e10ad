package delivery_test

import (
	"testing"
	"time"

	"bazaarlink/internal/core/domain/model/delivery"
	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func testDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		testGeoPoint(t, 12.9716, 77.5946),
		testGeoPoint(t, 12.9352, 77.6245),
		time.Now(),
	)
	require.NoError(t, err)
	return d
}

func TestNewDelivery(t *testing.T) {
	t.Run("starts pending with no position and no completion time", func(t *testing.T) {
		d := testDelivery(t)

		assert.Equal(t, delivery.Pending, d.Status())
		assert.Nil(t, d.CurrentPosition())
		assert.Nil(t, d.ActualDeliveryTime())
		assert.True(t, d.IsActive())
		require.NoError(t, d.Validate())
	})

	t.Run("rejects zero identifiers", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
			testGeoPoint(t, 1, 1), testGeoPoint(t, 2, 2), time.Now(),
		)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unset locations", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.GeoPoint{}, testGeoPoint(t, 2, 2), time.Now(),
		)
		require.Error(t, err)
	})
}

func TestDelivery_Validate_ZeroValue(t *testing.T) {
	var d delivery.Delivery
	require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)

	var nilDelivery *delivery.Delivery
	require.ErrorIs(t, nilDelivery.Validate(), delivery.ErrDeliveryIsNotConstructed)
}

func TestDelivery_ChangeStatus(t *testing.T) {
	t.Run("full forward walk sets completion time at the end", func(t *testing.T) {
		d := testDelivery(t)

		require.NoError(t, d.ChangeStatus(delivery.Picked, time.Now()))
		assert.Nil(t, d.ActualDeliveryTime())

		require.NoError(t, d.ChangeStatus(delivery.OutForDelivery, time.Now()))
		assert.Nil(t, d.ActualDeliveryTime())

		completedAt := time.Now()
		require.NoError(t, d.ChangeStatus(delivery.Delivered, completedAt))

		assert.Equal(t, delivery.Delivered, d.Status())
		assert.False(t, d.IsActive())
		require.NotNil(t, d.ActualDeliveryTime())
		assert.True(t, d.ActualDeliveryTime().Equal(completedAt))
	})

	t.Run("skipping a step is an invalid transition", func(t *testing.T) {
		d := testDelivery(t)

		err := d.ChangeStatus(delivery.OutForDelivery, time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, delivery.Pending, d.Status())
	})

	t.Run("backward move is an invalid transition", func(t *testing.T) {
		d := testDelivery(t)
		require.NoError(t, d.ChangeStatus(delivery.Picked, time.Now()))

		err := d.ChangeStatus(delivery.Pending, time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, delivery.Picked, d.Status())
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		d := testDelivery(t)
		require.NoError(t, d.ChangeStatus(delivery.Picked, time.Now()))
		require.NoError(t, d.ChangeStatus(delivery.OutForDelivery, time.Now()))
		require.NoError(t, d.ChangeStatus(delivery.Delivered, time.Now()))

		err := d.ChangeStatus(delivery.Pending, time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestDelivery_UpdatePosition(t *testing.T) {
	t.Run("records latest position", func(t *testing.T) {
		d := testDelivery(t)

		first := testGeoPoint(t, 12.9500, 77.6000)
		require.NoError(t, d.UpdatePosition(first))
		require.NotNil(t, d.CurrentPosition())
		firstEqual, err := d.CurrentPosition().IsEqual(first)
		require.NoError(t, err)
		assert.True(t, firstEqual)

		second := testGeoPoint(t, 12.9400, 77.6100)
		require.NoError(t, d.UpdatePosition(second))
		secondEqual, err := d.CurrentPosition().IsEqual(second)
		require.NoError(t, err)
		assert.True(t, secondEqual)
	})

	t.Run("rejected on a completed trip", func(t *testing.T) {
		d := testDelivery(t)
		require.NoError(t, d.ChangeStatus(delivery.Picked, time.Now()))
		require.NoError(t, d.ChangeStatus(delivery.OutForDelivery, time.Now()))
		require.NoError(t, d.ChangeStatus(delivery.Delivered, time.Now()))

		err := d.UpdatePosition(testGeoPoint(t, 12.9, 77.6))
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("rejects unset position", func(t *testing.T) {
		d := testDelivery(t)
		require.Error(t, d.UpdatePosition(kernel.GeoPoint{}))
	})
}

func TestRestoreDelivery(t *testing.T) {
	id, orderID, agentID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	assignedAt := time.Now().Add(-time.Hour)
	completedAt := time.Now()

	t.Run("restores an in-flight delivery with position", func(t *testing.T) {
		position := testGeoPoint(t, 12.95, 77.61)
		d, err := delivery.RestoreDelivery(
			id, orderID, agentID, delivery.OutForDelivery,
			testGeoPoint(t, 12.9716, 77.5946), testGeoPoint(t, 12.9352, 77.6245),
			&position, assignedAt, nil,
		)
		require.NoError(t, err)
		assert.Equal(t, delivery.OutForDelivery, d.Status())
		positionEqual, err := d.CurrentPosition().IsEqual(position)
		require.NoError(t, err)
		assert.True(t, positionEqual)
		assert.True(t, d.AssignedAt().Equal(assignedAt))
	})

	t.Run("restores a completed delivery", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			id, orderID, agentID, delivery.Delivered,
			testGeoPoint(t, 12.9716, 77.5946), testGeoPoint(t, 12.9352, 77.6245),
			nil, assignedAt, &completedAt,
		)
		require.NoError(t, err)
		assert.False(t, d.IsActive())
		require.NotNil(t, d.ActualDeliveryTime())
	})

	t.Run("completion time on an active delivery is inconsistent", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			id, orderID, agentID, delivery.Picked,
			testGeoPoint(t, 12.9716, 77.5946), testGeoPoint(t, 12.9352, 77.6245),
			nil, assignedAt, &completedAt,
		)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("delivered without completion time is inconsistent", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			id, orderID, agentID, delivery.Delivered,
			testGeoPoint(t, 12.9716, 77.5946), testGeoPoint(t, 12.9352, 77.6245),
			nil, assignedAt, nil,
		)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}
