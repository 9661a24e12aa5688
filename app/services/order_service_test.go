package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/pkg/apperr"
)

func TestOrderStatusProgression(t *testing.T) {
	db := newTestDB(t)
	order := &models.Order{Quantity: 1, UnitPrice: 100, TotalPrice: 100, Status: models.OrderPending, UserID: 1, ProductID: 1}
	require.NoError(t, db.Create(order).Error)

	svc := NewOrderService(db)

	updated, err := svc.UpdateStatus(order.ID, "SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)

	updated, err = svc.UpdateStatus(order.ID, "DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, updated.Status)

	// Terminal state: nothing further is allowed.
	_, err = svc.UpdateStatus(order.ID, "PENDING")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidOperation))
}

func TestOrderStatusRejectsJumpAndBackwards(t *testing.T) {
	db := newTestDB(t)
	order := &models.Order{Quantity: 1, UnitPrice: 100, TotalPrice: 100, Status: models.OrderPending, UserID: 1, ProductID: 1}
	require.NoError(t, db.Create(order).Error)

	svc := NewOrderService(db)

	_, err := svc.UpdateStatus(order.ID, "DELIVERED")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidOperation), "no skipping PENDING -> DELIVERED")

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderPending, got.Status, "rejected update must not persist")
}

func TestOrderStatusUnknownValue(t *testing.T) {
	db := newTestDB(t)
	order := &models.Order{Quantity: 1, UnitPrice: 100, TotalPrice: 100, Status: models.OrderPending, UserID: 1, ProductID: 1}
	require.NoError(t, db.Create(order).Error)

	svc := NewOrderService(db)
	_, err := svc.UpdateStatus(order.ID, "CANCELLED")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestOrderNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)

	_, err := svc.Get(42)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.UpdateStatus(42, "SHIPPED")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestOrderListPagination(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 25; i++ {
		require.NoError(t, db.Create(&models.Order{
			Quantity: 1, UnitPrice: 100, TotalPrice: 100,
			Status: models.OrderPending, UserID: 1, ProductID: 1,
		}).Error)
	}

	svc := NewOrderService(db)
	orders, total, err := svc.List(2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, orders, 10)
}
