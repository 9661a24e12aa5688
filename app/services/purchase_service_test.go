package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/pkg/apperr"
)

func TestBuySuccess(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	buyer := seedUser(t, db, "buyer", "buyer@example.com")
	product := seedProduct(t, db, seller.ID, 100, 10)

	svc := NewPurchaseService(db)
	result, err := svc.Buy(context.Background(), buyer.ID, product.ID, 2, 200)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, product.ID, result.ProductID)
	assert.Equal(t, buyer.ID, result.BuyerID)

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 8, got.Quantity)

	var order models.Order
	require.NoError(t, db.First(&order, result.OrderID).Error)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, int64(100), order.UnitPrice)
	assert.Equal(t, int64(200), order.TotalPrice)
	assert.Equal(t, buyer.ID, order.UserID)

	var buyers int64
	require.NoError(t, db.Model(&models.ProductBuyer{}).
		Where("product_id = ? AND user_id = ?", product.ID, buyer.ID).
		Count(&buyers).Error)
	assert.Equal(t, int64(1), buyers)
}

func TestBuyProductNotFound(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "buyer", "buyer@example.com")

	svc := NewPurchaseService(db)
	_, err := svc.Buy(context.Background(), buyer.ID, 999, 1, 100)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestBuySelfPurchase(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	product := seedProduct(t, db, seller.ID, 100, 10)

	svc := NewPurchaseService(db)
	_, err := svc.Buy(context.Background(), seller.ID, product.ID, 1, 100)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidOperation))
}

func TestBuySelfPurchaseWinsOverStockCheck(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	product := seedProduct(t, db, seller.ID, 100, 0) // also out of stock

	svc := NewPurchaseService(db)
	_, err := svc.Buy(context.Background(), seller.ID, product.ID, 1, 100)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidOperation),
		"self-purchase is checked before stock")
}

func TestBuyOutOfStock(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	buyer := seedUser(t, db, "buyer", "buyer@example.com")
	product := seedProduct(t, db, seller.ID, 100, 0)

	svc := NewPurchaseService(db)
	_, err := svc.Buy(context.Background(), buyer.ID, product.ID, 1, 100)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindOutOfStock))
}

func TestBuyInsufficientStockLeavesStateUntouched(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	buyer := seedUser(t, db, "buyer", "buyer@example.com")
	product := seedProduct(t, db, seller.ID, 100, 5)

	svc := NewPurchaseService(db)
	_, err := svc.Buy(context.Background(), buyer.ID, product.ID, 6, 600)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 5, got.Quantity)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestBuyPriceMismatchMutatesNothing(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	buyer := seedUser(t, db, "buyer", "buyer@example.com")
	product := seedProduct(t, db, seller.ID, 100, 10)

	svc := NewPurchaseService(db)
	_, err := svc.Buy(context.Background(), buyer.ID, product.ID, 2, 150)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindPriceMismatch))

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 10, got.Quantity)

	var orders, buyers int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.ProductBuyer{}).Count(&buyers).Error)
	assert.Zero(t, orders)
	assert.Zero(t, buyers)
}

func TestBuyRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	buyer := seedUser(t, db, "buyer", "buyer@example.com")
	product := seedProduct(t, db, seller.ID, 100, 10)

	svc := NewPurchaseService(db)
	for _, qty := range []int{0, -1} {
		_, err := svc.Buy(context.Background(), buyer.ID, product.ID, qty, 0)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	}
}

func TestRepeatBuyerAppendsNewRows(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	buyer := seedUser(t, db, "buyer", "buyer@example.com")
	product := seedProduct(t, db, seller.ID, 50, 10)

	svc := NewPurchaseService(db)
	_, err := svc.Buy(context.Background(), buyer.ID, product.ID, 1, 50)
	require.NoError(t, err)
	_, err = svc.Buy(context.Background(), buyer.ID, product.ID, 2, 100)
	require.NoError(t, err)

	var buyers int64
	require.NoError(t, db.Model(&models.ProductBuyer{}).
		Where("product_id = ? AND user_id = ?", product.ID, buyer.ID).
		Count(&buyers).Error)
	assert.Equal(t, int64(2), buyers, "each purchase appends its own row")

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(2), orders, "replays are not idempotent")

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 7, got.Quantity)
}

func TestConcurrentBuysNeverOversell(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")
	product := seedProduct(t, db, seller.ID, 100, 5)

	svc := NewPurchaseService(db)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i, buyerID := range []uint{alice.ID, bob.ID} {
		go func(i int, buyerID uint) {
			defer wg.Done()
			_, errs[i] = svc.Buy(context.Background(), buyerID, product.ID, 3, 300)
		}(i, buyerID)
	}
	wg.Wait()

	var successes, rejects int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.True(t, apperr.IsKind(err, apperr.KindInsufficientStock),
				"loser must see insufficient stock, got: %v", err)
			rejects++
		}
	}
	assert.Equal(t, 1, successes, "exactly one purchase wins")
	assert.Equal(t, 1, rejects)

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 2, got.Quantity)
	assert.GreaterOrEqual(t, got.Quantity, 0, "stock can never go negative")

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(1), orders)
}
