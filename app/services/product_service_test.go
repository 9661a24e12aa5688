package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/app/repositories"
	"github.com/aymanhs/souq/pkg/apperr"
)

func TestProductCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	svc := NewProductService(db)

	created, err := svc.Create(seller.ID, ProductInput{
		Title:       "Walnut desk",
		Description: "Solid walnut standing desk",
		Price:       19900,
		Quantity:    3,
		CoverImage:  "https://cdn.example.com/desk.jpg",
		Images:      []string{"https://cdn.example.com/desk-side.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, seller.ID, created.SellerID)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Walnut desk", got.Title)
	assert.Len(t, got.Images, 1)
}

func TestProductGetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)

	_, err := svc.Get(123)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestProductRejectsTooManyImages(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	svc := NewProductService(db)

	_, err := svc.Create(seller.ID, ProductInput{
		Title:       "Walnut desk",
		Description: "Solid walnut standing desk",
		Price:       19900,
		Images:      []string{"a", "b", "c", "d", "e"},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestProductUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	svc := NewProductService(db)

	created, err := svc.Create(seller.ID, ProductInput{
		Title:       "Walnut desk",
		Description: "Solid walnut standing desk",
		Price:       19900,
		Quantity:    3,
	})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, ProductInput{
		Title:       "Walnut desk v2",
		Description: "Solid walnut standing desk, adjustable",
		Price:       24900,
		Quantity:    5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(24900), updated.Price)
	assert.Equal(t, 5, updated.Quantity)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.Get(created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestProductDeleteKeepsOrders(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	buyer := seedUser(t, db, "buyer", "buyer@example.com")
	product := seedProduct(t, db, seller.ID, 100, 10)

	purchase := NewPurchaseService(db)
	result, err := purchase.Buy(t.Context(), buyer.ID, product.ID, 1, 100)
	require.NoError(t, err)

	svc := NewProductService(db)
	require.NoError(t, svc.Delete(product.ID))

	var order models.Order
	require.NoError(t, db.First(&order, result.OrderID).Error)
	assert.Equal(t, int64(100), order.UnitPrice, "order keeps its price snapshot")
}

func TestProductListFilters(t *testing.T) {
	db := newTestDB(t)
	seller := seedUser(t, db, "seller", "seller@example.com")
	other := seedUser(t, db, "other", "other@example.com")

	mk := func(title string, sellerID uint, price int64) {
		require.NoError(t, db.Create(&models.Product{
			Title: title, Description: "ten chars min", Price: price,
			Quantity: 1, SellerID: sellerID,
		}).Error)
	}
	mk("Oak chair", seller.ID, 5000)
	mk("Oak table", seller.ID, 15000)
	mk("Steel lamp", other.ID, 3000)

	svc := NewProductService(db)

	// Substring search.
	got, total, err := svc.List(repositories.ProductFilter{Search: "Oak"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)

	// Price window.
	got, total, err = svc.List(repositories.ProductFilter{PriceMin: 4000, PriceMax: 10000})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Oak chair", got[0].Title)

	// Seller filter plus ascending price sort.
	got, _, err = svc.List(repositories.ProductFilter{
		SellerID: seller.ID, SortBy: "price", Order: "asc",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Oak chair", got[0].Title)
	assert.Equal(t, "Oak table", got[1].Title)
}
