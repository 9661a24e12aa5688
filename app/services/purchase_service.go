package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/jobs"
	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/app/repositories"
	"github.com/aymanhs/souq/pkg/apperr"
	"github.com/aymanhs/souq/pkg/cache"
	"github.com/aymanhs/souq/pkg/logger"
	"github.com/aymanhs/souq/pkg/metrics"
	"github.com/aymanhs/souq/pkg/queue"
)

// PurchaseService implements the purchase transaction. All reads and
// writes of one purchase run inside a single database transaction; the
// stock decrement is a guarded conditional update, so two concurrent
// buyers can never oversell a product regardless of interleaving.
type PurchaseService struct {
	db *gorm.DB
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

// PurchaseResult identifies the records created by a successful buy.
type PurchaseResult struct {
	OrderID   uint `json:"orderId"`
	ProductID uint `json:"productId"`
	BuyerID   uint `json:"buyerId"`
}

// Buy purchases quantity units of a product for the authenticated buyer.
// totalPrice is the amount the caller expects to pay, in minor units; it
// must exactly equal unit price × quantity.
//
// Checks run in a fixed order and the first failure wins:
// product exists, buyer is not the seller, stock is non-zero, stock
// covers the quantity, total price matches. On success the stock
// decrement, buyer append and order creation commit together or not at
// all.
//
// Buy is deliberately not idempotent: replaying the same request buys
// again and creates a new order.
func (s *PurchaseService) Buy(ctx context.Context, buyerID, productID uint, quantity int, totalPrice int64) (*PurchaseResult, error) {
	if quantity < 1 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}

	var result PurchaseResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product")
			}
			return err
		}

		if product.SellerID == buyerID {
			return apperr.InvalidOperation("You cannot buy your own product")
		}
		if product.Quantity < 1 {
			return apperr.OutOfStock()
		}
		if quantity > product.Quantity {
			return apperr.InsufficientStock()
		}
		if totalPrice != product.Price*int64(quantity) {
			return apperr.PriceMismatch()
		}

		// The guard re-checks stock at write time: if another purchase
		// committed between our read and this update, RowsAffected is 0
		// and nothing is mutated.
		products := repositories.NewProductRepository(tx)
		ok, err := products.DecrementQuantity(productID, quantity)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.InsufficientStock()
		}

		if err := products.AppendBuyer(productID, buyerID); err != nil {
			return err
		}

		order := models.Order{
			Quantity:   quantity,
			UnitPrice:  product.Price,
			TotalPrice: totalPrice,
			Status:     models.OrderPending,
			UserID:     buyerID,
			ProductID:  productID,
		}
		if err := repositories.NewOrderRepository(tx).Create(&order); err != nil {
			return err
		}

		result = PurchaseResult{OrderID: order.ID, ProductID: productID, BuyerID: buyerID}
		return nil
	})

	if err != nil {
		e := apperr.From(err)
		if e.Internal() {
			metrics.PurchasesTotal.WithLabelValues("error").Inc()
		} else {
			metrics.PurchasesTotal.WithLabelValues("rejected").Inc()
		}
		return nil, e
	}

	metrics.PurchasesTotal.WithLabelValues("success").Inc()
	cache.Del(productCacheKey(productID)) //nolint:errcheck
	s.sendReceipt(ctx, result, quantity, totalPrice)

	return &result, nil
}

// sendReceipt queues the receipt email. A dispatch failure is logged,
// never surfaced: the purchase already committed.
func (s *PurchaseService) sendReceipt(ctx context.Context, r PurchaseResult, quantity int, totalPrice int64) {
	var buyer models.User
	if err := s.db.WithContext(ctx).First(&buyer, r.BuyerID).Error; err != nil {
		logger.Warn("purchase: load buyer for receipt", "buyer_id", r.BuyerID, "error", err)
		return
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, r.ProductID).Error; err != nil {
		logger.Warn("purchase: load product for receipt", "product_id", r.ProductID, "error", err)
		return
	}

	job := &jobs.PurchaseReceiptJob{
		OrderID:      r.OrderID,
		Email:        buyer.Email,
		BuyerName:    buyer.Name,
		ProductTitle: product.Title,
		Quantity:     quantity,
		TotalPrice:   totalPrice,
	}
	if err := queue.Dispatch(job); err != nil {
		logger.Warn("purchase: dispatch receipt", "order_id", r.OrderID, "error", err)
	}
}
