package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/app/repositories"
	"github.com/aymanhs/souq/pkg/apperr"
)

// OrderService implements order listing, lookup and the forward-only
// status progression.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository(db)}
}

// List returns a page of orders, newest first, plus the total count.
func (s *OrderService) List(page, limit int) ([]models.Order, int64, error) {
	orders, total, err := s.orders.List(page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return orders, total, nil
}

// Get returns one order.
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("Order")
		}
		return nil, apperr.Internal(err)
	}
	return order, nil
}

// UpdateStatus advances an order's status. Only the next forward step
// is accepted; unknown statuses, backward moves and jumps are rejected.
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	next := models.OrderStatus(status)
	if !next.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("Unknown order status %q", status))
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("Order")
		}
		return nil, apperr.Internal(err)
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, apperr.InvalidOperation(
			fmt.Sprintf("Order cannot move from %s to %s", order.Status, next))
	}

	order.Status = next
	if err := s.orders.Update(order); err != nil {
		return nil, apperr.Internal(err)
	}
	return order, nil
}
