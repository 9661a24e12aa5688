package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/pkg/metrics"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create persists a new order.
func (r *OrderRepository) Create(order *models.Order) error {
	defer metrics.ObserveDBQuery("orders.create", time.Now())
	return r.db.Create(order).Error
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(id uint) (*models.Order, error) {
	defer metrics.ObserveDBQuery("orders.find_by_id", time.Now())

	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns a page of orders, newest first, plus the total count.
func (r *OrderRepository) List(page, limit int) ([]models.Order, int64, error) {
	defer metrics.ObserveDBQuery("orders.list", time.Now())

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := r.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := r.db.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Update persists changes to an existing order.
func (r *OrderRepository) Update(order *models.Order) error {
	defer metrics.ObserveDBQuery("orders.update", time.Now())
	return r.db.Save(order).Error
}

// CountForUser returns how many orders a user has placed.
func (r *OrderRepository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
