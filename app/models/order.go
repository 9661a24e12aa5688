package models

import "gorm.io/gorm"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next. Orders
// only move forward one step: PENDING → SHIPPED → DELIVERED. Skipping a
// step or moving backwards is rejected.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderShipped
	case OrderShipped:
		return next == OrderDelivered
	}
	return false
}

// Order records one successful purchase. UnitPrice is a snapshot of the
// product price at purchase time, so the order stays meaningful if the
// product is later edited or deleted.
type Order struct {
	gorm.Model
	Quantity   int         `gorm:"not null"                         json:"quantity"`
	UnitPrice  int64       `gorm:"not null"                         json:"unitPrice"`
	TotalPrice int64       `gorm:"not null"                         json:"totalPrice"`
	Status     OrderStatus `gorm:"size:20;not null;default:PENDING" json:"status"`
	UserID     uint        `gorm:"not null;index"                   json:"user"`
	ProductID  uint        `gorm:"not null;index"                   json:"product"`
}
