package models

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusReady   OrderStatus = "ready"
	StatusPaid    OrderStatus = "paid"
)

// Table numbers the cafe actually has.
const (
	MinTableNumber = 1
	MaxTableNumber = 15
)

// ParseOrderStatus maps a user-supplied token to a status, case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusReady:
		return StatusReady, true
	case StatusPaid:
		return StatusPaid, true
	}
	return "", false
}

// Occupying reports whether an order with this status keeps its table busy.
// Paid orders free the table.
func (s OrderStatus) Occupying() bool {
	return s == StatusPending || s == StatusReady
}

type Order struct {
	ID          uint        `gorm:"primaryKey"`
	TableNumber int         `gorm:"not null;index"`
	Status      OrderStatus `gorm:"size:10;not null;default:pending;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE"`
}

// TotalPrice sums the derived line prices. Items (with their dishes) must be
// preloaded.
func (o *Order) TotalPrice() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price()
	}
	return total
}
