package models

import "time"

// Dish price limits: 7 significant digits, 2 of them fractional.
const (
	DishNameMaxLength = 100
	DishPriceMax      = 99999.99
)

type Dish struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null;unique"`
	Price     float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
