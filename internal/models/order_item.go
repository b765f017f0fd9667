package models

type OrderItem struct {
	ID       uint `gorm:"primaryKey"`
	OrderID  uint `gorm:"index;not null"`
	DishID   uint `gorm:"index;not null"`
	Dish     Dish `gorm:"constraint:OnDelete:CASCADE"`
	Quantity int  `gorm:"not null;default:1"`
}

// Price is derived from the referenced dish, never stored.
func (i *OrderItem) Price() float64 {
	return i.Dish.Price * float64(i.Quantity)
}
