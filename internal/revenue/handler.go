package revenue

import (
	"cafe-orders-backend/internal/database"
	"cafe-orders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RevenueResponse struct {
	Revenue float64 `json:"revenue"`
}

// GET /api/revenue
// Sums price*quantity over the items of paid orders. No paid orders means
// zero, not an error.
func RevenueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var total float64
		err := database.DB.Model(&models.OrderItem{}).
			Joins("JOIN dishes ON dishes.id = order_items.dish_id").
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.status = ?", models.StatusPaid).
			Select("COALESCE(SUM(dishes.price * order_items.quantity), 0)").
			Scan(&total).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not calculate revenue")
		}

		return c.JSON(RevenueResponse{Revenue: total})
	}
}
