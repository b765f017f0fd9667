package orders

import (
	"cafe-orders-backend/internal/database"
	"cafe-orders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/orders/:id/status
// Any status may move to any other; an unknown value fails and leaves the
// order untouched.
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}

		order, err := loadOrder(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		st, ok := models.ParseOrderStatus(body.Status)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order status")
		}

		order.Status = st
		if err := database.DB.Omit(clause.Associations).Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update order status")
		}

		return c.JSON(orderResponse(order))
	}
}
