package orders

import (
	"errors"
	"fmt"
	"strings"

	"cafe-orders-backend/internal/database"
	"cafe-orders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateItemsRequest struct {
	Items []OrderItemPayload `json:"items"`
}

type UpdateItemsResponse struct {
	Status  string        `json:"status"`
	Warning string        `json:"warning,omitempty"`
	Order   OrderResponse `json:"order"`
}

// resolveItems turns payload rows into order items. Dishes are referenced by
// name; a missing quantity defaults to 1.
func resolveItems(payload []OrderItemPayload) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(payload))
	for _, p := range payload {
		name := strings.TrimSpace(p.Dish)
		if name == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "item dish name is required")
		}

		quantity := 1
		if p.Quantity != nil {
			quantity = *p.Quantity
		}
		if quantity < 1 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "item quantity must be at least 1")
		}

		var dish models.Dish
		if err := database.DB.First(&dish, "name = ?", name).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown dish: %s", name))
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, "could not load dishes")
		}

		items = append(items, models.OrderItem{
			DishID:   dish.ID,
			Dish:     dish,
			Quantity: quantity,
		})
	}
	return items, nil
}

func itemsChanged(current, incoming []models.OrderItem) bool {
	if len(current) != len(incoming) {
		return true
	}
	for i := range current {
		if current[i].DishID != incoming[i].DishID || current[i].Quantity != incoming[i].Quantity {
			return true
		}
	}
	return false
}

// PUT /api/orders/:id/items
// Replaces the order's line items. A submission identical to the stored set
// is a no-op and is reported as such instead of a save. An order may end up
// with zero items; that is allowed but flagged.
func UpdateOrderItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}

		order, err := loadOrder(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}

		var body UpdateItemsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		items, err := resolveItems(body.Items)
		if err != nil {
			return err
		}

		if !itemsChanged(order.Items, items) {
			return c.JSON(UpdateItemsResponse{
				Status: "no_changes",
				Order:  orderResponse(order),
			})
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if len(items) == 0 {
				return nil
			}
			for i := range items {
				items[i].OrderID = order.ID
			}
			return tx.Omit(clause.Associations).Create(&items).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update order items")
		}

		order, err = loadOrder(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update order items")
		}

		resp := UpdateItemsResponse{
			Status: "saved",
			Order:  orderResponse(order),
		}
		if len(order.Items) == 0 {
			resp.Warning = "order has no items"
		}
		return c.JSON(resp)
	}
}
