package orders

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cafe-orders-backend/internal/database"
	"cafe-orders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemPayload struct {
	Dish     string `json:"dish"`
	Quantity *int   `json:"quantity"`
}

type CreateOrderRequest struct {
	TableNumber int                `json:"table_number"`
	Items       []OrderItemPayload `json:"items"`
}

type UpdateOrderRequest struct {
	TableNumber *int                `json:"table_number"`
	Status      *string             `json:"status"`
	Items       *[]OrderItemPayload `json:"items"`
}

type OrderItemResponse struct {
	ID       uint    `json:"id"`
	Dish     string  `json:"dish"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderResponse struct {
	ID          uint                `json:"id"`
	TableNumber int                 `json:"table_number"`
	Status      string              `json:"status"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
	TotalPrice  float64             `json:"total_price"`
	Items       []OrderItemResponse `json:"items"`
}

type OrderListResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Warnings []string        `json:"warnings,omitempty"`
}

func orderResponse(o models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:       item.ID,
			Dish:     item.Dish.Name,
			Quantity: item.Quantity,
			Price:    item.Price(),
		})
	}
	return OrderResponse{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt.Format(time.RFC3339),
		TotalPrice:  o.TotalPrice(),
		Items:       items,
	}
}

func loadOrder(id int) (models.Order, error) {
	var order models.Order
	err := database.DB.Preload("Items.Dish").First(&order, "id = ?", id).Error
	return order, err
}

// GET /api/orders?table=...&status=...
// Bad filter values degrade to the unfiltered dimension with a warning,
// they never abort the listing.
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var warnings []string

		dbq := database.DB.Preload("Items.Dish").Order("created_at desc, id desc")

		if tableStr := strings.TrimSpace(c.Query("table")); tableStr != "" {
			if n, err := strconv.Atoi(tableStr); err == nil && n >= 0 {
				dbq = dbq.Where("table_number = ?", n)
			} else {
				warnings = append(warnings, "invalid table number filter ignored")
			}
		}

		if statusStr := strings.TrimSpace(c.Query("status")); statusStr != "" {
			if st, ok := models.ParseOrderStatus(statusStr); ok {
				dbq = dbq.Where("status = ?", st)
			} else {
				warnings = append(warnings, "invalid order status filter ignored")
			}
		}

		var rows []models.Order
		if err := dbq.Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list orders")
		}

		resp := OrderListResponse{
			Orders:   make([]OrderResponse, 0, len(rows)),
			Warnings: warnings,
		}
		for _, o := range rows {
			resp.Orders = append(resp.Orders, orderResponse(o))
		}
		return c.JSON(resp)
	}
}

// GET /api/orders/search?q=...
// A numeric query matches the table number, anything else matches the
// status case-insensitively. An unknown token simply matches nothing.
func SearchOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))

		dbq := database.DB.Preload("Items.Dish").Order("created_at desc, id desc")
		if q != "" {
			if n, err := strconv.Atoi(q); err == nil && n >= 0 {
				dbq = dbq.Where("table_number = ?", n)
			} else {
				dbq = dbq.Where("LOWER(status) = ?", strings.ToLower(q))
			}
		}

		var rows []models.Order
		if err := dbq.Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not search orders")
		}

		resp := make([]OrderResponse, 0, len(rows))
		for _, o := range rows {
			resp = append(resp, orderResponse(o))
		}
		return c.JSON(resp)
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}

		order, err := loadOrder(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return c.JSON(orderResponse(order))
	}
}

// POST /api/orders
// New orders always start as pending. The table must be inside the cafe's
// range and not have another open order on it.
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.TableNumber < models.MinTableNumber || body.TableNumber > models.MaxTableNumber {
			return fiber.NewError(fiber.StatusBadRequest, "invalid table number")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "add at least one dish to the order")
		}

		items, err := resolveItems(body.Items)
		if err != nil {
			return err
		}

		occupied, err := occupiedTables()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create order")
		}
		if occupied[body.TableNumber] {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("table %d already has an open order", body.TableNumber))
		}

		order := models.Order{
			TableNumber: body.TableNumber,
			Status:      models.StatusPending,
		}
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].OrderID = order.ID
			}
			return tx.Omit(clause.Associations).Create(&items).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create order")
		}

		order.Items = items
		return c.Status(fiber.StatusCreated).JSON(orderResponse(order))
	}
}

// PUT /api/orders/:id
// Full REST update: any of table_number, status and items may be changed.
// When items are present the whole line-item set is replaced.
func UpdateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}

		order, err := loadOrder(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}

		var body UpdateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.TableNumber != nil {
			if *body.TableNumber < models.MinTableNumber || *body.TableNumber > models.MaxTableNumber {
				return fiber.NewError(fiber.StatusBadRequest, "invalid table number")
			}
			order.TableNumber = *body.TableNumber
		}
		if body.Status != nil {
			st, ok := models.ParseOrderStatus(*body.Status)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "invalid order status")
			}
			order.Status = st
		}

		var items []models.OrderItem
		if body.Items != nil {
			items, err = resolveItems(*body.Items)
			if err != nil {
				return err
			}
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
				return err
			}
			if body.Items == nil {
				return nil
			}
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
			return fiber.NewError(fiber.StatusInternalServerError, "could not update order")
		}

		order, err = loadOrder(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update order")
		}
		return c.JSON(orderResponse(order))
	}
}

// DELETE /api/orders/:id
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "order not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete order")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete order")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/orders/delete-all
func DeleteAllOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Where("1 = 1").Delete(&models.Order{}).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete orders")
		}

		return c.JSON(fiber.Map{"status": "all orders deleted"})
	}
}
