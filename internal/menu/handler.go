package menu

import (
	"math"
	"strings"

	"cafe-orders-backend/internal/database"
	"cafe-orders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DishResponse struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CreateDishRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type UpdateDishRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

func dishResponse(d models.Dish) DishResponse {
	return DishResponse{ID: d.ID, Name: d.Name, Price: d.Price}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "dish name is required")
	}
	if len([]rune(name)) > models.DishNameMaxLength {
		return "", fiber.NewError(fiber.StatusBadRequest, "dish name must be at most 100 characters")
	}
	return name, nil
}

func validatePrice(price float64) (float64, error) {
	if price < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "price must not be negative")
	}
	if price > models.DishPriceMax {
		return 0, fiber.NewError(fiber.StatusBadRequest, "price is too large")
	}
	// prices carry two fractional digits
	return math.Round(price*100) / 100, nil
}

// nameTaken checks the unique-name invariant before writing. The unique index
// on dishes.name is the backstop for concurrent creates.
func nameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	q := database.DB.Model(&models.Dish{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GET /api/dishes
func ListDishesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dishes []models.Dish
		if err := database.DB.Order("name asc").Find(&dishes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list dishes")
		}

		res := make([]DishResponse, 0, len(dishes))
		for _, d := range dishes {
			res = append(res, dishResponse(d))
		}
		return c.JSON(res)
	}
}

// GET /api/dishes/:id
func GetDishHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "dish not found")
		}

		var dish models.Dish
		if err := database.DB.First(&dish, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "dish not found")
		}
		return c.JSON(dishResponse(dish))
	}
}

// POST /api/dishes
func CreateDishHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDishRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		name, err := validateName(body.Name)
		if err != nil {
			return err
		}
		price, err := validatePrice(body.Price)
		if err != nil {
			return err
		}

		taken, err := nameTaken(name, 0)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create dish")
		}
		if taken {
			return fiber.NewError(fiber.StatusBadRequest, "a dish with this name already exists")
		}

		dish := models.Dish{Name: name, Price: price}
		if err := database.DB.Create(&dish).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create dish")
		}

		return c.Status(fiber.StatusCreated).JSON(dishResponse(dish))
	}
}

// PUT /api/dishes/:id
func UpdateDishHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "dish not found")
		}

		var dish models.Dish
		if err := database.DB.First(&dish, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "dish not found")
		}

		var body UpdateDishRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.Name != nil {
			name, err := validateName(*body.Name)
			if err != nil {
				return err
			}
			taken, err := nameTaken(name, dish.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not update dish")
			}
			if taken {
				return fiber.NewError(fiber.StatusBadRequest, "a dish with this name already exists")
			}
			dish.Name = name
		}
		if body.Price != nil {
			price, err := validatePrice(*body.Price)
			if err != nil {
				return err
			}
			dish.Price = price
		}

		if err := database.DB.Save(&dish).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update dish")
		}

		return c.JSON(dishResponse(dish))
	}
}

// DELETE /api/dishes/:id
// Removes the dish and every order item that references it.
func DeleteDishHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "dish not found")
		}

		var dish models.Dish
		if err := database.DB.First(&dish, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "dish not found")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("dish_id = ?", dish.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&dish).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete dish")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
