package orders

import (
	"cafe-orders-backend/internal/database"
	"cafe-orders-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type FreeTablesResponse struct {
	FreeTables []int  `json:"free_tables"`
	Message    string `json:"message,omitempty"`
}

// occupiedTables returns the table numbers held by pending or ready orders.
func occupiedTables() (map[int]bool, error) {
	var numbers []int
	err := database.DB.Model(&models.Order{}).
		Distinct("table_number").
		Where("status IN ?", []models.OrderStatus{models.StatusPending, models.StatusReady}).
		Pluck("table_number", &numbers).Error
	if err != nil {
		return nil, err
	}

	occupied := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		occupied[n] = true
	}
	return occupied, nil
}

func freeTables() ([]int, error) {
	occupied, err := occupiedTables()
	if err != nil {
		return nil, err
	}

	free := make([]int, 0, models.MaxTableNumber)
	for n := models.MinTableNumber; n <= models.MaxTableNumber; n++ {
		if !occupied[n] {
			free = append(free, n)
		}
	}
	return free, nil
}

// GET /api/orders/free-tables
// An empty result is a reported condition, not an error.
func FreeTablesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		free, err := freeTables()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list free tables")
		}

		resp := FreeTablesResponse{FreeTables: free}
		if len(free) == 0 {
			resp.Message = "no free tables at the moment"
		}
		return c.JSON(resp)
	}
}
