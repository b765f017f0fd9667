package main

import (
	"os"
	"strings"

	"cafe-orders-backend/internal/config"
	"cafe-orders-backend/internal/database"
	"cafe-orders-backend/internal/menu"
	"cafe-orders-backend/internal/orders"
	"cafe-orders-backend/internal/revenue"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "operation failed",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Menu
	api.Get("/dishes", menu.ListDishesHandler())
	api.Post("/dishes", menu.CreateDishHandler())
	api.Get("/dishes/:id", menu.GetDishHandler())
	api.Put("/dishes/:id", menu.UpdateDishHandler())
	api.Delete("/dishes/:id", menu.DeleteDishHandler())

	// Orders. Fixed paths are registered before /orders/:id.
	api.Get("/orders", orders.ListOrdersHandler())
	api.Post("/orders", orders.CreateOrderHandler())
	api.Get("/orders/search", orders.SearchOrdersHandler())
	api.Get("/orders/free-tables", orders.FreeTablesHandler())
	api.Post("/orders/delete-all", orders.DeleteAllOrdersHandler())
	api.Get("/orders/:id", orders.GetOrderHandler())
	api.Put("/orders/:id", orders.UpdateOrderHandler())
	api.Put("/orders/:id/items", orders.UpdateOrderItemsHandler())
	api.Put("/orders/:id/status", orders.UpdateOrderStatusHandler())
	api.Delete("/orders/:id", orders.DeleteOrderHandler())

	// Reporting
	api.Get("/revenue", revenue.RevenueHandler())

	log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
