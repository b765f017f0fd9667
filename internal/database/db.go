package database

import (
	"cafe-orders-backend/internal/config"
	"cafe-orders-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to the database")
	}

	err = DB.AutoMigrate(
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	log.Info().Msg("database connected, migration complete")
}

// SetTestDB swaps the active connection. Handler tests use it to point the
// package at an in-memory database.
func SetTestDB(db *gorm.DB) {
	DB = db
}
