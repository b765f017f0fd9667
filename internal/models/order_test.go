package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cafe-orders-backend/internal/models"
)

func TestParseOrderStatus(t *testing.T) {
	for token, want := range map[string]models.OrderStatus{
		"pending": models.StatusPending,
		"READY":   models.StatusReady,
		" Paid ":  models.StatusPaid,
	} {
		got, ok := models.ParseOrderStatus(token)
		assert.True(t, ok, token)
		assert.Equal(t, want, got)
	}

	for _, token := range []string{"", "cooking", "paidd", "1"} {
		_, ok := models.ParseOrderStatus(token)
		assert.False(t, ok, token)
	}
}

func TestStatusOccupying(t *testing.T) {
	assert.True(t, models.StatusPending.Occupying())
	assert.True(t, models.StatusReady.Occupying())
	assert.False(t, models.StatusPaid.Occupying())
}

func TestOrderTotalPrice(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{Dish: models.Dish{Price: 5.00}, Quantity: 2},
			{Dish: models.Dish{Price: 7.50}, Quantity: 3},
		},
	}
	assert.Equal(t, 32.50, order.TotalPrice())

	assert.Equal(t, 0.0, (&models.Order{}).TotalPrice())
}
