package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestBuildPreference(t *testing.T) {
	custom := "Beard"
	b := &models.Booking{
		ID:            uuid.New(),
		ServiceCustom: &custom,
		ClientName:    "Ana",
		ClientEmail:   "ana@example.com",
		BookingDate:   "2026-03-02",
		BookingTime:   "10:00",
	}

	req := BuildPreference(b, decimal.RequireFromString("35.456"), "BRL", "https://shop.example")

	require.Len(t, req.Items, 1)
	assert.Equal(t, "Beard - 2026-03-02 10:00", req.Items[0].Title)
	assert.InDelta(t, 35.46, req.Items[0].UnitPrice, 0.0001)
	assert.Equal(t, 1, req.Items[0].Quantity)
	assert.Equal(t, b.ID.String(), req.ExternalReference)
	assert.Equal(t, "https://shop.example/payment/success", req.BackURLs.Success)
	assert.Equal(t, "ana@example.com", req.Payer.Email)
}
