package checkout

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Link struct {
	PreferenceID string `json:"preference_id"`
	URL          string `json:"url"`
}

type Provider interface {
	CreateLink(ctx context.Context, b *models.Booking, amount decimal.Decimal) (*Link, error)
}

// MercadoPago creates hosted checkout preferences.
type MercadoPago struct {
	client      preference.Client
	currency    string
	frontendURL string
}

func NewMercadoPago(accessToken, frontendURL string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPago{
		client:      preference.NewClient(cfg),
		currency:    "BRL",
		frontendURL: frontendURL,
	}, nil
}

func (m *MercadoPago) CreateLink(ctx context.Context, b *models.Booking, amount decimal.Decimal) (*Link, error) {
	req := BuildPreference(b, amount, m.currency, m.frontendURL)

	res, err := m.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago preference: %w", err)
	}
	return &Link{PreferenceID: res.ID, URL: res.InitPoint}, nil
}

func BuildPreference(b *models.Booking, amount decimal.Decimal, currency, frontendURL string) preference.Request {
	title := b.ServiceLabel()
	if title == "" {
		title = "Booking"
	}
	price, _ := amount.Round(2).Float64()

	return preference.Request{
		Items: []preference.ItemRequest{{
			ID:         b.ID.String(),
			Title:      fmt.Sprintf("%s - %s %s", title, b.BookingDate, b.BookingTime),
			Quantity:   1,
			UnitPrice:  price,
			CurrencyID: currency,
		}},
		Payer: &preference.PayerRequest{
			Name:  b.ClientName,
			Email: b.ClientEmail,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: frontendURL + "/payment/success",
			Failure: frontendURL + "/payment/failure",
			Pending: frontendURL + "/payment/pending",
		},
		ExternalReference: b.ID.String(),
	}
}
