package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type ListBookingsInput struct {
	ProfessionalID *uuid.UUID
	ClientID       *uuid.UUID
	Status         string
	Date           string
	Limit          int
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(ctx context.Context, in ListBookingsInput) ([]models.Booking, error) {
	f := domain.ListFilter{
		ProfessionalID: in.ProfessionalID,
		ClientID:       in.ClientID,
		Limit:          in.Limit,
	}

	if in.Status != "" {
		st, ok := domain.ParseStatus(strings.ToUpper(in.Status))
		if !ok {
			return nil, httperr.Validation("invalid_status", "Unknown booking status.")
		}
		f.Status = st
	}

	if in.Date != "" {
		if _, err := timezone.ParseDate(in.Date); err != nil {
			return nil, httperr.Validation("invalid_date", "Date must be YYYY-MM-DD.")
		}
		f.Date = in.Date
	}

	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}

	return uc.repo.ListBookings(ctx, f)
}

// GetByToken backs the public confirm/reject landing page.
type GetByToken struct {
	repo domain.Repository
}

func NewGetByToken(repo domain.Repository) *GetByToken {
	return &GetByToken{repo: repo}
}

func (uc *GetByToken) Execute(ctx context.Context, token string) (*models.Booking, error) {
	b, err := uc.repo.GetBookingByToken(ctx, token)
	if err != nil {
		return nil, lookupErr(err, errBookingNotFound)
	}
	if err := domain.CheckToken(b, timezone.Now()); err != nil {
		return nil, err
	}
	return b, nil
}
