package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CompleteBookingInput struct {
	ProfessionalID uuid.UUID
	BookingID      uuid.UUID
	// Amount falls back to the service price estimate when nil.
	Amount *decimal.Decimal
	Notes  string
}

type CompleteBooking struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewCompleteBooking(
	repo domain.Repository,
	audit audit.Sink,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	in CompleteBookingInput,
) (*models.Booking, *models.Payment, error) {

	b, err := uc.repo.GetBookingForProfessional(ctx, in.BookingID, in.ProfessionalID)
	if err != nil {
		return nil, nil, lookupErr(err, errBookingNotFound)
	}

	amount, err := resolveAmount(b, in.Amount)
	if err != nil {
		return nil, nil, err
	}

	now := timezone.Now()
	if err := domain.Complete(b, now); err != nil {
		return nil, nil, err
	}

	p := &models.Payment{
		BookingID:      b.ID,
		ProfessionalID: b.ProfessionalID,
		Amount:         amount,
		PaymentDate:    now.Format(timezone.DateLayout),
		PaymentTime:    now.Format(timezone.ClockLayout),
		Notes:          strings.TrimSpace(in.Notes),
	}

	err = uc.repo.CompleteBooking(ctx, b.ID, domain.Transition{
		From: []domain.Status{domain.StatusConfirmed},
		To:   domain.StatusCompleted,
		At:   now,
	}, p)
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, nil, httperr.AlreadyProcessed("payment_exists", "A payment was already recorded for this booking.")
		}
		return nil, nil, staleErr(err)
	}

	uc.audit.Dispatch(bookingEvent("booking_completed", b, map[string]any{
		"amount":     amount.StringFixed(2),
		"payment_id": p.ID,
	}))

	return b, p, nil
}

func resolveAmount(b *models.Booking, amount *decimal.Decimal) (decimal.Decimal, error) {
	if amount != nil {
		if amount.IsNegative() {
			return decimal.Zero, httperr.Validation("invalid_amount", "Amount cannot be negative.")
		}
		return amount.Round(2), nil
	}
	if b.Service != nil && b.Service.PriceEstimate.Valid {
		return b.Service.PriceEstimate.Decimal, nil
	}
	return decimal.Zero, httperr.Validation("missing_amount", "Amount is required for this booking.")
}
