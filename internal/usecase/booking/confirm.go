package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ConfirmBooking struct {
	repo     domain.Repository
	audit    audit.Sink
	notifier Notifier
}

func NewConfirmBooking(
	repo domain.Repository,
	audit audit.Sink,
	notifier Notifier,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// ByToken is the e-mail link flow.
func (uc *ConfirmBooking) ByToken(ctx context.Context, token string) (*models.Booking, error) {
	b, err := uc.repo.GetBookingByToken(ctx, token)
	if err != nil {
		return nil, lookupErr(err, errBookingNotFound)
	}
	return uc.confirm(ctx, b, nil)
}

// ByID is the dashboard flow. The booking must belong to professionalID.
func (uc *ConfirmBooking) ByID(ctx context.Context, professionalID, id uuid.UUID) (*models.Booking, error) {
	b, err := uc.repo.GetBookingForProfessional(ctx, id, professionalID)
	if err != nil {
		return nil, lookupErr(err, errBookingNotFound)
	}
	return uc.confirm(ctx, b, &professionalID)
}

func (uc *ConfirmBooking) confirm(ctx context.Context, b *models.Booking, actor *uuid.UUID) (*models.Booking, error) {
	now := timezone.Now()
	if err := domain.Confirm(b, now); err != nil {
		return nil, err
	}

	err := uc.repo.ApplyTransition(ctx, b.ID, domain.Transition{
		From:               []domain.Status{domain.StatusPending},
		To:                 domain.StatusConfirmed,
		RequireUnusedToken: true,
		MarkTokenUsed:      true,
		At:                 now,
	})
	if err != nil {
		// Another booking already holds this confirmed slot.
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.Conflict("slot_taken", "This time is already booked.")
		}
		return nil, staleErr(err)
	}

	uc.notifier.BookingConfirmed(ctx, b, b.Professional)
	uc.audit.Dispatch(bookingEvent("booking_confirmed", b, map[string]any{"via_token": actor == nil}))

	return b, nil
}
