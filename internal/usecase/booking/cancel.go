package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CancelBooking struct {
	repo     domain.Repository
	audit    audit.Sink
	notifier Notifier
}

func NewCancelBooking(
	repo domain.Repository,
	audit audit.Sink,
	notifier Notifier,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	professionalID uuid.UUID,
	id uuid.UUID,
	reason string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForProfessional(ctx, id, professionalID)
	if err != nil {
		return nil, lookupErr(err, errBookingNotFound)
	}

	reason = strings.TrimSpace(reason)
	from := domain.Status(b.Status)
	now := timezone.Now()

	if err := domain.Cancel(b, reason, now); err != nil {
		return nil, err
	}

	t := domain.Transition{
		From:          []domain.Status{from},
		To:            domain.StatusCancelled,
		MarkTokenUsed: true,
		At:            now,
	}
	if reason != "" {
		t.AppendComment = domain.ReasonSuffix(reason)
	}

	if err := uc.repo.ApplyTransition(ctx, b.ID, t); err != nil {
		return nil, staleErr(err)
	}

	uc.notifier.BookingCancelled(ctx, b, b.Professional, reason)
	uc.audit.Dispatch(bookingEvent("booking_cancelled", b, map[string]any{
		"from":   string(from),
		"reason": reason,
	}))

	return b, nil
}
