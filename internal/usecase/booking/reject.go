package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type RejectBooking struct {
	repo     domain.Repository
	audit    audit.Sink
	notifier Notifier
}

func NewRejectBooking(
	repo domain.Repository,
	audit audit.Sink,
	notifier Notifier,
) *RejectBooking {
	return &RejectBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *RejectBooking) ByToken(ctx context.Context, token, reason string) (*models.Booking, error) {
	b, err := uc.repo.GetBookingByToken(ctx, token)
	if err != nil {
		return nil, lookupErr(err, errBookingNotFound)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = domain.DefaultRejectReason
	}

	now := timezone.Now()
	if err := domain.Reject(b, reason, now); err != nil {
		return nil, err
	}

	err = uc.repo.ApplyTransition(ctx, b.ID, domain.Transition{
		From:               []domain.Status{domain.StatusPending},
		To:                 domain.StatusCancelled,
		RequireUnusedToken: true,
		MarkTokenUsed:      true,
		AppendComment:      domain.ReasonSuffix(reason),
		At:                 now,
	})
	if err != nil {
		return nil, staleErr(err)
	}

	uc.notifier.BookingCancelled(ctx, b, b.Professional, reason)
	uc.audit.Dispatch(bookingEvent("booking_rejected", b, map[string]any{"reason": reason}))

	return b, nil
}
