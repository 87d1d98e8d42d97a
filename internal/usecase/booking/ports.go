package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Notifier is the outbound e-mail side of the lifecycle. Calls never block
// on delivery and never fail the operation.
type Notifier interface {
	BookingRequested(ctx context.Context, b *models.Booking, pro *models.Professional)
	BookingConfirmed(ctx context.Context, b *models.Booking, pro *models.Professional)
	BookingCancelled(ctx context.Context, b *models.Booking, pro *models.Professional, reason string)
}

var errBookingNotFound = httperr.NotFoundErr("booking_not_found", "Booking not found.")

// lookupErr maps a repository miss to a business error.
func lookupErr(err error, notFound error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound
	}
	return err
}

// staleErr maps a lost race on a guarded update.
func staleErr(err error) error {
	if errors.Is(err, domain.ErrStale) {
		return httperr.AlreadyProcessed("booking_already_processed", "This booking has already been processed.")
	}
	return err
}

func bookingEvent(action string, b *models.Booking, meta any) audit.Event {
	return audit.Event{
		ProfessionalID: &b.ProfessionalID,
		Action:         action,
		Entity:         "booking",
		EntityID:       &b.ID,
		Metadata:       meta,
	}
}
