package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const DefaultRejectReason = "Cancelled by the professional"

// ===============================
// Domain Actions
// ===============================

// CheckToken applies the guards shared by every token driven action:
// expiry first, then single use.
func CheckToken(b *models.Booking, now time.Time) error {
	if now.After(b.TokenExpiresAt) {
		return httperr.Expired("token_expired", "This confirmation link has expired.")
	}
	if b.TokenUsed {
		return httperr.AlreadyProcessed("booking_already_processed", "This booking has already been processed.")
	}
	return nil
}

func Confirm(b *models.Booking, now time.Time) error {
	if err := CheckToken(b, now); err != nil {
		return err
	}
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.TokenUsed = true
	b.UpdatedAt = now
	return nil
}

// Reject is the token driven refusal of a pending request.
func Reject(b *models.Booking, reason string, now time.Time) error {
	if err := CheckToken(b, now); err != nil {
		return err
	}
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.TokenUsed = true
	b.Comments += ReasonSuffix(reason)
	b.UpdatedAt = now
	return nil
}

// Cancel is the professional initiated cancellation of a pending or
// confirmed booking. The token is consumed so e-mailed links stop working.
func Cancel(b *models.Booking, reason string, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.TokenUsed = true
	if reason != "" {
		b.Comments += ReasonSuffix(reason)
	}
	b.UpdatedAt = now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.UpdatedAt = now
	return nil
}

func ReasonSuffix(reason string) string {
	if reason == "" {
		reason = DefaultRejectReason
	}
	return "\nReason: " + reason
}
