package booking

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, true
	}
	return "", false
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ===============================
// Validations
// ===============================

var errProcessed = httperr.AlreadyProcessed("booking_already_processed", "This booking has already been processed.")

func CanConfirm(current Status) error {
	if !CanTransition(current, StatusConfirmed) {
		return errProcessed
	}
	return nil
}

func CanCancel(current Status) error {
	if !CanTransition(current, StatusCancelled) {
		return errProcessed
	}
	return nil
}

func CanComplete(current Status) error {
	switch {
	case CanTransition(current, StatusCompleted):
		return nil
	case current.Terminal():
		return errProcessed
	default:
		return httperr.Validation("booking_not_confirmed", "Only confirmed bookings can be completed.")
	}
}
