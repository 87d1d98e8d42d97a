package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrStale means a guarded update matched no row because another
	// request changed the booking first.
	ErrStale = errors.New("booking changed concurrently")
)

// Transition is a guarded status change applied with a single conditional
// UPDATE.
type Transition struct {
	From               []Status
	To                 Status
	RequireUnusedToken bool
	MarkTokenUsed      bool
	AppendComment      string
	At                 time.Time
}

type ListFilter struct {
	ProfessionalID *uuid.UUID
	ClientID       *uuid.UUID
	Status         Status
	Date           string
	Limit          int
}

type Repository interface {
	// -------- Professional / catalog --------
	GetProfessional(ctx context.Context, id uuid.UUID) (*models.Professional, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)

	// -------- Client --------
	ClientUsernameTaken(ctx context.Context, username string) (bool, error)
	ClientEmailTaken(ctx context.Context, email string) (bool, error)

	// -------- Booking (create / conflict) --------
	HasConfirmedAt(ctx context.Context, professionalID uuid.UUID, date, clock string) (bool, error)

	// CreateBooking inserts client (when not nil) and booking in one
	// transaction.
	CreateBooking(ctx context.Context, b *models.Booking, client *models.Client) error

	// -------- Booking (state change) --------
	GetBookingByToken(ctx context.Context, token string) (*models.Booking, error)
	GetBookingForProfessional(ctx context.Context, id, professionalID uuid.UUID) (*models.Booking, error)

	// ApplyTransition returns ErrStale when no row matched the guard.
	ApplyTransition(ctx context.Context, id uuid.UUID, t Transition) error

	// CompleteBooking applies t and inserts p in one transaction.
	CompleteBooking(ctx context.Context, id uuid.UUID, t Transition, p *models.Payment) error

	ListBookings(ctx context.Context, f ListFilter) ([]models.Booking, error)

	// -------- Availability --------
	GetActiveSchedule(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) (*models.AvailabilitySchedule, error)
	ListConfirmedTimes(ctx context.Context, professionalID uuid.UUID, date string) ([]string, error)
	ListBlockedTimes(ctx context.Context, professionalID uuid.UUID, date string) ([]models.BlockedTime, error)
}
