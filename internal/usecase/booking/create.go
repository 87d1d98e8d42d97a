package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ProfessionalID string
	ServiceID      string
	ServiceCustom  string

	ClientName  string
	ClientEmail string
	ClientPhone string

	Date     string
	Time     string
	Comments string

	// Inline registration
	RegisterClient bool
	Username       string
	Password       string
}

type CreateBookingResult struct {
	Booking          *models.Booking
	ClientRegistered bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    audit.Sink
	notifier Notifier
}

func NewCreateBooking(
	repo domain.Repository,
	audit audit.Sink,
	notifier Notifier,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientEmail = strings.ToLower(strings.TrimSpace(in.ClientEmail))
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ServiceID = strings.TrimSpace(in.ServiceID)
	in.ServiceCustom = strings.TrimSpace(in.ServiceCustom)

	if in.ProfessionalID == "" || in.ClientName == "" || in.ClientEmail == "" ||
		in.ClientPhone == "" || in.Date == "" || in.Time == "" {
		return nil, httperr.Validation("missing_fields", "Professional, client name, email, phone, date and time are required.")
	}

	if in.ServiceID != "" && in.ServiceCustom != "" {
		return nil, httperr.Validation("ambiguous_service", "Send either a catalog service or a custom service, not both.")
	}
	if in.ServiceID == "" && in.ServiceCustom == "" {
		return nil, httperr.Validation("missing_service", "A service is required.")
	}

	if !validators.IsEmail(in.ClientEmail) {
		return nil, httperr.Validation("invalid_email", "Invalid email address.")
	}
	if !validators.IsPhone(in.ClientPhone) {
		return nil, httperr.Validation("invalid_phone", "Invalid phone number.")
	}

	professionalID, err := uuid.Parse(in.ProfessionalID)
	if err != nil {
		return nil, httperr.Validation("invalid_professional_id", "Invalid professional id.")
	}

	// --------------------------------------------------
	// 2. Date / time in the shop timezone
	// --------------------------------------------------
	clock, err := domain.NormalizeClock(in.Time)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseDateTime(in.Date, clock)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Date must be YYYY-MM-DD.")
	}

	now := timezone.Now()
	if start.Before(now) {
		return nil, httperr.Validation("booking_in_past", "Bookings cannot be made in the past.")
	}

	// --------------------------------------------------
	// 3. Professional
	// --------------------------------------------------
	pro, err := uc.repo.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, lookupErr(err, httperr.NotFoundErr("professional_not_found", "Professional not found."))
	}
	if !pro.IsAvailable {
		return nil, httperr.Validation("professional_unavailable", "This professional is not taking bookings.")
	}

	// --------------------------------------------------
	// 4. Service
	// --------------------------------------------------
	b := &models.Booking{
		ProfessionalID: pro.ID,
		ClientName:     in.ClientName,
		ClientEmail:    in.ClientEmail,
		ClientPhone:    in.ClientPhone,
		BookingDate:    start.Format(timezone.DateLayout),
		BookingTime:    clock,
		Comments:       strings.TrimSpace(in.Comments),
		Status:         string(domain.StatusPending),
	}

	if in.ServiceID != "" {
		serviceID, err := uuid.Parse(in.ServiceID)
		if err != nil {
			return nil, httperr.Validation("invalid_service_id", "Invalid service id.")
		}
		svc, err := uc.repo.GetService(ctx, serviceID)
		if err != nil {
			return nil, lookupErr(err, httperr.NotFoundErr("service_not_found", "Service not found."))
		}
		if !svc.IsActive {
			return nil, httperr.NotFoundErr("service_not_found", "Service not found.")
		}
		b.ServiceID = &svc.ID
		b.Service = svc
	} else {
		custom := in.ServiceCustom
		b.ServiceCustom = &custom
	}

	// --------------------------------------------------
	// 5. Confirmed slot conflict (pending requests never block)
	// --------------------------------------------------
	taken, err := uc.repo.HasConfirmedAt(ctx, pro.ID, b.BookingDate, b.BookingTime)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.Conflict("slot_taken", "This time is already booked.")
	}

	// --------------------------------------------------
	// 6. Inline registration
	// --------------------------------------------------
	var client *models.Client
	if in.RegisterClient {
		client, err = uc.newClient(ctx, in)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 7. Token
	// --------------------------------------------------
	token, err := domain.NewConfirmationToken()
	if err != nil {
		return nil, err
	}
	b.ConfirmationToken = token
	b.TokenExpiresAt = now.Add(domain.TokenTTL)

	// --------------------------------------------------
	// 8. Persist (client + booking atomically)
	// --------------------------------------------------
	if err := uc.repo.CreateBooking(ctx, b, client); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.Conflict("already_registered", "Username or email already registered.")
		}
		return nil, err
	}
	b.Professional = pro

	// --------------------------------------------------
	// 9. Side effects
	// --------------------------------------------------
	uc.notifier.BookingRequested(ctx, b, pro)

	uc.audit.Dispatch(bookingEvent("booking_created", b, map[string]any{
		"date":              b.BookingDate,
		"time":              b.BookingTime,
		"client_registered": client != nil,
	}))

	return &CreateBookingResult{Booking: b, ClientRegistered: client != nil}, nil
}

func (uc *CreateBooking) newClient(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Client, error) {

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, httperr.Validation("missing_credentials", "Username and password are required to register.")
	}
	if len(in.Password) < auth.MinPasswordLength {
		return nil, httperr.Validation("weak_password", "Password must be at least 6 characters.")
	}

	taken, err := uc.repo.ClientUsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.Conflict("username_taken", "Username already registered.")
	}

	taken, err = uc.repo.ClientEmailTaken(ctx, in.ClientEmail)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.Conflict("email_taken", "Email already registered.")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	return &models.Client{
		Name:         in.ClientName,
		Email:        in.ClientEmail,
		Phone:        in.ClientPhone,
		Username:     &username,
		PasswordHash: &hash,
	}, nil
}
