package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Professional / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetProfessional(
	ctx context.Context,
	id uuid.UUID,
) (*models.Professional, error) {

	var p models.Professional
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) ClientUsernameTaken(
	ctx context.Context,
	username string,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (r *BookingGormRepository) ClientEmailTaken(
	ctx context.Context,
	email string,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) HasConfirmedAt(
	ctx context.Context,
	professionalID uuid.UUID,
	date string,
	clock string,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"professional_id = ? AND booking_date = ? AND booking_time = ? AND status = ?",
			professionalID, date, clock, string(domain.StatusConfirmed),
		).
		Count(&count).Error
	return count > 0, err
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	client *models.Client,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if client != nil {
			if err := tx.Create(client).Error; err != nil {
				return err
			}
			b.ClientID = &client.ID
		}
		return tx.Omit("Professional", "Service", "Client").Create(b).Error
	})
}

func (r *BookingGormRepository) GetBookingByToken(
	ctx context.Context,
	token string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Professional").
		Preload("Service").
		Where("confirmation_token = ?", token).
		First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingForProfessional(
	ctx context.Context,
	id uuid.UUID,
	professionalID uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Professional").
		Preload("Service").
		Where("id = ? AND professional_id = ?", id, professionalID).
		First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func applyTransition(tx *gorm.DB, id uuid.UUID, t domain.Transition) error {
	from := make([]string, len(t.From))
	for i, s := range t.From {
		from[i] = string(s)
	}

	q := tx.Model(&models.Booking{}).Where("id = ? AND status IN ?", id, from)
	if t.RequireUnusedToken {
		q = q.Where("token_used = ?", false)
	}

	updates := map[string]any{
		"status":     string(t.To),
		"updated_at": t.At,
	}
	if t.MarkTokenUsed {
		updates["token_used"] = true
	}
	if t.AppendComment != "" {
		updates["comments"] = gorm.Expr("COALESCE(comments, '') || ?", t.AppendComment)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStale
	}
	return nil
}

func (r *BookingGormRepository) ApplyTransition(
	ctx context.Context,
	id uuid.UUID,
	t domain.Transition,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyTransition(tx, id, t)
	})
}

func (r *BookingGormRepository) CompleteBooking(
	ctx context.Context,
	id uuid.UUID,
	t domain.Transition,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyTransition(tx, id, t); err != nil {
			return err
		}
		return tx.Omit("Booking").Create(p).Error
	})
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Professional")

	if f.ProfessionalID != nil {
		q = q.Where("professional_id = ?", *f.ProfessionalID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Date != "" {
		q = q.Where("booking_date = ?", f.Date)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []models.Booking
	if err := q.
		Order("booking_date DESC").
		Order("booking_time DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) GetActiveSchedule(
	ctx context.Context,
	professionalID uuid.UUID,
	dayOfWeek int,
) (*models.AvailabilitySchedule, error) {

	var s models.AvailabilitySchedule
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND day_of_week = ? AND is_active = ?", professionalID, dayOfWeek, true).
		First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *BookingGormRepository) ListConfirmedTimes(
	ctx context.Context,
	professionalID uuid.UUID,
	date string,
) ([]string, error) {

	var times []string
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"professional_id = ? AND booking_date = ? AND status = ?",
			professionalID, date, string(domain.StatusConfirmed),
		).
		Pluck("booking_time", &times).Error
	return times, err
}

func (r *BookingGormRepository) ListBlockedTimes(
	ctx context.Context,
	professionalID uuid.UUID,
	date string,
) ([]models.BlockedTime, error) {

	var blocks []models.BlockedTime
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND blocked_date = ?", professionalID, date).
		Order("start_time ASC").
		Find(&blocks).Error
	return blocks, err
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
