package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

func newBooking(proID uuid.UUID, date, clock string, status domain.Status) *models.Booking {
	return &models.Booking{
		ProfessionalID:    proID,
		ClientName:        "Ana",
		ClientEmail:       "ana@example.com",
		ClientPhone:       "11999990000",
		BookingDate:       date,
		BookingTime:       clock,
		Status:            string(status),
		ConfirmationToken: uuid.NewString(),
		TokenExpiresAt:    time.Now().Add(domain.TokenTTL),
	}
}

func setup(t *testing.T) (*gorm.DB, *BookingGormRepository, *models.Professional) {
	db := testutil.NewDB(t)
	pro := testutil.Professional(t, db, "bruno", models.RoleProfessional)
	return db, NewBookingGormRepository(db), pro
}

func TestCreateBookingWithInlineClient(t *testing.T) {
	_, repo, pro := setup(t)
	ctx := context.Background()

	username := "ana"
	hash := "hash"
	client := &models.Client{Name: "Ana", Email: "ana@example.com", Username: &username, PasswordHash: &hash}
	b := newBooking(pro.ID, "2030-01-07", "10:00", domain.StatusPending)

	require.NoError(t, repo.CreateBooking(ctx, b, client))
	require.NotNil(t, b.ClientID)
	assert.Equal(t, client.ID, *b.ClientID)

	taken, err := repo.ClientUsernameTaken(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ClientEmailTaken(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	got, err := repo.GetBookingByToken(ctx, b.ConfirmationToken)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	require.NotNil(t, got.Professional)
	assert.Equal(t, pro.Name, got.Professional.Name)
}

func TestLookupsMapNotFound(t *testing.T) {
	_, repo, pro := setup(t)
	ctx := context.Background()

	_, err := repo.GetBookingByToken(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetBookingForProfessional(ctx, uuid.New(), pro.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetActiveSchedule(ctx, pro.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyTransitionIsConditional(t *testing.T) {
	db, repo, pro := setup(t)
	ctx := context.Background()

	b := newBooking(pro.ID, "2030-01-07", "10:00", domain.StatusPending)
	require.NoError(t, repo.CreateBooking(ctx, b, nil))

	confirm := domain.Transition{
		From:               []domain.Status{domain.StatusPending},
		To:                 domain.StatusConfirmed,
		RequireUnusedToken: true,
		MarkTokenUsed:      true,
		At:                 time.Now(),
	}

	require.NoError(t, repo.ApplyTransition(ctx, b.ID, confirm))
	assert.ErrorIs(t, repo.ApplyTransition(ctx, b.ID, confirm), domain.ErrStale)

	var stored models.Booking
	require.NoError(t, db.First(&stored, "id = ?", b.ID).Error)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
	assert.True(t, stored.TokenUsed)

	taken, err := repo.HasConfirmedAt(ctx, pro.ID, "2030-01-07", "10:00")
	require.NoError(t, err)
	assert.True(t, taken)

	times, err := repo.ListConfirmedTimes(ctx, pro.ID, "2030-01-07")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)
}

func TestApplyTransitionAppendsComment(t *testing.T) {
	db, repo, pro := setup(t)
	ctx := context.Background()

	b := newBooking(pro.ID, "2030-01-07", "11:00", domain.StatusPending)
	b.Comments = "first visit"
	require.NoError(t, repo.CreateBooking(ctx, b, nil))

	require.NoError(t, repo.ApplyTransition(ctx, b.ID, domain.Transition{
		From:          []domain.Status{domain.StatusPending, domain.StatusConfirmed},
		To:            domain.StatusCancelled,
		AppendComment: domain.ReasonSuffix("sick"),
		At:            time.Now(),
	}))

	var stored models.Booking
	require.NoError(t, db.First(&stored, "id = ?", b.ID).Error)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.True(t, strings.HasPrefix(stored.Comments, "first visit"))
	assert.Contains(t, stored.Comments, "Reason: sick")
}

func TestCompleteBookingWritesPaymentAtomically(t *testing.T) {
	db, repo, pro := setup(t)
	ctx := context.Background()

	b := newBooking(pro.ID, "2030-01-07", "12:00", domain.StatusConfirmed)
	require.NoError(t, repo.CreateBooking(ctx, b, nil))

	complete := domain.Transition{
		From: []domain.Status{domain.StatusConfirmed},
		To:   domain.StatusCompleted,
		At:   time.Now(),
	}
	pay := func() *models.Payment {
		return &models.Payment{
			BookingID:      b.ID,
			ProfessionalID: pro.ID,
			Amount:         decimal.RequireFromString("45.00"),
			PaymentDate:    "2030-01-07",
			PaymentTime:    "12:40",
		}
	}

	require.NoError(t, repo.CompleteBooking(ctx, b.ID, complete, pay()))
	assert.ErrorIs(t, repo.CompleteBooking(ctx, b.ID, complete, pay()), domain.ErrStale)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("booking_id = ?", b.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListBookingsFiltersAndOrders(t *testing.T) {
	_, repo, pro := setup(t)
	other := testutil.Professional(t, repo.db, "carla", models.RoleProfessional)
	ctx := context.Background()

	for _, b := range []*models.Booking{
		newBooking(pro.ID, "2030-01-07", "09:00", domain.StatusPending),
		newBooking(pro.ID, "2030-01-08", "09:00", domain.StatusConfirmed),
		newBooking(pro.ID, "2030-01-07", "15:00", domain.StatusPending),
		newBooking(other.ID, "2030-01-09", "09:00", domain.StatusPending),
	} {
		require.NoError(t, repo.CreateBooking(ctx, b, nil))
	}

	list, err := repo.ListBookings(ctx, domain.ListFilter{ProfessionalID: &pro.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2030-01-08", list[0].BookingDate)
	assert.Equal(t, "15:00", list[1].BookingTime)
	assert.Equal(t, "09:00", list[2].BookingTime)

	list, err = repo.ListBookings(ctx, domain.ListFilter{
		ProfessionalID: &pro.ID,
		Status:         domain.StatusPending,
		Date:           "2030-01-07",
		Limit:          1,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "15:00", list[0].BookingTime)
}

func TestListBlockedTimes(t *testing.T) {
	db, repo, pro := setup(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.BlockedTime{
		ProfessionalID: pro.ID, BlockedDate: "2030-01-07", StartTime: "14:00", EndTime: "15:00",
	}).Error)
	require.NoError(t, db.Create(&models.BlockedTime{
		ProfessionalID: pro.ID, BlockedDate: "2030-01-07", StartTime: "09:00", EndTime: "10:00",
	}).Error)

	blocks, err := repo.ListBlockedTimes(ctx, pro.ID, "2030-01-07")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "09:00", blocks[0].StartTime)

	blocks, err = repo.ListBlockedTimes(ctx, pro.ID, "2030-01-08")
	require.NoError(t, err)
	assert.Empty(t, blocks)
}
