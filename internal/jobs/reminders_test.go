package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type captureReminders struct {
	mu   sync.Mutex
	sent []uuid.UUID
}

func (c *captureReminders) BookingReminder(_ context.Context, b *models.Booking, _ *models.Professional) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, b.ID)
}

func TestRemindersSendOncePerBooking(t *testing.T) {
	db := testutil.NewDB(t)
	pro := testutil.Professional(t, db, "bruno", models.RoleProfessional)

	now := time.Date(2030, 1, 7, 9, 0, 0, 0, timezone.Shop())

	mk := func(clock string, status domain.Status) *models.Booking {
		b := &models.Booking{
			ProfessionalID:    pro.ID,
			ClientName:        "Ana",
			ClientEmail:       "ana@example.com",
			ClientPhone:       "11999990000",
			BookingDate:       "2030-01-07",
			BookingTime:       clock,
			Status:            string(status),
			ConfirmationToken: uuid.NewString(),
			TokenExpiresAt:    now.Add(domain.TokenTTL),
		}
		require.NoError(t, db.Create(b).Error)
		return b
	}

	due := mk("10:00", domain.StatusConfirmed)
	mk("10:00", domain.StatusPending)   // not confirmed
	mk("09:30", domain.StatusConfirmed) // too soon
	mk("10:30", domain.StatusConfirmed) // too far

	n := &captureReminders{}
	r := NewReminders(db, n, zap.NewNop())
	r.now = func() time.Time { return now }

	assert.Equal(t, 1, r.Run(context.Background()))
	assert.Equal(t, []uuid.UUID{due.ID}, n.sent)

	var stored models.Booking
	require.NoError(t, db.First(&stored, "id = ?", due.ID).Error)
	assert.NotNil(t, stored.ReminderSentAt)

	assert.Equal(t, 0, r.Run(context.Background()))
	assert.Len(t, n.sent, 1)
}

func TestRemindersAcrossMidnight(t *testing.T) {
	db := testutil.NewDB(t)
	pro := testutil.Professional(t, db, "bruno", models.RoleProfessional)

	now := time.Date(2030, 1, 7, 23, 0, 0, 0, timezone.Shop())

	b := &models.Booking{
		ProfessionalID:    pro.ID,
		ClientName:        "Ana",
		ClientEmail:       "ana@example.com",
		BookingDate:       "2030-01-08",
		BookingTime:       "00:00",
		Status:            string(domain.StatusConfirmed),
		ConfirmationToken: uuid.NewString(),
		TokenExpiresAt:    now.Add(domain.TokenTTL),
	}
	require.NoError(t, db.Create(b).Error)

	n := &captureReminders{}
	r := NewReminders(db, n, zap.NewNop())
	r.now = func() time.Time { return now }

	assert.Equal(t, 1, r.Run(context.Background()))
}

func TestStartRejectsBadSpec(t *testing.T) {
	r := NewReminders(nil, &captureReminders{}, zap.NewNop())
	_, err := r.Start("not a cron spec")
	assert.Error(t, err)
}
