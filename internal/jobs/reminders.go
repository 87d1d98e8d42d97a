package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	reminderLead   = 55 * time.Minute
	reminderWindow = 10 * time.Minute
)

type ReminderNotifier interface {
	BookingReminder(ctx context.Context, b *models.Booking, pro *models.Professional)
}

// Reminders e-mails clients about confirmed bookings starting in about an
// hour. Each booking is reminded at most once.
type Reminders struct {
	db       *gorm.DB
	notifier ReminderNotifier
	log      *zap.Logger
	now      func() time.Time
}

func NewReminders(db *gorm.DB, n ReminderNotifier, l *zap.Logger) *Reminders {
	return &Reminders{db: db, notifier: n, log: l, now: timezone.Now}
}

// Start schedules the job and returns the running cron so the caller can
// stop it on shutdown.
func (r *Reminders) Start(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(timezone.Shop()))
	if _, err := c.AddFunc(spec, func() { r.Run(context.Background()) }); err != nil {
		return nil, err
	}
	c.Start()
	r.log.Info("reminder job scheduled", zap.String("spec", spec))
	return c, nil
}

// Run sends reminders for bookings starting in [now+55m, now+65m).
func (r *Reminders) Run(ctx context.Context) int {
	now := r.now()
	from := now.Add(reminderLead)
	to := from.Add(reminderWindow)

	q := r.db.WithContext(ctx).
		Preload("Professional").
		Preload("Service").
		Where("status = ? AND reminder_sent_at IS NULL", string(domain.StatusConfirmed))

	if from.Format(timezone.DateLayout) == to.Format(timezone.DateLayout) {
		q = q.Where("booking_date = ? AND booking_time >= ? AND booking_time < ?",
			from.Format(timezone.DateLayout), from.Format(timezone.ClockLayout), to.Format(timezone.ClockLayout))
	} else {
		q = q.Where("((booking_date = ? AND booking_time >= ?) OR (booking_date = ? AND booking_time < ?))",
			from.Format(timezone.DateLayout), from.Format(timezone.ClockLayout),
			to.Format(timezone.DateLayout), to.Format(timezone.ClockLayout))
	}

	var due []models.Booking
	if err := q.Find(&due).Error; err != nil {
		r.log.Warn("reminder query failed", zap.Error(err))
		return 0
	}

	sent := 0
	for i := range due {
		b := &due[i]

		res := r.db.WithContext(ctx).
			Model(&models.Booking{}).
			Where("id = ? AND reminder_sent_at IS NULL", b.ID).
			Update("reminder_sent_at", now)
		if res.Error != nil || res.RowsAffected == 0 {
			continue
		}

		r.notifier.BookingReminder(ctx, b, b.Professional)
		sent++
	}

	if sent > 0 {
		r.log.Info("booking reminders queued", zap.Int("count", sent))
	}
	return sent
}
