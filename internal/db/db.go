package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		zap.L().Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		zap.L().Fatal("failed to migrate", zap.Error(err))
	}

	return db
}

// Migrate creates or updates every table. On PostgreSQL it also installs
// the partial indexes that keep concurrent confirmations from double
// booking a slot.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Professional{},
		&models.Client{},
		&models.Service{},
		&models.AvailabilitySchedule{},
		&models.BlockedTime{},
		&models.Booking{},
		&models.Payment{},
		&models.RefreshToken{},
		&models.ClientRefreshToken{},
		&models.AuditLog{},
		&models.GalleryImage{},
		&models.Promotion{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_bookings_confirmed_slot
		 ON bookings (professional_id, booking_date, booking_time)
		 WHERE status = 'CONFIRMED'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_schedule_professional_day
		 ON availability_schedules (professional_id, day_of_week)`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}

	return nil
}
