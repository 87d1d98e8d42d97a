// Package testutil builds an in-memory database with the production schema
// and seeds the rows most tests need.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const Password = "secret123"

// NewDB opens a private SQLite database and runs the migrations. A single
// connection keeps every query on the same in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Professional creates an available professional whose password is
// Password. Username and email are derived from username.
func Professional(t *testing.T, db *gorm.DB, username, role string) *models.Professional {
	t.Helper()

	hash, err := auth.HashPassword(Password)
	require.NoError(t, err)

	p := &models.Professional{
		Name:         "Pro " + username,
		Email:        username + "@example.com",
		Phone:        "+55 11 99999-0000",
		Username:     username,
		PasswordHash: hash,
		IsAvailable:  true,
		Role:         role,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func Service(t *testing.T, db *gorm.DB, name string, price string) *models.Service {
	t.Helper()

	s := &models.Service{Name: name, DurationMinutes: 30, IsActive: true}
	if price != "" {
		s.PriceEstimate = decimal.NewNullDecimal(decimal.RequireFromString(price))
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func Schedule(t *testing.T, db *gorm.DB, p *models.Professional, day int, start, end string) {
	t.Helper()

	require.NoError(t, db.Create(&models.AvailabilitySchedule{
		ProfessionalID: p.ID,
		DayOfWeek:      day,
		StartTime:      start,
		EndTime:        end,
		IsActive:       true,
	}).Error)
}
