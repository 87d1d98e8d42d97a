package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySchedule is the weekly working window for one weekday
// (0 = Sunday). Times are "HH:MM".
type AvailabilitySchedule struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index:idx_schedule_day" json:"professional_id"`

	DayOfWeek int    `gorm:"not null;index:idx_schedule_day" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	IsActive  bool   `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BlockedTime struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index:idx_block_day" json:"professional_id"`

	BlockedDate string `gorm:"size:10;not null;index:idx_block_day" json:"blocked_date"`
	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	Reason      string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
