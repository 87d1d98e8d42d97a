package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name            string              `gorm:"size:100;not null" json:"name"`
	Description     string              `gorm:"type:text" json:"description"`
	PriceEstimate   decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"price_estimate"`
	DurationMinutes int                 `json:"duration_minutes"`
	IsActive        bool                `gorm:"not null;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
