package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment records the amount collected when a booking is completed.
type Payment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	Booking   *Booking  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"booking,omitempty"`

	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index" json:"professional_id"`

	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentDate string          `gorm:"size:10;not null;index" json:"payment_date"`
	PaymentTime string          `gorm:"size:5;not null" json:"payment_time"`
	Notes       string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
