package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProfessionalID uuid.UUID     `gorm:"type:uuid;not null;index:idx_booking_slot" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"professional,omitempty"`

	ServiceID     *uuid.UUID `gorm:"type:uuid" json:"service_id"`
	Service       *Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`
	ServiceCustom *string    `gorm:"size:150" json:"service_custom"`

	ClientID    *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	Client      *Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	ClientName  string     `gorm:"size:100;not null" json:"client_name"`
	ClientEmail string     `gorm:"size:100;not null" json:"client_email"`
	ClientPhone string     `gorm:"size:20;not null" json:"client_phone"`

	BookingDate string `gorm:"size:10;not null;index:idx_booking_slot" json:"booking_date"`
	BookingTime string `gorm:"size:5;not null;index:idx_booking_slot" json:"booking_time"`
	Comments    string `gorm:"type:text" json:"comments"`
	Status      string `gorm:"size:20;not null;index" json:"status"`

	ConfirmationToken string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	TokenExpiresAt    time.Time `json:"token_expires_at"`
	TokenUsed         bool      `gorm:"not null" json:"token_used"`

	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceLabel is the catalog name or the custom text.
func (b *Booking) ServiceLabel() string {
	if b.Service != nil {
		return b.Service.Name
	}
	if b.ServiceCustom != nil {
		return *b.ServiceCustom
	}
	return ""
}
