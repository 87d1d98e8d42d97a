package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is an account created by registration or inline during booking.
// Guest bookings never create a row here.
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	Username     *string `gorm:"size:50;uniqueIndex" json:"username,omitempty"`
	PasswordHash *string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) CanLogin() bool {
	return c.Username != nil && c.PasswordHash != nil && *c.PasswordHash != ""
}
