package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleProfessional      = "PROFESSIONAL"
	RoleProfessionalAdmin = "PROFESSIONAL_ADMIN"
)

type Professional struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:20" json:"phone"`
	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Specialty   string `gorm:"size:100" json:"specialty"`
	Description string `gorm:"type:text" json:"description"`
	PhotoURL    string `gorm:"size:255" json:"photo_url"`

	IsAvailable bool   `gorm:"not null" json:"is_available"`
	Role        string `gorm:"size:30;not null" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Professional) IsAdmin() bool {
	return p.Role == RoleProfessionalAdmin
}
