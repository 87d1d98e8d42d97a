package models

import (
	"time"

	"github.com/google/uuid"
)

type GalleryImage struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProfessionalID *uuid.UUID `gorm:"type:uuid;index" json:"professional_id"`
	ImageURL       string     `gorm:"size:500;not null" json:"image_url"`
	ObjectKey      string     `gorm:"size:255;not null" json:"-"`
	Description    string     `gorm:"size:255" json:"description"`
	UploadedBy     uuid.UUID  `gorm:"type:uuid;not null" json:"uploaded_by"`

	CreatedAt time.Time `json:"created_at"`
}

type Promotion struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:500" json:"image_url"`
	ValidFrom   string `gorm:"size:10" json:"valid_from"`
	ValidUntil  string `gorm:"size:10" json:"valid_until"`
	IsActive    bool   `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
