package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken stores the SHA-256 of a professional's refresh token.
type RefreshToken struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash      string    `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt      time.Time `gorm:"not null"`
	IsRevoked      bool      `gorm:"not null"`
	CreatedAt      time.Time
}

type ClientRefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	IsRevoked bool      `gorm:"not null"`
	CreatedAt time.Time
}
