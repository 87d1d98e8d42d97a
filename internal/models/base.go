package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills an empty uuid primary key before insert.
func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (p *Professional) BeforeCreate(*gorm.DB) error         { newID(&p.ID); return nil }
func (c *Client) BeforeCreate(*gorm.DB) error               { newID(&c.ID); return nil }
func (s *Service) BeforeCreate(*gorm.DB) error              { newID(&s.ID); return nil }
func (a *AvailabilitySchedule) BeforeCreate(*gorm.DB) error { newID(&a.ID); return nil }
func (b *BlockedTime) BeforeCreate(*gorm.DB) error          { newID(&b.ID); return nil }
func (b *Booking) BeforeCreate(*gorm.DB) error              { newID(&b.ID); return nil }
func (p *Payment) BeforeCreate(*gorm.DB) error              { newID(&p.ID); return nil }
func (r *RefreshToken) BeforeCreate(*gorm.DB) error         { newID(&r.ID); return nil }
func (r *ClientRefreshToken) BeforeCreate(*gorm.DB) error   { newID(&r.ID); return nil }
func (a *AuditLog) BeforeCreate(*gorm.DB) error             { newID(&a.ID); return nil }
func (g *GalleryImage) BeforeCreate(*gorm.DB) error         { newID(&g.ID); return nil }
func (p *Promotion) BeforeCreate(*gorm.DB) error            { newID(&p.ID); return nil }
