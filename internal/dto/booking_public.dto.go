package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// PublicProfessionalDTO is what an anonymous token holder may see.
type PublicProfessionalDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PublicBookingDTO backs the confirm/reject landing page. Account data of
// the professional stays out of it.
type PublicBookingDTO struct {
	ID             uuid.UUID              `json:"id"`
	Status         string                 `json:"status"`
	BookingDate    string                 `json:"booking_date"`
	BookingTime    string                 `json:"booking_time"`
	ServiceName    string                 `json:"service_name"`
	ClientName     string                 `json:"client_name"`
	ClientEmail    string                 `json:"client_email"`
	ClientPhone    string                 `json:"client_phone"`
	Comments       string                 `json:"comments"`
	TokenExpiresAt time.Time              `json:"token_expires_at"`
	TokenUsed      bool                   `json:"token_used"`
	Professional   *PublicProfessionalDTO `json:"professional,omitempty"`
}

func PublicBooking(b *models.Booking) PublicBookingDTO {
	out := PublicBookingDTO{
		ID:             b.ID,
		Status:         b.Status,
		BookingDate:    b.BookingDate,
		BookingTime:    b.BookingTime,
		ServiceName:    b.ServiceLabel(),
		ClientName:     b.ClientName,
		ClientEmail:    b.ClientEmail,
		ClientPhone:    b.ClientPhone,
		Comments:       b.Comments,
		TokenExpiresAt: b.TokenExpiresAt,
		TokenUsed:      b.TokenUsed,
	}
	if b.Professional != nil {
		out.Professional = &PublicProfessionalDTO{
			Name:  b.Professional.Name,
			Phone: b.Professional.Phone,
		}
	}
	return out
}
