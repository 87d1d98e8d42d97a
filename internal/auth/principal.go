package auth

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	KindProfessional = "professional"
	KindClient       = "client"
)

// Principal is the authenticated caller. It is exactly one of
// ProfessionalPrincipal or ClientPrincipal.
type Principal interface {
	Subject() uuid.UUID
	Kind() string
}

type ProfessionalPrincipal struct {
	ID   uuid.UUID
	Role string
}

func (p ProfessionalPrincipal) Subject() uuid.UUID { return p.ID }
func (p ProfessionalPrincipal) Kind() string       { return KindProfessional }

func (p ProfessionalPrincipal) IsAdmin() bool {
	return p.Role == models.RoleProfessionalAdmin
}

type ClientPrincipal struct {
	ID uuid.UUID
}

func (c ClientPrincipal) Subject() uuid.UUID { return c.ID }
func (c ClientPrincipal) Kind() string       { return KindClient }

// PrincipalFromClaims resolves the tagged union once, from verified claims.
func PrincipalFromClaims(c *Claims) (Principal, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	switch c.Type {
	case KindProfessional:
		return ProfessionalPrincipal{ID: id, Role: c.Role}, nil
	case KindClient:
		return ClientPrincipal{ID: id}, nil
	default:
		return nil, ErrTokenInvalid
	}
}
