package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "barber-booking"

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

type Claims struct {
	Type string `json:"typ"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// Tokens signs access and refresh tokens with separate secrets.
type Tokens struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewTokens(accessSecret, refreshSecret string, accessMinutes, refreshDays int) *Tokens {
	return &Tokens{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     time.Duration(accessMinutes) * time.Minute,
		RefreshTTL:    time.Duration(refreshDays) * 24 * time.Hour,
	}
}

func (t *Tokens) Access(kind string, subject uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Type: kind,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.AccessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.AccessSecret)
}

// Refresh returns the signed token and its expiry. Every refresh token has
// a unique jti so two logins in the same second never collide.
func (t *Tokens) Refresh(kind string, subject uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.RefreshTTL)
	claims := RefreshClaims{
		Type: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.RefreshSecret)
	return s, exp, err
}

func (t *Tokens) ParseAccess(token string) (*Claims, error) {
	claims := &Claims{}
	if err := parse(token, claims, t.AccessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *Tokens) ParseRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parse(token, claims, t.RefreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func parse(token string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !parsed.Valid {
		return ErrTokenInvalid
	}
	return nil
}
