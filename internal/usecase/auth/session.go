package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var (
	errInvalidCredentials = httperr.New(httperr.KindUnauthorized, "invalid_credentials", "Invalid username or password.")
	errInvalidRefresh     = httperr.New(httperr.KindUnauthorized, "invalid_refresh_token", "Invalid refresh token.")
	errRefreshRevoked     = httperr.New(httperr.KindUnauthorized, "refresh_token_revoked", "Refresh token has been revoked.")
	errRefreshExpired     = httperr.New(httperr.KindUnauthorized, "refresh_token_expired", "Refresh token has expired.")
)

// Pair is what a successful login returns to the caller.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Sessions issues, refreshes and revokes tokens for both account kinds.
type Sessions struct {
	db     *gorm.DB
	tokens *auth.Tokens
	now    func() time.Time
}

func NewSessions(db *gorm.DB, tokens *auth.Tokens) *Sessions {
	return &Sessions{db: db, tokens: tokens, now: time.Now}
}

// ======================================================
// LOGIN
// ======================================================

func (s *Sessions) LoginProfessional(ctx context.Context, login, password string) (*models.Professional, *Pair, error) {
	pro, err := s.findProfessional(ctx, login)
	if err != nil {
		return nil, nil, err
	}
	if pro == nil || !auth.CheckPassword(pro.PasswordHash, password) {
		return nil, nil, errInvalidCredentials
	}

	pair, err := s.Issue(ctx, auth.KindProfessional, pro.ID, pro.Role)
	if err != nil {
		return nil, nil, err
	}
	return pro, pair, nil
}

func (s *Sessions) LoginClient(ctx context.Context, login, password string) (*models.Client, *Pair, error) {
	cl, err := s.findClient(ctx, login)
	if err != nil {
		return nil, nil, err
	}
	if cl == nil || !cl.CanLogin() || !auth.CheckPassword(*cl.PasswordHash, password) {
		return nil, nil, errInvalidCredentials
	}

	pair, err := s.Issue(ctx, auth.KindClient, cl.ID, "")
	if err != nil {
		return nil, nil, err
	}
	return cl, pair, nil
}

// UnifiedResult carries exactly one of Professional or Client.
type UnifiedResult struct {
	UserType     string
	Professional *models.Professional
	Client       *models.Client
	Tokens       *Pair
}

// LoginAny tries the professional table first, then clients.
func (s *Sessions) LoginAny(ctx context.Context, login, password string) (*UnifiedResult, error) {
	pro, err := s.findProfessional(ctx, login)
	if err != nil {
		return nil, err
	}
	if pro != nil && auth.CheckPassword(pro.PasswordHash, password) {
		pair, err := s.Issue(ctx, auth.KindProfessional, pro.ID, pro.Role)
		if err != nil {
			return nil, err
		}
		return &UnifiedResult{UserType: auth.KindProfessional, Professional: pro, Tokens: pair}, nil
	}

	cl, pair, err := s.LoginClient(ctx, login, password)
	if err != nil {
		return nil, err
	}
	return &UnifiedResult{UserType: auth.KindClient, Client: cl, Tokens: pair}, nil
}

func (s *Sessions) findProfessional(ctx context.Context, login string) (*models.Professional, error) {
	login = strings.TrimSpace(login)
	var pro models.Professional
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&pro).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pro, nil
}

func (s *Sessions) findClient(ctx context.Context, login string) (*models.Client, error) {
	login = strings.TrimSpace(login)
	var cl models.Client
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&cl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

// ======================================================
// TOKENS
// ======================================================

// Issue signs a new pair and stores the refresh token hash. Expired or
// revoked rows of the same account are removed first.
func (s *Sessions) Issue(ctx context.Context, kind string, id uuid.UUID, role string) (*Pair, error) {
	access, err := s.tokens.Access(kind, id, role)
	if err != nil {
		return nil, err
	}
	refresh, exp, err := s.tokens.Refresh(kind, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	hash := auth.HashToken(refresh)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case auth.KindProfessional:
			if err := tx.Where("professional_id = ? AND (is_revoked = ? OR expires_at < ?)", id, true, now).
				Delete(&models.RefreshToken{}).Error; err != nil {
				return err
			}
			return tx.Create(&models.RefreshToken{ProfessionalID: id, TokenHash: hash, ExpiresAt: exp}).Error
		default:
			if err := tx.Where("client_id = ? AND (is_revoked = ? OR expires_at < ?)", id, true, now).
				Delete(&models.ClientRefreshToken{}).Error; err != nil {
				return err
			}
			return tx.Create(&models.ClientRefreshToken{ClientID: id, TokenHash: hash, ExpiresAt: exp}).Error
		}
	})
	if err != nil {
		return nil, err
	}

	return &Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokens.AccessTTL.Seconds()),
	}, nil
}

// Refresh returns a new access token for a stored, live refresh token.
func (s *Sessions) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.tokens.ParseRefresh(refresh)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return "", errRefreshExpired
		}
		return "", errInvalidRefresh
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", errInvalidRefresh
	}

	hash := auth.HashToken(refresh)
	db := s.db.WithContext(ctx)

	var (
		revoked bool
		expires time.Time
		role    string
	)

	switch claims.Type {
	case auth.KindProfessional:
		var row models.RefreshToken
		if err := db.Where("token_hash = ? AND professional_id = ?", hash, id).First(&row).Error; err != nil {
			return "", notFoundAs(err, errInvalidRefresh)
		}
		var pro models.Professional
		if err := db.Select("id", "role").First(&pro, "id = ?", id).Error; err != nil {
			return "", notFoundAs(err, errInvalidRefresh)
		}
		revoked, expires, role = row.IsRevoked, row.ExpiresAt, pro.Role
	case auth.KindClient:
		var row models.ClientRefreshToken
		if err := db.Where("token_hash = ? AND client_id = ?", hash, id).First(&row).Error; err != nil {
			return "", notFoundAs(err, errInvalidRefresh)
		}
		revoked, expires = row.IsRevoked, row.ExpiresAt
	default:
		return "", errInvalidRefresh
	}

	if revoked {
		return "", errRefreshRevoked
	}
	if s.now().After(expires) {
		return "", errRefreshExpired
	}

	return s.tokens.Access(claims.Type, id, role)
}

// Logout revokes the given refresh token wherever it is stored. Unknown
// tokens are ignored.
func (s *Sessions) Logout(ctx context.Context, refresh string) error {
	hash := auth.HashToken(refresh)
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("is_revoked", true).Error; err != nil {
		return err
	}
	return db.Model(&models.ClientRefreshToken{}).
		Where("token_hash = ?", hash).
		Update("is_revoked", true).Error
}

func (s *Sessions) RevokeAllProfessional(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("professional_id = ? AND is_revoked = ?", id, false).
		Update("is_revoked", true).Error
}

func (s *Sessions) RevokeAllClient(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.ClientRefreshToken{}).
		Where("client_id = ? AND is_revoked = ?", id, false).
		Update("is_revoked", true).Error
}

func notFoundAs(err, as error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return as
	}
	return err
}
