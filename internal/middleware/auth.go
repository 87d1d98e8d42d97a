package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const ContextPrincipal = "principal"

// AuthMiddleware verifies the bearer token, reloads the account it names
// and stores the resolved auth.Principal in the context. A professional's
// role always comes from the database, never from the token.
func AuthMiddleware(tokens *auth.Tokens, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Authentication required.")
			return
		}

		claims, err := tokens.ParseAccess(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				httperr.Unauthorized(c, "token_expired", "Session expired.")
				return
			}
			httperr.Write(c, http.StatusForbidden, "invalid_token", "Invalid token.")
			return
		}

		p, err := auth.PrincipalFromClaims(claims)
		if err != nil {
			httperr.Write(c, http.StatusForbidden, "invalid_token_payload", "Invalid token.")
			return
		}

		p, err = reload(c.Request.Context(), db, p)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Unauthorized(c, "account_not_found", "Account no longer exists.")
				return
			}
			httperr.Respond(c, err)
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

func reload(ctx context.Context, db *gorm.DB, p auth.Principal) (auth.Principal, error) {
	switch v := p.(type) {
	case auth.ProfessionalPrincipal:
		var pro models.Professional
		if err := db.WithContext(ctx).Select("id", "role").First(&pro, "id = ?", v.ID).Error; err != nil {
			return nil, err
		}
		v.Role = pro.Role
		return v, nil

	case auth.ClientPrincipal:
		var cl models.Client
		if err := db.WithContext(ctx).Select("id").First(&cl, "id = ?", v.ID).Error; err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, auth.ErrTokenInvalid
}

// RequireProfessional rejects callers that are not professionals.
func RequireProfessional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Professional(c); !ok {
			httperr.ForbiddenResp(c, "professional_only", "Only professionals can access this resource.")
			return
		}
		c.Next()
	}
}

func RequireClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Client(c); !ok {
			httperr.ForbiddenResp(c, "client_only", "Only clients can access this resource.")
			return
		}
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Professional(c)
		if !ok || !p.IsAdmin() {
			httperr.ForbiddenResp(c, "admin_only", "Administrator access required.")
			return
		}
		c.Next()
	}
}

func Principal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func Professional(c *gin.Context) (auth.ProfessionalPrincipal, bool) {
	p, _ := Principal(c)
	pro, ok := p.(auth.ProfessionalPrincipal)
	return pro, ok
}

func Client(c *gin.Context) (auth.ClientPrincipal, bool) {
	p, _ := Principal(c)
	cl, ok := p.(auth.ClientPrincipal)
	return cl, ok
}
