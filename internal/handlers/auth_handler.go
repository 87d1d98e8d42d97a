package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAuth "github.com/BruksfildServices01/barber-booking/internal/usecase/auth"
)

type AuthHandler struct {
	db       *gorm.DB
	sessions *ucAuth.Sessions
	audit    audit.Sink
}

func NewAuthHandler(db *gorm.DB, sessions *ucAuth.Sessions, sink audit.Sink) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions, audit: sink}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (r LoginRequest) valid(c *gin.Context) bool {
	if r.Username == "" || r.Password == "" {
		httperr.BadRequest(c, "missing_credentials", "Username and password are required.")
		return false
	}
	return true
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) || !req.valid(c) {
		return
	}

	pro, pair, err := h.sessions.LoginProfessional(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &pro.ID,
		Action:         "login",
		Entity:         "professional",
		EntityID:       &pro.ID,
	})

	httpresp.Message(c, http.StatusOK, "Login successful.", gin.H{
		"tokens":       pair,
		"professional": pro,
	})
}

func (h *AuthHandler) UnifiedLogin(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) || !req.valid(c) {
		return
	}

	res, err := h.sessions.LoginAny(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	data := gin.H{
		"tokens":    res.Tokens,
		"user_type": res.UserType,
	}
	if res.Professional != nil {
		data["user"] = res.Professional
	} else {
		data["user"] = res.Client
	}

	httpresp.Message(c, http.StatusOK, "Login successful.", data)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	access, err := h.sessions.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"access_token": access,
		"token_type":   "Bearer",
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.sessions.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Logged out.", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	var pro models.Professional
	if err := h.db.WithContext(c.Request.Context()).First(&pro, "id = ?", proID).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "professional_not_found", "Professional not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, pro)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.NewPassword) < auth.MinPasswordLength {
		httperr.BadRequest(c, "weak_password", "Password must have at least 6 characters.")
		return
	}

	ctx := c.Request.Context()

	var pro models.Professional
	if err := h.db.WithContext(ctx).First(&pro, "id = ?", proID).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "professional_not_found", "Professional not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if !auth.CheckPassword(pro.PasswordHash, req.CurrentPassword) {
		httperr.Unauthorized(c, "invalid_current_password", "Current password is incorrect.")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(ctx).Model(&pro).Update("password_hash", hash).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	// Every open session has to log in again.
	if err := h.sessions.RevokeAllProfessional(ctx, proID); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &proID,
		Action:         "password_changed",
		Entity:         "professional",
		EntityID:       &proID,
	})

	httpresp.Message(c, http.StatusOK, "Password changed. Please log in again.", nil)
}
