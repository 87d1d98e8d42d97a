package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const tempPasswordLength = 10

// CredentialsNotifier e-mails login details to a professional.
type CredentialsNotifier interface {
	Credentials(ctx context.Context, pro *models.Professional, password string, reset bool)
}

type AdminHandler struct {
	db       *gorm.DB
	notifier CredentialsNotifier
	audit    audit.Sink
}

func NewAdminHandler(db *gorm.DB, n CredentialsNotifier, sink audit.Sink) *AdminHandler {
	return &AdminHandler{db: db, notifier: n, audit: sink}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Phone       string `json:"phone"`
	Specialty   string `json:"specialty"`
	Description string `json:"description"`
	Role        string `json:"role"`
}

type UpdateProfessionalRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Specialty   *string `json:"specialty"`
	Description *string `json:"description"`
	PhotoURL    *string `json:"photo_url"`
	IsAvailable *bool   `json:"is_available"`
	Role        *string `json:"role"`
}

func validRole(r string) bool {
	return r == models.RoleProfessional || r == models.RoleProfessionalAdmin
}

// --------- Handlers ---------

func (h *AdminHandler) ListProfessionals(c *gin.Context) {
	var pros []models.Professional
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&pros).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, pros)
}

// CreateProfessional generates a temporary password and e-mails it.
func (h *AdminHandler) CreateProfessional(c *gin.Context) {
	adminID, ok := professionalID(c)
	if !ok {
		return
	}

	var req CreateProfessionalRequest
	if !bindJSON(c, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Role == "" {
		req.Role = models.RoleProfessional
	}

	if req.Name == "" || req.Email == "" || req.Username == "" {
		httperr.BadRequest(c, "missing_fields", "Name, email and username are required.")
		return
	}
	if !validators.IsEmail(req.Email) {
		httperr.BadRequest(c, "invalid_email", "Invalid email address.")
		return
	}
	if !validRole(req.Role) {
		httperr.BadRequest(c, "invalid_role", "Role must be PROFESSIONAL or PROFESSIONAL_ADMIN.")
		return
	}

	ctx := c.Request.Context()
	db := h.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Professional{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if count > 0 {
		httperr.Write(c, http.StatusConflict, "professional_exists", "Username or email already in use.")
		return
	}

	password, err := auth.TemporaryPassword(tempPasswordLength)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	pro := models.Professional{
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		Phone:        strings.TrimSpace(req.Phone),
		Specialty:    req.Specialty,
		Description:  req.Description,
		PasswordHash: hash,
		IsAvailable:  true,
		Role:         req.Role,
	}
	if err := db.Create(&pro).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Write(c, http.StatusConflict, "professional_exists", "Username or email already in use.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	h.notifier.Credentials(ctx, &pro, password, false)

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &adminID,
		Action:         "professional_created",
		Entity:         "professional",
		EntityID:       &pro.ID,
		Metadata:       gin.H{"username": pro.Username, "role": pro.Role},
	})

	httpresp.Created(c, "Professional created. Credentials were sent by email.", pro)
}

func (h *AdminHandler) UpdateProfessional(c *gin.Context) {
	adminID, ok := professionalID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateProfessionalRequest
	if !bindJSON(c, &req) {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var pro models.Professional
	if err := db.First(&pro, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "professional_not_found", "Professional not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "missing_fields", "Name cannot be empty.")
			return
		}
		updates["name"] = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validators.IsEmail(email) {
			httperr.BadRequest(c, "invalid_email", "Invalid email address.")
			return
		}
		var count int64
		if err := db.Model(&models.Professional{}).
			Where("email = ? AND id <> ?", email, id).
			Count(&count).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
		if count > 0 {
			httperr.Write(c, http.StatusConflict, "email_taken", "Email already in use.")
			return
		}
		updates["email"] = email
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Specialty != nil {
		updates["specialty"] = *req.Specialty
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = *req.PhotoURL
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.Role != nil {
		if !validRole(*req.Role) {
			httperr.BadRequest(c, "invalid_role", "Role must be PROFESSIONAL or PROFESSIONAL_ADMIN.")
			return
		}
		updates["role"] = *req.Role
	}

	if len(updates) > 0 {
		if err := db.Model(&pro).Updates(updates).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &adminID,
		Action:         "professional_updated",
		Entity:         "professional",
		EntityID:       &pro.ID,
	})

	httpresp.Message(c, http.StatusOK, "Professional updated.", pro)
}

func (h *AdminHandler) DeleteProfessional(c *gin.Context) {
	adminID, ok := professionalID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if id == adminID {
		httperr.ForbiddenResp(c, "cannot_delete_self", "You cannot delete your own account.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Where("id = ?", id).Delete(&models.Professional{})
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "professional_not_found", "Professional not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &adminID,
		Action:         "professional_deleted",
		Entity:         "professional",
		EntityID:       &id,
	})

	httpresp.Message(c, http.StatusOK, "Professional deleted.", nil)
}

// ResetPassword sets a new temporary password, revokes sessions and
// e-mails the new credentials.
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	adminID, ok := professionalID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	db := h.db.WithContext(ctx)

	var pro models.Professional
	if err := db.First(&pro, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "professional_not_found", "Professional not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	password, err := auth.TemporaryPassword(tempPasswordLength)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&pro).Update("password_hash", hash).Error; err != nil {
			return err
		}
		return tx.Model(&models.RefreshToken{}).
			Where("professional_id = ?", pro.ID).
			Update("is_revoked", true).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.notifier.Credentials(ctx, &pro, password, true)

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &adminID,
		Action:         "password_reset",
		Entity:         "professional",
		EntityID:       &pro.ID,
	})

	httpresp.Message(c, http.StatusOK, "Password reset. New credentials were sent by email.", nil)
}
