package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

type AvailabilityToggleRequest struct {
	IsAvailable *bool `json:"is_available"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Specialty   *string `json:"specialty"`
	Description *string `json:"description"`
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	var pros []models.Professional
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&pros).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, pros)
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
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

	var gallery []models.GalleryImage
	if err := db.Where("professional_id = ?", id).
		Order("created_at DESC").
		Find(&gallery).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if gallery == nil {
		gallery = []models.GalleryImage{}
	}

	httpresp.OK(c, gin.H{
		"professional": pro,
		"gallery":      gallery,
	})
}

func (h *ProfessionalHandler) SetAvailability(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	var req AvailabilityToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.IsAvailable == nil {
		httperr.BadRequest(c, "missing_fields", "is_available is required.")
		return
	}

	h.update(c, proID.String(), map[string]any{"is_available": *req.IsAvailable}, "Availability updated.")
}

func (h *ProfessionalHandler) UpdateProfile(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
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
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Specialty != nil {
		updates["specialty"] = strings.TrimSpace(*req.Specialty)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	h.update(c, proID.String(), updates, "Profile updated.")
}

func (h *ProfessionalHandler) update(c *gin.Context, id string, updates map[string]any, msg string) {
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

	if len(updates) > 0 {
		if err := db.Model(&pro).Updates(updates).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	httpresp.Message(c, http.StatusOK, msg, pro)
}
