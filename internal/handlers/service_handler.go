package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit audit.Sink
}

func NewServiceHandler(db *gorm.DB, sink audit.Sink) *ServiceHandler {
	return &ServiceHandler{db: db, audit: sink}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	PriceEstimate   *decimal.Decimal `json:"price_estimate"`
	DurationMinutes int              `json:"duration_minutes"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	PriceEstimate   *decimal.Decimal `json:"price_estimate,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	if strings.EqualFold(strings.TrimSpace(c.Query("active_only")), "true") {
		q = q.Where("is_active = ?", true)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var s models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&s, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httperr.BadRequest(c, "missing_fields", "Name is required.")
		return
	}
	if req.DurationMinutes < 0 {
		httperr.BadRequest(c, "invalid_duration", "Duration cannot be negative.")
		return
	}

	s := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if req.PriceEstimate != nil {
		if req.PriceEstimate.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
			return
		}
		s.PriceEstimate = decimal.NewNullDecimal(*req.PriceEstimate)
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&s).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &proID,
		Action:         "service_created",
		Entity:         "service",
		EntityID:       &s.ID,
		Metadata:       gin.H{"name": s.Name},
	})

	httpresp.Created(c, "Service created.", s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var s models.Service
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
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
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PriceEstimate != nil {
		if req.PriceEstimate.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
			return
		}
		updates["price_estimate"] = *req.PriceEstimate
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := db.Model(&s).Updates(updates).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
		if err := db.First(&s, "id = ?", id).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &proID,
		Action:         "service_updated",
		Entity:         "service",
		EntityID:       &s.ID,
	})

	httpresp.Message(c, http.StatusOK, "Service updated.", s)
}

// Delete is a soft delete: bookings keep pointing at the row.
func (h *ServiceHandler) Delete(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Service{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &proID,
		Action:         "service_deactivated",
		Entity:         "service",
		EntityID:       &id,
	})

	httpresp.Message(c, http.StatusOK, "Service deactivated.", nil)
}
