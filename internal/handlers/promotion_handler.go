package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type PromotionHandler struct {
	db *gorm.DB
}

func NewPromotionHandler(db *gorm.DB) *PromotionHandler {
	return &PromotionHandler{db: db}
}

type PromotionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	ValidFrom   *string `json:"valid_from"`
	ValidUntil  *string `json:"valid_until"`
	IsActive    *bool   `json:"is_active"`
}

// apply copies set fields onto p, validating dates.
func (r PromotionRequest) apply(p *models.Promotion) error {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return httperr.Validation("missing_fields", "Title is required.")
		}
		p.Title = t
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
	for _, d := range []*string{r.ValidFrom, r.ValidUntil} {
		if d != nil && *d != "" {
			if _, err := timezone.ParseDate(*d); err != nil {
				return httperr.Validation("invalid_date", "Dates must be YYYY-MM-DD.")
			}
		}
	}
	if r.ValidFrom != nil {
		p.ValidFrom = *r.ValidFrom
	}
	if r.ValidUntil != nil {
		p.ValidUntil = *r.ValidUntil
	}
	if p.ValidFrom != "" && p.ValidUntil != "" && p.ValidUntil < p.ValidFrom {
		return httperr.Validation("invalid_date_range", "valid_until must not be before valid_from.")
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	return nil
}

// List returns active promotions that have not expired yet.
func (h *PromotionHandler) List(c *gin.Context) {
	today := timezone.Today()

	var promos []models.Promotion
	if err := h.db.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Where("(valid_until = '' OR valid_until IS NULL OR valid_until >= ?)", today).
		Order("created_at DESC").
		Find(&promos).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, promos)
}

func (h *PromotionHandler) Create(c *gin.Context) {
	var req PromotionRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Title == nil {
		httperr.BadRequest(c, "missing_fields", "Title is required.")
		return
	}

	p := models.Promotion{IsActive: true}
	if err := req.apply(&p); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Promotion created.", p)
}

func (h *PromotionHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req PromotionRequest
	if !bindJSON(c, &req) {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var p models.Promotion
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "promotion_not_found", "Promotion not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if err := req.apply(&p); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := db.Save(&p).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Promotion updated.", p)
}

func (h *PromotionHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Where("id = ?", id).Delete(&models.Promotion{})
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "promotion_not_found", "Promotion not found.")
		return
	}

	httpresp.Message(c, http.StatusOK, "Promotion deleted.", nil)
}
