package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
)

// GalleryHandler stores uploads in object storage. A nil store disables
// uploads and deletes with 503.
type GalleryHandler struct {
	db    *gorm.DB
	store storage.ObjectStore
	audit audit.Sink
}

func NewGalleryHandler(db *gorm.DB, store storage.ObjectStore, sink audit.Sink) *GalleryHandler {
	return &GalleryHandler{db: db, store: store, audit: sink}
}

func (h *GalleryHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	if raw := c.Query("professional_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "Invalid professional id.")
			return
		}
		q = q.Where("professional_id = ?", id)
	}

	var images []models.GalleryImage
	if err := q.Order("created_at DESC").
		Limit(queryInt(c, "limit", 50, 200)).
		Find(&images).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, images)
}

func (h *GalleryHandler) Upload(c *gin.Context) {
	if h.store == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_unavailable", "Image storage is not configured.")
		return
	}

	proID, ok := professionalID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}
	if fh.Size > storage.MaxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Images must be at most 5 MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	body, err := storage.ToWebP(f, storage.MaxImageWidth)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Only JPEG, PNG and WebP images are accepted.")
			return
		}
		if errors.Is(err, storage.ErrImageTooLarge) {
			httperr.BadRequest(c, "image_too_large", "Image dimensions are too large.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	ctx := c.Request.Context()
	key := "gallery/" + proID.String() + "/" + uuid.NewString() + ".webp"

	url, err := h.store.Put(ctx, key, body, "image/webp")
	if err != nil {
		zap.L().Error("gallery upload failed", zap.String("key", key), zap.Error(err))
		httperr.Write(c, http.StatusBadGateway, "upload_failed", "Could not store the image.")
		return
	}

	img := models.GalleryImage{
		ProfessionalID: &proID,
		ImageURL:       url,
		ObjectKey:      key,
		Description:    c.PostForm("description"),
		UploadedBy:     proID,
	}
	if err := h.db.WithContext(ctx).Create(&img).Error; err != nil {
		_ = h.store.Delete(ctx, key)
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &proID,
		Action:         "gallery_uploaded",
		Entity:         "gallery_image",
		EntityID:       &img.ID,
		Metadata:       gin.H{"bytes": len(body)},
	})

	httpresp.Created(c, "Image uploaded.", img)
}

// Delete is allowed for the uploader and for admins.
func (h *GalleryHandler) Delete(c *gin.Context) {
	if h.store == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_unavailable", "Image storage is not configured.")
		return
	}

	pro, ok := middleware.Professional(c)
	if !ok {
		httperr.ForbiddenResp(c, "professional_only", "Only professionals can access this resource.")
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var img models.GalleryImage
	if err := h.db.WithContext(ctx).First(&img, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "image_not_found", "Image not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if img.UploadedBy != pro.ID && !pro.IsAdmin() {
		httperr.ForbiddenResp(c, "not_owner", "You can only delete your own images.")
		return
	}

	if err := h.db.WithContext(ctx).Delete(&img).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.store.Delete(ctx, img.ObjectKey); err != nil {
		zap.L().Warn("gallery object delete failed", zap.String("key", img.ObjectKey), zap.Error(err))
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &pro.ID,
		Action:         "gallery_deleted",
		Entity:         "gallery_image",
		EntityID:       &img.ID,
	})

	httpresp.Message(c, http.StatusOK, "Image deleted.", nil)
}
