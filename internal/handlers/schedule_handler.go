package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ScheduleHandler struct {
	db    *gorm.DB
	audit audit.Sink
}

func NewScheduleHandler(db *gorm.DB, sink audit.Sink) *ScheduleHandler {
	return &ScheduleHandler{db: db, audit: sink}
}

type ScheduleDay struct {
	DayOfWeek *int   `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  *bool  `json:"is_active"`
}

type ReplaceScheduleRequest struct {
	Days []ScheduleDay `json:"days"`
}

type BlockTimeRequest struct {
	BlockedDate string `json:"blocked_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Reason      string `json:"reason"`
}

// toModel validates one weekday entry.
func (d ScheduleDay) toModel(proID uuid.UUID) (*models.AvailabilitySchedule, error) {
	if d.DayOfWeek == nil || *d.DayOfWeek < 0 || *d.DayOfWeek > 6 {
		return nil, httperr.Validation("invalid_day_of_week", "day_of_week must be between 0 and 6.")
	}
	w, err := domain.ValidWindow(d.StartTime, d.EndTime)
	if err != nil {
		return nil, err
	}

	active := true
	if d.IsActive != nil {
		active = *d.IsActive
	}

	return &models.AvailabilitySchedule{
		ProfessionalID: proID,
		DayOfWeek:      *d.DayOfWeek,
		StartTime:      w.Start.String(),
		EndTime:        w.End.String(),
		IsActive:       active,
	}, nil
}

// ======================================================
// WEEKLY SCHEDULE
// ======================================================

func (h *ScheduleHandler) Get(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	var rows []models.AvailabilitySchedule
	if err := h.db.WithContext(c.Request.Context()).
		Where("professional_id = ?", proID).
		Order("day_of_week ASC").
		Find(&rows).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	var req ScheduleDay
	if !bindJSON(c, &req) {
		return
	}

	row, err := req.toModel(proID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.AvailabilitySchedule{}).
		Where("professional_id = ? AND day_of_week = ?", proID, row.DayOfWeek).
		Count(&count).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if count > 0 {
		httperr.Write(c, http.StatusConflict, "schedule_exists", "A schedule for this day already exists.")
		return
	}

	if err := db.Create(row).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Write(c, http.StatusConflict, "schedule_exists", "A schedule for this day already exists.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &proID,
		Action:         "schedule_created",
		Entity:         "availability_schedule",
		EntityID:       &row.ID,
		Metadata:       gin.H{"day_of_week": row.DayOfWeek},
	})

	httpresp.Created(c, "Schedule created.", row)
}

// Replace swaps the whole week in one transaction.
func (h *ScheduleHandler) Replace(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	var req ReplaceScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	seen := map[int]bool{}
	rows := make([]models.AvailabilitySchedule, 0, len(req.Days))
	for _, d := range req.Days {
		row, err := d.toModel(proID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if seen[row.DayOfWeek] {
			httperr.BadRequest(c, "duplicate_day", "Each day of the week may appear only once.")
			return
		}
		seen[row.DayOfWeek] = true
		rows = append(rows, *row)
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("professional_id = ?", proID).Delete(&models.AvailabilitySchedule{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &proID,
		Action:         "schedule_replaced",
		Entity:         "availability_schedule",
		Metadata:       gin.H{"days": len(rows)},
	})

	httpresp.Message(c, http.StatusOK, "Schedule updated.", rows)
}

// ======================================================
// BLOCKED TIME
// ======================================================

func (h *ScheduleHandler) ListBlocks(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Where("professional_id = ?", proID)
	if date := c.Query("date"); date != "" {
		if _, err := timezone.ParseDate(date); err != nil {
			httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
			return
		}
		q = q.Where("blocked_date = ?", date)
	}

	var rows []models.BlockedTime
	if err := q.Order("blocked_date ASC, start_time ASC").Find(&rows).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *ScheduleHandler) AddBlock(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	var req BlockTimeRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := timezone.ParseDate(req.BlockedDate); err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}
	w, err := domain.ValidWindow(req.StartTime, req.EndTime)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	row := models.BlockedTime{
		ProfessionalID: proID,
		BlockedDate:    req.BlockedDate,
		StartTime:      w.Start.String(),
		EndTime:        w.End.String(),
		Reason:         req.Reason,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&row).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: &proID,
		Action:         "time_blocked",
		Entity:         "blocked_time",
		EntityID:       &row.ID,
		Metadata:       gin.H{"date": row.BlockedDate, "start": row.StartTime, "end": row.EndTime},
	})

	httpresp.Created(c, "Time blocked.", row)
}

func (h *ScheduleHandler) DeleteBlock(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND professional_id = ?", id, proID).
		Delete(&models.BlockedTime{})
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "blocked_time_not_found", "Blocked time not found.")
		return
	}

	httpresp.Message(c, http.StatusOK, "Blocked time removed.", nil)
}
