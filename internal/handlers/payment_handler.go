package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/checkout"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// PaymentHandler reports on the caller's own payments. A nil checkout
// provider disables online checkout with 503.
type PaymentHandler struct {
	db       *gorm.DB
	checkout checkout.Provider
}

func NewPaymentHandler(db *gorm.DB, provider checkout.Provider) *PaymentHandler {
	return &PaymentHandler{db: db, checkout: provider}
}

type paymentTotals struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type MonthlyStat struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type TopService struct {
	Service string          `json:"service"`
	Count   int64           `json:"count"`
	Total   decimal.Decimal `json:"total"`
}

type CheckoutRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

func (h *PaymentHandler) totals(q *gorm.DB) (paymentTotals, error) {
	var t paymentTotals
	err := q.Session(&gorm.Session{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Scan(&t).Error
	return t, err
}

func (h *PaymentHandler) base(c *gin.Context) (*gorm.DB, bool) {
	proID, ok := professionalID(c)
	if !ok {
		return nil, false
	}
	return h.db.WithContext(c.Request.Context()).
		Model(&models.Payment{}).
		Where("payments.professional_id = ?", proID), true
}

// ======================================================
// REPORTS
// ======================================================

func (h *PaymentHandler) Today(c *gin.Context) {
	q, ok := h.base(c)
	if !ok {
		return
	}

	today := timezone.Today()
	q = q.Where("payment_date = ?", today)

	t, err := h.totals(q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var payments []models.Payment
	if err := q.Preload("Booking.Service").
		Order("payment_time DESC").
		Find(&payments).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":     today,
		"total":    t.Total,
		"count":    t.Count,
		"payments": nonNil(payments),
	})
}

func (h *PaymentHandler) Month(c *gin.Context) {
	now := timezone.Now()
	year := queryInt(c, "year", now.Year(), 9999)
	month := queryInt(c, "month", int(now.Month()), 0)
	if month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Month must be between 1 and 12.")
		return
	}

	q, ok := h.base(c)
	if !ok {
		return
	}

	from := fmt.Sprintf("%04d-%02d-01", year, month)
	to := fmt.Sprintf("%04d-%02d-31", year, month)
	q = q.Where("payment_date BETWEEN ? AND ?", from, to)

	t, err := h.totals(q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var payments []models.Payment
	if err := q.Preload("Booking.Service").
		Order("payment_date DESC, payment_time DESC").
		Find(&payments).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"year":     year,
		"month":    month,
		"total":    t.Total,
		"count":    t.Count,
		"payments": nonNil(payments),
	})
}

func (h *PaymentHandler) History(c *gin.Context) {
	q, ok := h.base(c)
	if !ok {
		return
	}

	for key, op := range map[string]string{"start_date": ">=", "end_date": "<="} {
		v := c.Query(key)
		if v == "" {
			continue
		}
		if _, err := timezone.ParseDate(v); err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must be YYYY-MM-DD.")
			return
		}
		q = q.Where("payment_date "+op+" ?", v)
	}

	var payments []models.Payment
	if err := q.Preload("Booking.Service").
		Order("payment_date DESC, payment_time DESC").
		Limit(queryInt(c, "limit", 50, 200)).
		Find(&payments).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, payments)
}

// MonthlyStats always returns twelve buckets, zero filled.
func (h *PaymentHandler) MonthlyStats(c *gin.Context) {
	year := queryInt(c, "year", timezone.Now().Year(), 9999)

	q, ok := h.base(c)
	if !ok {
		return
	}

	var rows []struct {
		Month string
		Total decimal.Decimal
		Count int64
	}
	if err := q.
		Select("substr(payment_date, 6, 2) AS month, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("substr(payment_date, 1, 4) = ?", fmt.Sprintf("%04d", year)).
		Group("substr(payment_date, 6, 2)").
		Scan(&rows).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	stats := make([]MonthlyStat, 12)
	for i := range stats {
		stats[i] = MonthlyStat{Month: i + 1, Total: decimal.Zero}
	}
	for _, r := range rows {
		m, err := strconv.Atoi(r.Month)
		if err != nil || m < 1 || m > 12 {
			continue
		}
		stats[m-1].Total = r.Total
		stats[m-1].Count = r.Count
	}

	httpresp.OK(c, gin.H{
		"year":  year,
		"stats": stats,
	})
}

func (h *PaymentHandler) TopServices(c *gin.Context) {
	q, ok := h.base(c)
	if !ok {
		return
	}

	var rows []TopService
	if err := q.
		Select("COALESCE(services.name, bookings.service_custom, '') AS service, COUNT(*) AS count, COALESCE(SUM(payments.amount), 0) AS total").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Joins("LEFT JOIN services ON services.id = bookings.service_id").
		Group("COALESCE(services.name, bookings.service_custom, '')").
		Order("count DESC, total DESC").
		Limit(queryInt(c, "limit", 5, 50)).
		Scan(&rows).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *PaymentHandler) Checkout(c *gin.Context) {
	if h.checkout == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "checkout_unavailable", "Online checkout is not configured.")
		return
	}

	proID, ok := professionalID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req CheckoutRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	var b models.Booking
	if err := h.db.WithContext(ctx).
		Preload("Service").
		Where("id = ? AND professional_id = ?", id, proID).
		First(&b).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if domain.Status(b.Status) != domain.StatusConfirmed {
		httperr.BadRequest(c, "booking_not_confirmed", "Only confirmed bookings can be paid online.")
		return
	}

	var amount decimal.Decimal
	switch {
	case req.Amount != nil:
		amount = *req.Amount
	case b.Service != nil && b.Service.PriceEstimate.Valid:
		amount = b.Service.PriceEstimate.Decimal
	default:
		httperr.BadRequest(c, "missing_amount", "An amount is required for this booking.")
		return
	}
	if !amount.IsPositive() {
		httperr.BadRequest(c, "invalid_amount", "Amount must be greater than zero.")
		return
	}

	link, err := h.checkout.CreateLink(ctx, &b, amount)
	if err != nil {
		zap.L().Error("checkout link failed", zap.String("booking_id", b.ID.String()), zap.Error(err))
		httperr.Write(c, http.StatusBadGateway, "checkout_failed", "Could not create the payment link.")
		return
	}

	httpresp.Created(c, "Payment link created.", link)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
