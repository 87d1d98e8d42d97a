package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucBooking.CreateBooking
	confirm      *ucBooking.ConfirmBooking
	reject       *ucBooking.RejectBooking
	cancel       *ucBooking.CancelBooking
	complete     *ucBooking.CompleteBooking
	list         *ucBooking.ListBookings
	byToken      *ucBooking.GetByToken
	availability *ucBooking.GetAvailability
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	confirm *ucBooking.ConfirmBooking,
	reject *ucBooking.RejectBooking,
	cancel *ucBooking.CancelBooking,
	complete *ucBooking.CompleteBooking,
	list *ucBooking.ListBookings,
	byToken *ucBooking.GetByToken,
	availability *ucBooking.GetAvailability,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		confirm:      confirm,
		reject:       reject,
		cancel:       cancel,
		complete:     complete,
		list:         list,
		byToken:      byToken,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ProfessionalID string `json:"professional_id"`
	ServiceID      string `json:"service_id"`
	ServiceCustom  string `json:"service_custom"`
	ClientName     string `json:"client_name"`
	ClientEmail    string `json:"client_email"`
	ClientPhone    string `json:"client_phone"`
	BookingDate    string `json:"booking_date"`
	BookingTime    string `json:"booking_time"`
	Comments       string `json:"comments"`

	RegisterClient bool   `json:"register_client"`
	Username       string `json:"username"`
	Password       string `json:"password"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type CompleteBookingRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Notes  string           `json:"notes"`
}

// ======================================================
// PUBLIC
// ======================================================

// Create never answers 5xx: internal failures are reported as 200 with
// success=false so the booking form can show a friendly message.
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		ServiceCustom:  req.ServiceCustom,
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		Date:           req.BookingDate,
		Time:           req.BookingTime,
		Comments:       req.Comments,
		RegisterClient: req.RegisterClient,
		Username:       req.Username,
		Password:       req.Password,
	})
	if err != nil {
		if _, ok := httperr.KindOf(err); ok {
			httperr.Respond(c, err)
			return
		}
		zap.L().Error("create booking failed", zap.Error(err))
		httperr.Write(c, http.StatusOK, "booking_failed", "We could not create your booking. Please try again.")
		return
	}

	msg := "Booking requested. The professional will confirm it by email."
	if res.ClientRegistered {
		msg = "Booking requested and account created. The professional will confirm it by email."
	}

	httpresp.Created(c, msg, gin.H{
		"booking":           res.Booking,
		"client_registered": res.ClientRegistered,
	})
}

func (h *BookingHandler) Availability(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "The date query parameter is required.")
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), id, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *BookingHandler) GetByToken(c *gin.Context) {
	b, err := h.byToken.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.PublicBooking(b))
}

func (h *BookingHandler) ConfirmByToken(c *gin.Context) {
	b, err := h.confirm.ByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Booking confirmed. The client was notified.", dto.PublicBooking(b))
}

func (h *BookingHandler) RejectByToken(c *gin.Context) {
	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.reject.ByToken(c.Request.Context(), c.Param("token"), req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Booking rejected. The client was notified.", dto.PublicBooking(b))
}

// ======================================================
// PROFESSIONAL
// ======================================================

func (h *BookingHandler) MyBookings(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}

	list, err := h.list.Execute(c.Request.Context(), ucBooking.ListBookingsInput{
		ProfessionalID: &proID,
		Status:         c.Query("status"),
		Date:           c.Query("date"),
		Limit:          queryInt(c, "limit", 0, 0),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *BookingHandler) ConfirmByID(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.confirm.ByID(c.Request.Context(), proID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Booking confirmed.", b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.cancel.Execute(c.Request.Context(), proID, id, req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Booking cancelled.", b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	proID, ok := professionalID(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req CompleteBookingRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	b, p, err := h.complete.Execute(c.Request.Context(), ucBooking.CompleteBookingInput{
		ProfessionalID: proID,
		BookingID:      id,
		Amount:         req.Amount,
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Booking completed and payment recorded.", gin.H{
		"booking": b,
		"payment": p,
	})
}

// ======================================================
// CLIENT
// ======================================================

func (h *BookingHandler) ClientBookings(c *gin.Context) {
	cID, ok := clientID(c)
	if !ok {
		return
	}

	list, err := h.list.Execute(c.Request.Context(), ucBooking.ListBookingsInput{
		ClientID: &cID,
		Status:   c.Query("status"),
		Limit:    queryInt(c, "limit", 0, 0),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}
