package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	ReasonUnavailable = "professional is not available"
	ReasonNoSchedule  = "no schedule configured for this day"
)

type AvailabilityResult struct {
	Date             string   `json:"date"`
	ProfessionalName string   `json:"professional_name"`
	Slots            []string `json:"available_slots"`
	Message          string   `json:"message,omitempty"`
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	professionalID uuid.UUID,
	date string,
) (*AvailabilityResult, error) {

	day, err := timezone.ParseDate(date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Date must be YYYY-MM-DD.")
	}

	pro, err := uc.repo.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, lookupErr(err, httperr.NotFoundErr("professional_not_found", "Professional not found."))
	}

	res := &AvailabilityResult{
		Date:             date,
		ProfessionalName: pro.Name,
		Slots:            []string{},
	}

	if !pro.IsAvailable {
		res.Message = ReasonUnavailable
		return res, nil
	}

	schedule, err := uc.repo.GetActiveSchedule(ctx, pro.ID, int(day.Weekday()))
	if errors.Is(err, domain.ErrNotFound) {
		res.Message = ReasonNoSchedule
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	work, err := domain.ParseWindow(schedule.StartTime, schedule.EndTime)
	if err != nil {
		return nil, err
	}

	confirmed, err := uc.repo.ListConfirmedTimes(ctx, pro.ID, date)
	if err != nil {
		return nil, err
	}
	booked := make([]domain.Clock, 0, len(confirmed))
	for _, s := range confirmed {
		if c, err := domain.ParseClock(s); err == nil {
			booked = append(booked, c)
		}
	}

	rows, err := uc.repo.ListBlockedTimes(ctx, pro.ID, date)
	if err != nil {
		return nil, err
	}
	blocks := make([]domain.Window, 0, len(rows))
	for _, b := range rows {
		if w, err := domain.ParseWindow(b.StartTime, b.EndTime); err == nil {
			blocks = append(blocks, w)
		}
	}

	res.Slots = domain.FormatSlots(domain.ComputeSlots(work, booked, blocks))
	return res, nil
}
