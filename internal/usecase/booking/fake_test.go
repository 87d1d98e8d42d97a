package booking

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type fakeRepo struct {
	mu            sync.Mutex
	professionals map[uuid.UUID]*models.Professional
	services      map[uuid.UUID]*models.Service
	clients       []*models.Client
	bookings      map[uuid.UUID]*models.Booking
	schedules     []models.AvailabilitySchedule
	blocks        []models.BlockedTime
	payments      []*models.Payment
	createErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		professionals: map[uuid.UUID]*models.Professional{},
		services:      map[uuid.UUID]*models.Service{},
		bookings:      map[uuid.UUID]*models.Booking{},
	}
}

func (r *fakeRepo) addProfessional(available bool) *models.Professional {
	p := &models.Professional{ID: uuid.New(), Name: "Bruno", Email: "bruno@example.com", IsAvailable: available}
	r.professionals[p.ID] = p
	return p
}

func (r *fakeRepo) GetProfessional(_ context.Context, id uuid.UUID) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.professionals[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) ClientUsernameTaken(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.Username != nil && *c.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ClientEmailTaken(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) HasConfirmedAt(_ context.Context, pid uuid.UUID, date, clock string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ProfessionalID == pid && b.BookingDate == date && b.BookingTime == clock &&
			b.Status == string(domain.StatusConfirmed) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking, c *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if c != nil {
		c.ID = uuid.New()
		r.clients = append(r.clients, c)
		b.ClientID = &c.ID
	}
	b.ID = uuid.New()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) withRelations(b *models.Booking) *models.Booking {
	cp := *b
	if p, ok := r.professionals[b.ProfessionalID]; ok {
		pc := *p
		cp.Professional = &pc
	}
	if b.ServiceID != nil {
		if s, ok := r.services[*b.ServiceID]; ok {
			sc := *s
			cp.Service = &sc
		}
	}
	return &cp
}

func (r *fakeRepo) GetBookingByToken(_ context.Context, token string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ConfirmationToken == token {
			return r.withRelations(b), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetBookingForProfessional(_ context.Context, id, pid uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok && b.ProfessionalID == pid {
		return r.withRelations(b), nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) applyLocked(id uuid.UUID, t domain.Transition) error {
	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrStale
	}
	matches := false
	for _, s := range t.From {
		if b.Status == string(s) {
			matches = true
		}
	}
	if !matches || (t.RequireUnusedToken && b.TokenUsed) {
		return domain.ErrStale
	}
	b.Status = string(t.To)
	if t.MarkTokenUsed {
		b.TokenUsed = true
	}
	b.Comments += t.AppendComment
	b.UpdatedAt = t.At
	return nil
}

func (r *fakeRepo) ApplyTransition(_ context.Context, id uuid.UUID, t domain.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applyLocked(id, t)
}

func (r *fakeRepo) CompleteBooking(_ context.Context, id uuid.UUID, t domain.Transition, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.applyLocked(id, t); err != nil {
		return err
	}
	p.ID = uuid.New()
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakeRepo) ListBookings(_ context.Context, f domain.ListFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if f.ProfessionalID != nil && b.ProfessionalID != *f.ProfessionalID {
			continue
		}
		if f.ClientID != nil && (b.ClientID == nil || *b.ClientID != *f.ClientID) {
			continue
		}
		if f.Status != "" && b.Status != string(f.Status) {
			continue
		}
		if f.Date != "" && b.BookingDate != f.Date {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookingDate != out[j].BookingDate {
			return out[i].BookingDate > out[j].BookingDate
		}
		return out[i].BookingTime > out[j].BookingTime
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeRepo) GetActiveSchedule(_ context.Context, pid uuid.UUID, day int) (*models.AvailabilitySchedule, error) {
	for _, s := range r.schedules {
		if s.ProfessionalID == pid && s.DayOfWeek == day && s.IsActive {
			cp := s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) ListConfirmedTimes(_ context.Context, pid uuid.UUID, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, b := range r.bookings {
		if b.ProfessionalID == pid && b.BookingDate == date && b.Status == string(domain.StatusConfirmed) {
			out = append(out, b.BookingTime)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBlockedTimes(_ context.Context, pid uuid.UUID, date string) ([]models.BlockedTime, error) {
	var out []models.BlockedTime
	for _, b := range r.blocks {
		if b.ProfessionalID == pid && b.BlockedDate == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) stored(id uuid.UUID) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.bookings[id]
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------

type fakeNotifier struct {
	mu        sync.Mutex
	requested []*models.Booking
	confirmed []*models.Booking
	cancelled []string
}

func (n *fakeNotifier) BookingRequested(_ context.Context, b *models.Booking, _ *models.Professional) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requested = append(n.requested, b)
}

func (n *fakeNotifier) BookingConfirmed(_ context.Context, b *models.Booking, _ *models.Professional) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, b)
}

func (n *fakeNotifier) BookingCancelled(_ context.Context, _ *models.Booking, _ *models.Professional, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, reason)
}

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, ev.Action)
}
