package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type harness struct {
	repo     *fakeRepo
	notifier *fakeNotifier
	audit    *fakeAudit

	create   *CreateBooking
	confirm  *ConfirmBooking
	reject   *RejectBooking
	cancel   *CancelBooking
	complete *CompleteBooking
	list     *ListBookings
	slots    *GetAvailability
}

func newHarness() *harness {
	h := &harness{repo: newFakeRepo(), notifier: &fakeNotifier{}, audit: &fakeAudit{}}
	h.create = NewCreateBooking(h.repo, h.audit, h.notifier)
	h.confirm = NewConfirmBooking(h.repo, h.audit, h.notifier)
	h.reject = NewRejectBooking(h.repo, h.audit, h.notifier)
	h.cancel = NewCancelBooking(h.repo, h.audit, h.notifier)
	h.complete = NewCompleteBooking(h.repo, h.audit)
	h.list = NewListBookings(h.repo)
	h.slots = NewGetAvailability(h.repo)
	return h
}

// nextWeekday returns the next date (after today) falling on wd.
func nextWeekday(wd time.Weekday) string {
	d := timezone.Now().AddDate(0, 0, 1)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(timezone.DateLayout)
}

func tomorrow() string {
	return timezone.Now().AddDate(0, 0, 1).Format(timezone.DateLayout)
}

func requireKind(t *testing.T, want httperr.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	got, ok := httperr.KindOf(err)
	require.True(t, ok, "expected business error, got %v", err)
	assert.Equal(t, want, got, err.Error())
}

func (h *harness) guestInput(pro *models.Professional, date, clock string) CreateBookingInput {
	return CreateBookingInput{
		ProfessionalID: pro.ID.String(),
		ServiceCustom:  "Haircut",
		ClientName:     "Ana",
		ClientEmail:    "ana@example.com",
		ClientPhone:    "11999990000",
		Date:           date,
		Time:           clock,
	}
}

func (h *harness) token(id uuid.UUID) string {
	return h.repo.stored(id).ConfirmationToken
}

// ======================================================
// Availability
// ======================================================

func TestAvailability_ConfirmedAndBlockedExcluded(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	monday := nextWeekday(time.Monday)

	h.repo.schedules = append(h.repo.schedules, models.AvailabilitySchedule{
		ProfessionalID: pro.ID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true,
	})
	h.repo.blocks = append(h.repo.blocks, models.BlockedTime{
		ProfessionalID: pro.ID, BlockedDate: monday, StartTime: "11:00", EndTime: "11:30",
	})
	h.repo.bookings[uuid.New()] = &models.Booking{
		ProfessionalID: pro.ID, BookingDate: monday, BookingTime: "10:00", Status: string(domain.StatusConfirmed),
	}
	h.repo.bookings[uuid.New()] = &models.Booking{
		ProfessionalID: pro.ID, BookingDate: monday, BookingTime: "09:30", Status: string(domain.StatusPending),
	}

	res, err := h.slots.Execute(context.Background(), pro.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:30"}, res.Slots)
	assert.Equal(t, "Bruno", res.ProfessionalName)
}

func TestAvailability_EmptyWithReason(t *testing.T) {
	h := newHarness()
	off := h.repo.addProfessional(false)
	on := h.repo.addProfessional(true)

	res, err := h.slots.Execute(context.Background(), off.ID, tomorrow())
	require.NoError(t, err)
	assert.Empty(t, res.Slots)
	assert.Equal(t, ReasonUnavailable, res.Message)

	res, err = h.slots.Execute(context.Background(), on.ID, tomorrow())
	require.NoError(t, err)
	assert.Empty(t, res.Slots)
	assert.Equal(t, ReasonNoSchedule, res.Message)

	_, err = h.slots.Execute(context.Background(), uuid.New(), tomorrow())
	requireKind(t, httperr.KindNotFound, err)

	_, err = h.slots.Execute(context.Background(), on.ID, "02/03/2026")
	requireKind(t, httperr.KindValidation, err)
}

// ======================================================
// Create
// ======================================================

func TestCreate_GuestBookingIsPendingWithToken(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)

	res, err := h.create.Execute(context.Background(), h.guestInput(pro, tomorrow(), "10:00"))
	require.NoError(t, err)

	b := h.repo.stored(res.Booking.ID)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Len(t, b.ConfirmationToken, 64)
	assert.False(t, b.TokenUsed)
	assert.Nil(t, b.ClientID)
	assert.WithinDuration(t, timezone.Now().Add(domain.TokenTTL), b.TokenExpiresAt, time.Minute)
	assert.False(t, res.ClientRegistered)

	assert.Len(t, h.notifier.requested, 1)
	assert.Contains(t, h.audit.actions, "booking_created")
}

func TestCreate_Validation(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	ctx := context.Background()

	in := h.guestInput(pro, tomorrow(), "10:00")
	in.ServiceID = uuid.NewString()
	_, err := h.create.Execute(ctx, in)
	requireKind(t, httperr.KindValidation, err)

	in = h.guestInput(pro, tomorrow(), "10:00")
	in.ServiceCustom = ""
	_, err = h.create.Execute(ctx, in)
	requireKind(t, httperr.KindValidation, err)

	in = h.guestInput(pro, timezone.Now().AddDate(0, 0, -1).Format(timezone.DateLayout), "10:00")
	_, err = h.create.Execute(ctx, in)
	requireKind(t, httperr.KindValidation, err)

	in = h.guestInput(pro, tomorrow(), "10:00")
	in.ClientEmail = "not-an-email"
	_, err = h.create.Execute(ctx, in)
	requireKind(t, httperr.KindValidation, err)

	in = h.guestInput(pro, tomorrow(), "10:00")
	in.ClientPhone = "call me"
	_, err = h.create.Execute(ctx, in)
	requireKind(t, httperr.KindValidation, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))

	in = h.guestInput(pro, tomorrow(), "25:00")
	_, err = h.create.Execute(ctx, in)
	requireKind(t, httperr.KindValidation, err)

	in = h.guestInput(pro, tomorrow(), "10:00")
	in.ProfessionalID = uuid.NewString()
	_, err = h.create.Execute(ctx, in)
	requireKind(t, httperr.KindNotFound, err)

	off := h.repo.addProfessional(false)
	_, err = h.create.Execute(ctx, h.guestInput(off, tomorrow(), "10:00"))
	requireKind(t, httperr.KindValidation, err)

	assert.Empty(t, h.repo.bookings)
}

func TestCreate_InactiveCatalogServiceNotFound(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	svc := &models.Service{ID: uuid.New(), Name: "Old", IsActive: false}
	h.repo.services[svc.ID] = svc

	in := h.guestInput(pro, tomorrow(), "10:00")
	in.ServiceCustom = ""
	in.ServiceID = svc.ID.String()

	_, err := h.create.Execute(context.Background(), in)
	requireKind(t, httperr.KindNotFound, err)
}

func TestCreate_PendingDoesNotBlockConfirmedDoes(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	ctx := context.Background()
	date := tomorrow()

	first, err := h.create.Execute(ctx, h.guestInput(pro, date, "10:00"))
	require.NoError(t, err)

	second, err := h.create.Execute(ctx, h.guestInput(pro, date, "10:00"))
	require.NoError(t, err)
	assert.NotEqual(t, first.Booking.ID, second.Booking.ID)

	_, err = h.confirm.ByToken(ctx, h.token(first.Booking.ID))
	require.NoError(t, err)

	_, err = h.create.Execute(ctx, h.guestInput(pro, date, "10:00"))
	requireKind(t, httperr.KindConflict, err)
}

func TestCreate_InlineRegistration(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	ctx := context.Background()

	in := h.guestInput(pro, tomorrow(), "11:00")
	in.RegisterClient = true
	in.Username = "ana"
	in.Password = "secret1"

	res, err := h.create.Execute(ctx, in)
	require.NoError(t, err)
	assert.True(t, res.ClientRegistered)
	require.Len(t, h.repo.clients, 1)
	assert.NotEqual(t, "secret1", *h.repo.clients[0].PasswordHash)
	assert.Equal(t, h.repo.clients[0].ID, *h.repo.stored(res.Booking.ID).ClientID)

	in.ClientEmail = "other@example.com"
	_, err = h.create.Execute(ctx, in)
	requireKind(t, httperr.KindConflict, err)

	in.Username = "ana2"
	in.ClientEmail = "ana@example.com"
	_, err = h.create.Execute(ctx, in)
	requireKind(t, httperr.KindConflict, err)

	in.ClientEmail = "short@example.com"
	in.Password = "123"
	_, err = h.create.Execute(ctx, in)
	requireKind(t, httperr.KindValidation, err)

	assert.Len(t, h.repo.bookings, 1)
	assert.Len(t, h.repo.clients, 1)
}

// ======================================================
// Confirm / Reject
// ======================================================

func TestConfirmByToken_OnceOnly(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	ctx := context.Background()

	res, err := h.create.Execute(ctx, h.guestInput(pro, tomorrow(), "10:00"))
	require.NoError(t, err)
	token := h.token(res.Booking.ID)

	b, err := h.confirm.ByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)

	stored := h.repo.stored(res.Booking.ID)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
	assert.True(t, stored.TokenUsed)
	assert.Len(t, h.notifier.confirmed, 1)

	_, err = h.confirm.ByToken(ctx, token)
	requireKind(t, httperr.KindAlreadyProcessed, err)

	_, err = h.reject.ByToken(ctx, token, "")
	requireKind(t, httperr.KindAlreadyProcessed, err)

	_, err = h.confirm.ByToken(ctx, "missing")
	requireKind(t, httperr.KindNotFound, err)
}

func TestConfirmByToken_Expired(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	id := uuid.New()
	h.repo.bookings[id] = &models.Booking{
		ID:                id,
		ProfessionalID:    pro.ID,
		Status:            string(domain.StatusPending),
		ConfirmationToken: "old",
		TokenExpiresAt:    timezone.Now().Add(-time.Hour),
	}

	_, err := h.confirm.ByToken(context.Background(), "old")
	requireKind(t, httperr.KindExpired, err)
	assert.Equal(t, string(domain.StatusPending), h.repo.stored(id).Status)
}

func TestConfirmByToken_ConcurrentExactlyOneWins(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	ctx := context.Background()

	res, err := h.create.Execute(ctx, h.guestInput(pro, tomorrow(), "15:00"))
	require.NoError(t, err)
	token := h.token(res.Booking.ID)

	const n = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.confirm.ByToken(ctx, token); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestRejectByToken_DefaultReason(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	ctx := context.Background()

	in := h.guestInput(pro, tomorrow(), "10:00")
	in.Comments = "first time"
	res, err := h.create.Execute(ctx, in)
	require.NoError(t, err)

	_, err = h.reject.ByToken(ctx, h.token(res.Booking.ID), "  ")
	require.NoError(t, err)

	stored := h.repo.stored(res.Booking.ID)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.True(t, stored.TokenUsed)
	assert.Equal(t, "first time\nReason: "+domain.DefaultRejectReason, stored.Comments)
	assert.Equal(t, []string{domain.DefaultRejectReason}, h.notifier.cancelled)
}

// ======================================================
// Cancel / Complete
// ======================================================

func TestCancel_OwnershipAndTerminal(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	other := h.repo.addProfessional(true)
	ctx := context.Background()

	res, err := h.create.Execute(ctx, h.guestInput(pro, tomorrow(), "10:00"))
	require.NoError(t, err)
	id := res.Booking.ID

	_, err = h.cancel.Execute(ctx, other.ID, id, "")
	requireKind(t, httperr.KindNotFound, err)

	_, err = h.confirm.ByID(ctx, pro.ID, id)
	require.NoError(t, err)

	_, err = h.cancel.Execute(ctx, pro.ID, id, "closed")
	require.NoError(t, err)
	stored := h.repo.stored(id)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.Contains(t, stored.Comments, "Reason: closed")

	_, err = h.cancel.Execute(ctx, pro.ID, id, "")
	requireKind(t, httperr.KindAlreadyProcessed, err)
}

func TestComplete_RequiresConfirmed(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	ctx := context.Background()
	amount := decimal.RequireFromString("45.50")

	res, err := h.create.Execute(ctx, h.guestInput(pro, tomorrow(), "10:00"))
	require.NoError(t, err)
	id := res.Booking.ID

	in := CompleteBookingInput{ProfessionalID: pro.ID, BookingID: id, Amount: &amount, Notes: "cash"}

	_, _, err = h.complete.Execute(ctx, in)
	requireKind(t, httperr.KindValidation, err)
	assert.Empty(t, h.repo.payments)

	_, err = h.confirm.ByToken(ctx, h.token(id))
	require.NoError(t, err)

	b, p, err := h.complete.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), b.Status)
	assert.True(t, p.Amount.Equal(amount))
	assert.Equal(t, "cash", p.Notes)
	require.Len(t, h.repo.payments, 1)

	_, _, err = h.complete.Execute(ctx, in)
	requireKind(t, httperr.KindAlreadyProcessed, err)
	assert.Len(t, h.repo.payments, 1)
}

func TestComplete_AmountFallsBackToServicePrice(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	svc := &models.Service{
		ID:            uuid.New(),
		Name:          "Haircut",
		IsActive:      true,
		PriceEstimate: decimal.NewNullDecimal(decimal.RequireFromString("30")),
	}
	h.repo.services[svc.ID] = svc
	ctx := context.Background()

	in := h.guestInput(pro, tomorrow(), "10:00")
	in.ServiceCustom = ""
	in.ServiceID = svc.ID.String()
	res, err := h.create.Execute(ctx, in)
	require.NoError(t, err)

	_, err = h.confirm.ByToken(ctx, h.token(res.Booking.ID))
	require.NoError(t, err)

	_, p, err := h.complete.Execute(ctx, CompleteBookingInput{ProfessionalID: pro.ID, BookingID: res.Booking.ID})
	require.NoError(t, err)
	assert.Equal(t, "30.00", p.Amount.StringFixed(2))
}

// ======================================================
// List
// ======================================================

func TestList_NewestFirstWithTokenUsed(t *testing.T) {
	h := newHarness()
	pro := h.repo.addProfessional(true)
	ctx := context.Background()

	d1 := timezone.Now().AddDate(0, 0, 1).Format(timezone.DateLayout)
	d2 := timezone.Now().AddDate(0, 0, 2).Format(timezone.DateLayout)

	a, err := h.create.Execute(ctx, h.guestInput(pro, d1, "09:00"))
	require.NoError(t, err)
	_, err = h.create.Execute(ctx, h.guestInput(pro, d2, "09:00"))
	require.NoError(t, err)
	_, err = h.create.Execute(ctx, h.guestInput(pro, d1, "16:00"))
	require.NoError(t, err)

	_, err = h.confirm.ByToken(ctx, h.token(a.Booking.ID))
	require.NoError(t, err)

	all, err := h.list.Execute(ctx, ListBookingsInput{ProfessionalID: &pro.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, d2, all[0].BookingDate)
	assert.Equal(t, "16:00", all[1].BookingTime)

	confirmed, err := h.list.Execute(ctx, ListBookingsInput{ProfessionalID: &pro.ID, Status: "confirmed"})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.True(t, confirmed[0].TokenUsed)

	_, err = h.list.Execute(ctx, ListBookingsInput{ProfessionalID: &pro.ID, Status: "bogus"})
	requireKind(t, httperr.KindValidation, err)
}
