package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusCompleted))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))

	assert.False(t, CanTransition(StatusPending, StatusCompleted))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))

	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
}

func TestGuardsFollowTransitions(t *testing.T) {
	for _, st := range []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
		assert.Equal(t, CanTransition(st, StatusConfirmed), CanConfirm(st) == nil, st)
		assert.Equal(t, CanTransition(st, StatusCancelled), CanCancel(st) == nil, st)
		assert.Equal(t, CanTransition(st, StatusCompleted), CanComplete(st) == nil, st)
	}

	assert.Equal(t, httperr.KindValidation, kindOf(t, CanComplete(StatusPending)))
	assert.Equal(t, httperr.KindAlreadyProcessed, kindOf(t, CanComplete(StatusCancelled)))
	assert.Equal(t, httperr.KindAlreadyProcessed, kindOf(t, CanConfirm(StatusConfirmed)))
}

func pendingBooking(now time.Time) *models.Booking {
	return &models.Booking{
		Status:         string(StatusPending),
		TokenExpiresAt: now.Add(TokenTTL),
	}
}

func kindOf(t *testing.T, err error) httperr.Kind {
	t.Helper()
	k, ok := httperr.KindOf(err)
	require.True(t, ok, "expected business error, got %v", err)
	return k
}

func TestConfirm(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	b := pendingBooking(now)
	require.NoError(t, Confirm(b, now))
	assert.Equal(t, string(StatusConfirmed), b.Status)
	assert.True(t, b.TokenUsed)

	err := Confirm(b, now)
	assert.Equal(t, httperr.KindAlreadyProcessed, kindOf(t, err))
}

func TestConfirm_ExpiredBeforeUsed(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	b := pendingBooking(now.Add(-8 * 24 * time.Hour))

	err := Confirm(b, now)
	assert.Equal(t, httperr.KindExpired, kindOf(t, err))

	b.TokenUsed = true
	err = Confirm(b, now)
	assert.Equal(t, httperr.KindExpired, kindOf(t, err))
}

func TestReject_AppendsReason(t *testing.T) {
	now := time.Now()

	b := pendingBooking(now)
	b.Comments = "first visit"
	require.NoError(t, Reject(b, "", now))
	assert.Equal(t, "first visit\nReason: "+DefaultRejectReason, b.Comments)
	assert.Equal(t, string(StatusCancelled), b.Status)

	b2 := pendingBooking(now)
	require.NoError(t, Reject(b2, "sick", now))
	assert.Equal(t, "\nReason: sick", b2.Comments)
}

func TestCancel(t *testing.T) {
	now := time.Now()

	b := pendingBooking(now)
	b.Status = string(StatusConfirmed)
	b.TokenUsed = true
	require.NoError(t, Cancel(b, "", now))
	assert.Equal(t, string(StatusCancelled), b.Status)
	assert.Empty(t, b.Comments)

	err := Cancel(b, "", now)
	assert.Equal(t, httperr.KindAlreadyProcessed, kindOf(t, err))
}

func TestComplete(t *testing.T) {
	now := time.Now()

	b := pendingBooking(now)
	err := Complete(b, now)
	assert.Equal(t, httperr.KindValidation, kindOf(t, err))
	assert.Equal(t, string(StatusPending), b.Status)

	b.Status = string(StatusConfirmed)
	require.NoError(t, Complete(b, now))
	assert.Equal(t, string(StatusCompleted), b.Status)

	err = Complete(b, now)
	assert.Equal(t, httperr.KindAlreadyProcessed, kindOf(t, err))
}

func TestNewConfirmationToken(t *testing.T) {
	a, err := NewConfirmationToken()
	require.NoError(t, err)
	b, err := NewConfirmationToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
