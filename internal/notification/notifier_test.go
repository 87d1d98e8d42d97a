package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type captureQueue struct {
	mu   sync.Mutex
	msgs []Message
}

func (q *captureQueue) Enqueue(_ context.Context, m Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, m)
}

func TestBookingRequestedCarriesLinks(t *testing.T) {
	q := &captureQueue{}
	n := NewNotifier(q, zap.NewNop(), "https://shop.example/", "Test Shop")

	custom := "Beard trim"
	b := &models.Booking{
		ClientName:        "Ana",
		ClientEmail:       "ana@example.com",
		ClientPhone:       "+55 (11) 99999-0000",
		ServiceCustom:     &custom,
		BookingDate:       "2026-03-02",
		BookingTime:       "10:00",
		ConfirmationToken: "abc123",
		TokenExpiresAt:    time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
	}
	pro := &models.Professional{Name: "Bruno", Email: "bruno@example.com"}

	n.BookingRequested(context.Background(), b, pro)

	require.Len(t, q.msgs, 1)
	m := q.msgs[0]
	assert.Equal(t, KindBookingRequest, m.Kind)
	assert.Equal(t, "bruno@example.com", m.To)
	assert.Contains(t, m.HTML, "https://shop.example/confirm/abc123")
	assert.Contains(t, m.HTML, "https://shop.example/reject/abc123")
	assert.Contains(t, m.HTML, "https://wa.me/5511999990000")
	assert.Contains(t, m.HTML, "Beard trim")
}

func TestHTMLIsEscaped(t *testing.T) {
	q := &captureQueue{}
	n := NewNotifier(q, zap.NewNop(), "http://x", "Shop")

	b := &models.Booking{ClientName: "<script>", ClientEmail: "c@example.com"}
	n.BookingConfirmed(context.Background(), b, &models.Professional{Name: "P"})

	require.Len(t, q.msgs, 1)
	assert.NotContains(t, q.msgs[0].HTML, "<script>")
}

func TestSkipsEmptyRecipient(t *testing.T) {
	q := &captureQueue{}
	n := NewNotifier(q, zap.NewNop(), "http://x", "Shop")
	n.BookingCancelled(context.Background(), &models.Booking{}, nil, "")
	assert.Empty(t, q.msgs)
}

type flakyMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *flakyMailer) Send(_ context.Context, m Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m.To)
	if m.To == "fail@example.com" {
		return errors.New("smtp down")
	}
	return nil
}

func TestMemoryQueueDeliversAndSurvivesFailures(t *testing.T) {
	m := &flakyMailer{}
	q := NewMemoryQueue(m, zap.NewNop(), 10)

	q.Enqueue(context.Background(), Message{To: "fail@example.com"})
	q.Enqueue(context.Background(), Message{To: "ok@example.com"})
	q.Close()

	assert.Equal(t, []string{"fail@example.com", "ok@example.com"}, m.sent)
}

func TestEmailTaskPayload(t *testing.T) {
	task, err := NewEmailTask(Message{Kind: KindReminder, To: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, TypeSendEmail, task.Type())

	m := &flakyMailer{}
	require.NoError(t, HandleEmailTask(m, zap.NewNop())(context.Background(), task))
	assert.Equal(t, []string{"a@b.c"}, m.sent)
}
