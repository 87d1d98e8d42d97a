package notification

import "context"

// Message is a rendered e-mail ready for delivery.
type Message struct {
	Kind    string `json:"kind"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Queue accepts messages for asynchronous delivery. Enqueue never fails
// the caller; problems are logged and the message is dropped.
type Queue interface {
	Enqueue(ctx context.Context, m Message)
}

const (
	KindBookingRequest   = "booking_request"
	KindBookingConfirmed = "booking_confirmed"
	KindBookingCancelled = "booking_cancelled"
	KindCredentials      = "credentials"
	KindReminder         = "booking_reminder"
)
