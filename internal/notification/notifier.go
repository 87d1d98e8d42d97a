package notification

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Notifier renders domain events into messages and queues them.
type Notifier struct {
	queue       Queue
	log         *zap.Logger
	frontendURL string
	shop        string
}

func NewNotifier(q Queue, l *zap.Logger, frontendURL, shop string) *Notifier {
	return &Notifier{
		queue:       q,
		log:         l,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		shop:        shop,
	}
}

type bookingView struct {
	Shop         string
	Professional string
	Client       string
	ClientEmail  string
	ClientPhone  string
	WhatsApp     string
	Service      string
	Date         string
	Time         string
	Comments     string
	Reason       string
	ConfirmURL   string
	RejectURL    string
	BookURL      string
	ExpiresAt    string
}

func (n *Notifier) view(b *models.Booking, pro *models.Professional) bookingView {
	v := bookingView{
		Shop:        n.shop,
		Client:      b.ClientName,
		ClientEmail: b.ClientEmail,
		ClientPhone: b.ClientPhone,
		WhatsApp:    whatsAppLink(b.ClientPhone),
		Service:     b.ServiceLabel(),
		Date:        b.BookingDate,
		Time:        b.BookingTime,
		Comments:    b.Comments,
		BookURL:     n.frontendURL,
	}
	if pro != nil {
		v.Professional = pro.Name
	}
	return v
}

// ConfirmURL and RejectURL are the links embedded in the request email.
func (n *Notifier) ConfirmURL(token string) string { return n.frontendURL + "/confirm/" + token }
func (n *Notifier) RejectURL(token string) string  { return n.frontendURL + "/reject/" + token }

func (n *Notifier) BookingRequested(ctx context.Context, b *models.Booking, pro *models.Professional) {
	v := n.view(b, pro)
	v.ConfirmURL = n.ConfirmURL(b.ConfirmationToken)
	v.RejectURL = n.RejectURL(b.ConfirmationToken)
	v.ExpiresAt = b.TokenExpiresAt.Format("2006-01-02 15:04")

	n.send(ctx, KindBookingRequest, pro.Email,
		fmt.Sprintf("New booking request: %s on %s at %s", b.ClientName, b.BookingDate, b.BookingTime), v)
}

func (n *Notifier) BookingConfirmed(ctx context.Context, b *models.Booking, pro *models.Professional) {
	n.send(ctx, KindBookingConfirmed, b.ClientEmail,
		fmt.Sprintf("Your booking on %s at %s is confirmed", b.BookingDate, b.BookingTime), n.view(b, pro))
}

func (n *Notifier) BookingCancelled(ctx context.Context, b *models.Booking, pro *models.Professional, reason string) {
	v := n.view(b, pro)
	v.Reason = reason
	n.send(ctx, KindBookingCancelled, b.ClientEmail,
		fmt.Sprintf("Your booking on %s at %s was cancelled", b.BookingDate, b.BookingTime), v)
}

func (n *Notifier) BookingReminder(ctx context.Context, b *models.Booking, pro *models.Professional) {
	n.send(ctx, KindReminder, b.ClientEmail,
		fmt.Sprintf("Reminder: your booking today at %s", b.BookingTime), n.view(b, pro))
}

func (n *Notifier) Credentials(ctx context.Context, pro *models.Professional, password string, reset bool) {
	data := struct {
		Shop         string
		Professional string
		Username     string
		Password     string
		LoginURL     string
		Reset        bool
	}{n.shop, pro.Name, pro.Username, password, n.frontendURL + "/login", reset}

	subject := "Your account at " + n.shop
	if reset {
		subject = "Your password was reset"
	}
	n.send(ctx, KindCredentials, pro.Email, subject, data)
}

func (n *Notifier) send(ctx context.Context, kind, to, subject string, data any) {
	if to == "" {
		return
	}
	html, err := render(kind, data)
	if err != nil {
		n.log.Warn("failed to render email", zap.String("kind", kind), zap.Error(err))
		return
	}
	n.queue.Enqueue(ctx, Message{Kind: kind, To: to, Subject: subject, HTML: html})
}

func whatsAppLink(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}
