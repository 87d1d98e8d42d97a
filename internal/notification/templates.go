package notification

import (
	"bytes"
	"html/template"
)

const layout = `{{define "layout"}}<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;color:#222;max-width:600px;margin:auto">
<h2 style="color:#b8860b">{{.Shop}}</h2>
{{template "body" .}}
<p style="color:#888;font-size:12px">{{.Shop}}</p>
</body></html>{{end}}`

var bodies = map[string]string{
	KindBookingRequest: `{{define "body"}}
<p>Hello {{.Professional}},</p>
<p>You have a new booking request.</p>
<ul>
<li><strong>Client:</strong> {{.Client}}</li>
<li><strong>Email:</strong> {{.ClientEmail}}</li>
<li><strong>Phone:</strong> {{.ClientPhone}}{{if .WhatsApp}} (<a href="{{.WhatsApp}}">WhatsApp</a>){{end}}</li>
<li><strong>Service:</strong> {{.Service}}</li>
<li><strong>Date:</strong> {{.Date}} at {{.Time}}</li>
{{if .Comments}}<li><strong>Comments:</strong> {{.Comments}}</li>{{end}}
</ul>
<p>
<a href="{{.ConfirmURL}}" style="background:#2e7d32;color:#fff;padding:10px 16px;text-decoration:none">Confirm</a>
&nbsp;
<a href="{{.RejectURL}}" style="background:#c62828;color:#fff;padding:10px 16px;text-decoration:none">Reject</a>
</p>
<p style="font-size:12px">These links expire on {{.ExpiresAt}}.</p>
{{end}}`,

	KindBookingConfirmed: `{{define "body"}}
<p>Hello {{.Client}},</p>
<p>Your booking with {{.Professional}} is <strong>confirmed</strong>.</p>
<ul>
<li><strong>Service:</strong> {{.Service}}</li>
<li><strong>Date:</strong> {{.Date}} at {{.Time}}</li>
</ul>
<p>See you soon!</p>
{{end}}`,

	KindBookingCancelled: `{{define "body"}}
<p>Hello {{.Client}},</p>
<p>Unfortunately your booking with {{.Professional}} on {{.Date}} at {{.Time}} was <strong>cancelled</strong>.</p>
{{if .Reason}}<p><strong>Reason:</strong> {{.Reason}}</p>{{end}}
<p>You can pick another time at <a href="{{.BookURL}}">{{.BookURL}}</a>.</p>
{{end}}`,

	KindCredentials: `{{define "body"}}
<p>Hello {{.Professional}},</p>
{{if .Reset}}<p>Your password was reset by an administrator.</p>{{else}}<p>An account was created for you.</p>{{end}}
<ul>
<li><strong>Username:</strong> {{.Username}}</li>
<li><strong>Temporary password:</strong> {{.Password}}</li>
</ul>
<p>Sign in at <a href="{{.LoginURL}}">{{.LoginURL}}</a> and change it right away.</p>
{{end}}`,

	KindReminder: `{{define "body"}}
<p>Hello {{.Client}},</p>
<p>This is a reminder of your booking today at <strong>{{.Time}}</strong> with {{.Professional}} ({{.Service}}).</p>
<p>If you cannot make it, please let us know.</p>
{{end}}`,
}

var templates = func() map[string]*template.Template {
	out := make(map[string]*template.Template, len(bodies))
	for kind, body := range bodies {
		t := template.Must(template.New(kind).Parse(layout))
		out[kind] = template.Must(t.Parse(body))
	}
	return out
}()

func render(kind string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates[kind].ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
