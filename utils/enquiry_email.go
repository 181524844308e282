package utils

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"travel-backend/config"
	"travel-backend/models"
)

// EnquiryMailer sends the sales desk an email for every new enquiry.
type EnquiryMailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
	log    logrus.FieldLogger
}

func NewEnquiryMailer(cfg config.MailConfig, log logrus.FieldLogger) *EnquiryMailer {
	m := &EnquiryMailer{cfg: cfg, log: log}
	if cfg.Enabled() {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// NotifyEnquiry mails the enquiry to ENQUIRY_NOTIFY_EMAIL. Without SMTP
// settings it only logs the enquiry.
func (m *EnquiryMailer) NotifyEnquiry(ctx context.Context, e models.Enquiry) error {
	to := m.cfg.NotifyEmail
	if to == "" {
		to = m.cfg.Username
	}
	if m.dialer == nil || to == "" {
		m.log.WithFields(logrus.Fields{
			"enquiry_id": e.ID,
			"email":      MaskEmail(e.Email),
			"source":     e.Source,
		}).Info("[MOCK EMAIL] new enquiry")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := BuildEnquiryMessage(m.cfg, to, e)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send enquiry email: %w", err)
	}
	return nil
}

// BuildEnquiryMessage renders the plain text and HTML notification.
func BuildEnquiryMessage(cfg config.MailConfig, to string, e models.Enquiry) *gomail.Message {
	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}

	packageTitle := "-"
	if e.Package != nil && e.Package.Title != "" {
		packageTitle = e.Package.Title
	}
	travelDate := "-"
	if e.TravelDate != nil {
		travelDate = e.TravelDate.Format("02 Jan 2006")
	}

	rows := [][2]string{
		{"Name", safe(e.Name)},
		{"Email", safe(e.Email)},
		{"Phone", safe(e.Phone)},
		{"Package", safe(packageTitle)},
		{"Destination", safe(e.Destination)},
		{"Travel date", travelDate},
		{"Travelers", fmt.Sprintf("%d", e.Travelers)},
		{"Source", e.Source},
	}

	var plain, rowsHTML strings.Builder
	plain.WriteString("A new enquiry was submitted.\n\n")
	for _, r := range rows {
		fmt.Fprintf(&plain, "%s: %s\n", r[0], r[1])
		fmt.Fprintf(&rowsHTML, "<p><span class=\"label\">%s:</span> %s</p>\n", r[0], html.EscapeString(r[1]))
	}
	if e.Message != "" {
		fmt.Fprintf(&plain, "\nMessage:\n%s\n", e.Message)
	}

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>New enquiry</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.label { font-weight:700; width:120px; display:inline-block; vertical-align:top; }
.message { white-space:pre-wrap; border-top:1px solid #e6eef6; margin-top:16px; padding-top:16px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>New enquiry #%d</h2>
%s    <div class="message">%s</div>
  </div>
</div>
</body>
</html>`, e.ID, rowsHTML.String(), html.EscapeString(e.Message))

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(cfg.Username, cfg.FromName))
	msg.SetHeader("To", to)
	msg.SetHeader("Reply-To", safe(e.Email))
	msg.SetHeader("Subject", fmt.Sprintf("New enquiry from %s (%s)", safe(e.Name), e.Source))
	msg.SetBody("text/plain", plain.String())
	msg.AddAlternative("text/html", htmlBody)
	return msg
}
