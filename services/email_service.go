// services/email_service.go
package services

import (
	"fmt"
	"strings"
	"sync"

	"content-calendar-backend/config"
	"content-calendar-backend/models"

	"gopkg.in/gomail.v2"
)

// EmailService renders and delivers reminder emails over SMTP. The
// dialer is built once on first use and shared across scans; a missing
// SMTP configuration is remembered and reported on every send so the
// scheduler can log it without taking the CRUD API down.
type EmailService struct {
	once   sync.Once
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
	cfgErr error
}

func NewEmailService() *EmailService {
	return &EmailService{}
}

func (s *EmailService) transport() (*gomail.Dialer, *config.EmailConfig, error) {
	s.once.Do(func() {
		cfg, err := config.LoadEmailConfig()
		if err != nil {
			s.cfgErr = err
			return
		}
		s.cfg = cfg
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	})
	if s.cfgErr != nil {
		return nil, nil, s.cfgErr
	}
	return s.dialer, s.cfg, nil
}

// SendReminder delivers one reminder message addressed to the whole
// recipient set. Delivery is atomic per record: either the transport
// accepts the message for all recipients or the record is reported as
// failed. The record itself is never mutated here.
func (s *EmailService) SendReminder(content *models.Content) error {
	dialer, cfg, err := s.transport()
	if err != nil {
		return fmt.Errorf("email transport not configured: %w", err)
	}

	scheduledDate := content.ScheduledTime.Format("02 Jan 2006")
	scheduledClock := content.ScheduledTime.Format("15:04")
	typeTitle := titleCase(content.ContentType)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(cfg.User, "Social Media Calendar"))
	m.SetHeader("To", content.Recipients...)
	m.SetHeader("Subject", fmt.Sprintf("Reminder: %s @ %s", typeTitle, scheduledClock))
	m.SetBody("text/plain", renderText(content, typeTitle, scheduledDate, scheduledClock))
	m.AddAlternative("text/html", renderHTML(content, typeTitle, scheduledDate, scheduledClock))

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder for content %s: %w", content.ID, err)
	}
	return nil
}

func renderText(content *models.Content, typeTitle, date, clock string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s reminder\n\n", typeTitle)
	fmt.Fprintf(&b, "Date: %s\n", date)
	fmt.Fprintf(&b, "Time: %s\n", clock)
	fmt.Fprintf(&b, "Client: %s\n", content.ClientName)
	fmt.Fprintf(&b, "Caption: %s\n", content.Caption)
	if content.ContentLink != "" {
		fmt.Fprintf(&b, "Link: %s\n", content.ContentLink)
	}
	b.WriteString("\n--\nSocial Media Calendar\n")
	return b.String()
}

func renderHTML(content *models.Content, typeTitle, date, clock string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width:600px;margin:0 auto">`)
	b.WriteString(`<h2 style="background:#3B82F6;color:#fff;padding:16px 24px;border-radius:8px 8px 0 0">Content Reminder</h2>`)
	b.WriteString(`<div style="border:1px solid #e2e8f0;border-top:0;padding:24px">`)
	fmt.Fprintf(&b, "<p><b>%s</b> for <b>%s</b> is coming up</p>", typeTitle, content.ClientName)
	fmt.Fprintf(&b, "<p><b>Date:</b> %s</p>", date)
	fmt.Fprintf(&b, "<p><b>Time:</b> %s</p>", clock)
	fmt.Fprintf(&b, "<p><b>Caption:</b><br/>%s</p>", content.Caption)
	if content.ContentLink != "" {
		fmt.Fprintf(&b, `<p><b>Link:</b> <a href="%s">%s</a></p>`, content.ContentLink, content.ContentLink)
	}
	b.WriteString(`</div>`)
	b.WriteString(`<p style="font-size:12px;color:#64748b;text-align:center;margin-top:16px">Automated reminder from your Social Media Calendar</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
