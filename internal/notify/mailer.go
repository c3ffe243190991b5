// Package notify sends e-mail about new contact requests.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/stinex/backend/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	notSpecified      = "Nicht angegeben"
	confirmationTitle = "Ihre Anfrage bei Stinex - Bestätigung"
)

// Message is one HTML e-mail.
type Message struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier is implemented by Mailer; the worker depends on this.
type Notifier interface {
	NotifyContact(ctx context.Context, c model.Contact) bool
	Enabled() bool
}

// MailConfig addresses the mails. Username and Password gate delivery.
type MailConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AdminEmail string
}

// Mailer renders and sends contact notifications.
type Mailer struct {
	cfg      MailConfig
	sender   Sender
	location *time.Location
}

// NewMailer creates a Mailer. sender may be nil when SMTP is not configured.
func NewMailer(cfg MailConfig, sender Sender) *Mailer {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		loc = time.UTC
	}
	return &Mailer{cfg: cfg, sender: sender, location: loc}
}

var _ Notifier = (*Mailer)(nil)

// Enabled reports whether SMTP credentials are configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Username != "" && m.cfg.Password != "" && m.sender != nil
}

// NotifyContact sends the admin notification and the customer confirmation.
// It reports whether the admin notification was delivered; failures are
// logged and never returned.
func (m *Mailer) NotifyContact(ctx context.Context, c model.Contact) bool {
	if !m.Enabled() {
		slog.InfoContext(ctx, "SMTP not configured, skipping email notification", "contact_id", c.ID)
		return false
	}

	data := m.templateData(c)
	admin, err := render("admin_notification.html", data)
	if err != nil {
		slog.ErrorContext(ctx, "render admin notification", "contact_id", c.ID, "error", err)
		return false
	}
	err = m.sender.Send(ctx, Message{
		From:     m.cfg.From,
		To:       m.cfg.AdminEmail,
		Subject:  fmt.Sprintf("Neue Kontaktanfrage von %s", c.Name),
		HTMLBody: admin,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send contact notification email", "contact_id", c.ID, "error", err)
		return false
	}
	slog.InfoContext(ctx, "contact notification email sent", "contact_id", c.ID)

	confirmation, err := render("customer_confirmation.html", data)
	if err == nil {
		err = m.sender.Send(ctx, Message{
			From:     m.cfg.From,
			To:       c.Email,
			Subject:  confirmationTitle,
			HTMLBody: confirmation,
		})
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to send confirmation email", "contact_id", c.ID, "error", err)
	}
	return true
}

type templateData struct {
	Name        string
	Email       string
	Phone       string
	Service     string
	Message     string
	SubmittedAt string
}

func (m *Mailer) templateData(c model.Contact) templateData {
	return templateData{
		Name:        c.Name,
		Email:       c.Email,
		Phone:       orNotSpecified(c.Phone),
		Service:     orNotSpecified(c.Service),
		Message:     c.Message,
		SubmittedAt: c.CreatedAt.In(m.location).Format("02.01.2006 um 15:04"),
	}
}

func orNotSpecified(s *string) string {
	if s == nil || *s == "" {
		return notSpecified
	}
	return *s
}

func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
