package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/serenity-spa/booking-platform/pkg/logging"
)

// SMTPSender sends email through a plain SMTP relay. Each Send opens its own
// connection; smtp.SendMail closes it on every exit path, success or failure.
type SMTPSender struct {
	addr      string
	auth      smtp.Auth
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SMTPConfig holds configuration for the relay.
type SMTPConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// NewSMTPSender creates a sender for the configured relay. Credentials are
// optional; local relays like Mailpit accept unauthenticated sessions.
func NewSMTPSender(cfg SMTPConfig, logger *logging.Logger) *SMTPSender {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "587"
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
	fromName := cfg.FromName
	if fromName == "" {
		fromName = "Serenity Spa"
	}
	return &SMTPSender{
		addr:      host + ":" + port,
		auth:      auth,
		fromEmail: strings.TrimSpace(cfg.FromEmail),
		fromName:  fromName,
		logger:    logger,
	}
}

// Send delivers the message through the relay. No retry; a transient relay
// failure is terminal for the caller.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	body := buildMessage(s.fromName, s.fromEmail, msg)
	if err := smtp.SendMail(s.addr, s.auth, s.fromEmail, []string{msg.To}, []byte(body)); err != nil {
		s.logger.Error("smtp send failed", "error", err, "to", msg.To, "relay", s.addr)
		return fmt.Errorf("notify: smtp send failed: %w", err)
	}
	s.logger.Info("email sent via smtp", "to", msg.To, "subject", msg.Subject, "category", msg.Category)
	return nil
}

// buildMessage assembles a minimal RFC 5322 HTML message.
func buildMessage(fromName, fromEmail string, msg EmailMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", fromName, fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	if msg.Category != "" {
		fmt.Fprintf(&b, "X-Email-Category: %s\r\n", msg.Category)
	}
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")
	return b.String()
}
