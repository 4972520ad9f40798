// Package mailer delivers HTML email through SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"prodx/internal/config"
	applog "prodx/internal/log"
)

// Message is one outbound HTML email.
type Message struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

var ErrNoRecipient = errors.New("mailer: no recipient address")

// New picks the SMTP transport when a host is configured and the
// log-only transport otherwise.
func New(cfg config.SMTPConfig) (Sender, error) {
	if cfg.Host == "" {
		return LogOnly{}, nil
	}
	return NewSMTP(cfg)
}

type SMTP struct {
	cfg  config.SMTPConfig
	opts []mail.Option
}

func NewSMTP(cfg config.SMTPConfig) (*SMTP, error) {
	if cfg.From == "" {
		return nil, errors.New("mailer: MAIL_FROM or SMTP_USERNAME is required")
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(15 * time.Second),
	}
	switch cfg.Encryption {
	case "ssl", "tls":
		opts = append(opts, mail.WithSSL())
	case "none":
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	case "", "starttls":
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		return nil, fmt.Errorf("mailer: unknown SMTP_ENCRYPTION %q", cfg.Encryption)
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	return &SMTP{cfg: cfg, opts: opts}, nil
}

// Send makes a single delivery attempt.
func (s *SMTP) Send(ctx context.Context, m Message) error {
	msg, err := build(s.cfg.From, s.cfg.FromName, m)
	if err != nil {
		return err
	}
	client, err := mail.NewClient(s.cfg.Host, s.opts...)
	if err != nil {
		return fmt.Errorf("mailer: client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", m.To, err)
	}
	return nil
}

func build(from, fromName string, m Message) (*mail.Msg, error) {
	if m.To == "" {
		return nil, ErrNoRecipient
	}
	msg := mail.NewMsg()
	if err := msg.FromFormat(fromName, from); err != nil {
		return nil, fmt.Errorf("mailer: from: %w", err)
	}
	if err := msg.AddToFormat(m.ToName, m.To); err != nil {
		return nil, fmt.Errorf("mailer: to: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.HTMLBody)
	return msg, nil
}

// LogOnly records the message instead of sending it. Used when SMTP is
// not configured, e.g. in development.
type LogOnly struct{}

func (LogOnly) Send(_ context.Context, m Message) error {
	if m.To == "" {
		return ErrNoRecipient
	}
	applog.Info(nil, "mail.logonly", map[string]any{"to": m.To, "subject": m.Subject})
	return nil
}
