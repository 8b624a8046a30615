package mail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrSMTPHostPortRequired is returned when Host/Port are missing.
var ErrSMTPHostPortRequired = errors.New("mail: smtp host and port are required")

// SMTPConfig configures the SMTP implementation.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the default sender when Message.From is empty.
	From string
}

// SMTP is a Mail implementation backed by net/smtp.
type SMTP struct {
	addr        string
	defaultFrom string
	auth        smtp.Auth
}

// NewSMTP constructs an SMTP mail sender.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTP{
		addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		defaultFrom: cfg.From,
		auth:        auth,
	}, nil
}

func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from, err := sender(msg, s.defaultFrom)
	if err != nil {
		return err
	}

	return smtp.SendMail(s.addr, s.auth, from, msg.To, compose(from, msg))
}

func (*SMTP) Close() error {
	return nil
}

func compose(from string, msg Message) []byte {
	body, contentType := buildBody(msg)

	headers := []string{
		"From: " + from,
		"To: " + strings.Join(msg.To, ", "),
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType,
	}

	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)
}

func buildBody(msg Message) (body string, contentType string) {
	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		boundary := multipartBoundary()
		var sb strings.Builder
		for _, part := range []struct{ kind, data string }{{"plain", msg.TextBody}, {"html", msg.HTMLBody}} {
			fmt.Fprintf(&sb, "--%s\r\nContent-Type: text/%s; charset=UTF-8\r\n\r\n%s\r\n", boundary, part.kind, part.data)
		}
		fmt.Fprintf(&sb, "--%s--", boundary)
		return sb.String(), "multipart/alternative; boundary=" + boundary
	case msg.HTMLBody != "":
		return msg.HTMLBody, "text/html; charset=UTF-8"
	default:
		return msg.TextBody, "text/plain; charset=UTF-8"
	}
}

func multipartBoundary() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "otpgate-boundary"
	}
	return "otpgate-" + hex.EncodeToString(b[:])
}

// New builds a Mail for driver ("ses" or "smtp").
func New(driver string, client SESAPI, from string, smtpCfg SMTPConfig) (Mail, error) {
	switch strings.ToLower(driver) {
	case "", "ses":
		return NewSES(client, from), nil
	case "smtp":
		if smtpCfg.From == "" {
			smtpCfg.From = from
		}
		return NewSMTP(smtpCfg)
	default:
		return nil, ErrUnknownDriver
	}
}
