package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
)

const emailSubject = "Your Verification Code"

var emailHTML = template.Must(template.New("otp_email").Option("missingkey=zero").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Verification Code</h2>
  <p>Use the code below to continue:</p>
  <p style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">{{ .code }}</p>
  <p>This code is valid for {{ .minutes }} minutes.</p>
  <p style="color: #888; font-size: 12px;">If you did not request this code, you can ignore this email.</p>
</body>
</html>`))

func codeText(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(ttl.Minutes()))
}

func renderEmailHTML(code string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	if err := emailHTML.Execute(&buf, map[string]any{
		"code":    code,
		"minutes": int(ttl.Minutes()),
	}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Usecase) deliver(ctx context.Context, rcpt entity.Recipient, code string, ttl time.Duration) error {
	text := codeText(code, ttl)

	if rcpt.Channel == entity.ChannelSMS {
		return s.repoNotifier.SendSMS(ctx, rcpt.Address, text)
	}

	html, err := renderEmailHTML(code, ttl)
	if err != nil {
		return err
	}

	return s.repoNotifier.SendEmail(ctx, EmailMessage{
		To:       rcpt.Address,
		Subject:  emailSubject,
		TextBody: text,
		HTMLBody: html,
	})
}
