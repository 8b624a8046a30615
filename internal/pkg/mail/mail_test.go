package mail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

type fakeSES struct {
	in  *sesv2.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.in = in
	return &sesv2.SendEmailOutput{}, f.err
}

func TestSESSend(t *testing.T) {
	// Arrange
	client := &fakeSES{}
	m := NewSES(client, "noreply@example.com")

	// Act
	err := m.Send(context.Background(), Message{
		To:       []string{"user@example.com"},
		Subject:  "Your Verification Code",
		TextBody: "Your verification code is: 481290. Valid for 5 minutes.",
		HTMLBody: "<h1>481290</h1>",
	})

	// Assert
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if aws.ToString(client.in.FromEmailAddress) != "noreply@example.com" {
		t.Fatalf("from = %q", aws.ToString(client.in.FromEmailAddress))
	}
	simple := client.in.Content.Simple
	if aws.ToString(simple.Subject.Data) != "Your Verification Code" {
		t.Fatalf("subject = %q", aws.ToString(simple.Subject.Data))
	}
	if simple.Body.Html == nil || simple.Body.Text == nil {
		t.Fatalf("both html and text bodies expected")
	}
}

func TestSESSendValidation(t *testing.T) {
	m := NewSES(&fakeSES{}, "")

	if err := m.Send(context.Background(), Message{Subject: "x"}); !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("expected ErrNoRecipients, got %v", err)
	}
	if err := m.Send(context.Background(), Message{To: []string{"a@b.co"}}); !errors.Is(err, ErrNoSender) {
		t.Fatalf("expected ErrNoSender, got %v", err)
	}
}

func TestCompose(t *testing.T) {
	raw := string(compose("noreply@example.com", Message{
		To:       []string{"a@b.co"},
		Subject:  "Your Verification Code",
		TextBody: "plain",
		HTMLBody: "<b>html</b>",
	}))

	if !strings.Contains(raw, "Content-Type: multipart/alternative; boundary=otpgate-") {
		t.Fatalf("missing multipart header:\n%s", raw)
	}
	if !strings.Contains(raw, "text/plain") || !strings.Contains(raw, "text/html") {
		t.Fatalf("missing parts:\n%s", raw)
	}
}

func TestNew(t *testing.T) {
	if _, err := New("fax", nil, "", SMTPConfig{}); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
	if _, err := New("smtp", nil, "", SMTPConfig{}); !errors.Is(err, ErrSMTPHostPortRequired) {
		t.Fatalf("expected ErrSMTPHostPortRequired, got %v", err)
	}
}
