package notify

import (
	"context"
	"time"

	"github.com/shandysiswandi/otpgate/internal/challenge/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/awsconf"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
	"github.com/shandysiswandi/otpgate/internal/pkg/sms"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Notifier delivers codes over SMS or email.
type Notifier struct {
	sms     sms.Sender
	mail    mail.Mail
	timeout time.Duration
	ins     instrument.Instrumentation
}

func NewNotifier(s sms.Sender, m mail.Mail, timeout time.Duration, ins instrument.Instrumentation) *Notifier {
	return &Notifier{sms: s, mail: m, timeout: timeout, ins: ins}
}

func (n *Notifier) SendSMS(ctx context.Context, phone, body string) error {
	ctx, span := n.ins.Tracer("challenge.outbound.notify").Start(ctx, "SendSMS")
	defer span.End()
	span.SetAttributes(attribute.String("notify.channel", "sms"))

	ctx, cancel := awsconf.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.sms.Send(ctx, sms.Message{PhoneNumber: phone, Body: body, Type: sms.Transactional}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (n *Notifier) SendEmail(ctx context.Context, msg usecase.EmailMessage) error {
	ctx, span := n.ins.Tracer("challenge.outbound.notify").Start(ctx, "SendEmail")
	defer span.End()
	span.SetAttributes(attribute.String("notify.channel", "email"))

	ctx, cancel := awsconf.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.mail.Send(ctx, mail.Message{
		To:       []string{msg.To},
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
