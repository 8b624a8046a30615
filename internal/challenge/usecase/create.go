package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type CreateInput struct {
	Username       string
	UserAttributes map[string]string
}

// Create issues a code for the user's phone, or email when no phone is on
// file, and delivers it.
func (s *Usecase) Create(ctx context.Context, in CreateInput) (*entity.Challenge, error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer span.End()

	rcpt, ok := entity.RecipientFromAttributes(in.UserAttributes)
	if !ok {
		slog.WarnContext(ctx, "user has no delivery address", "username", in.Username)
		return nil, goerror.NewBusiness("No phone number or email found", goerror.CodeInvalidInput)
	}

	allowed, err := s.CheckRateLimit(ctx, rcpt.Address)
	if err != nil {
		return nil, goerror.NewServer(err)
	}
	if !allowed {
		s.rateLimited.Add(ctx, 1, metric.WithAttributes(attribute.String("channel", rcpt.Channel.String())))
		slog.WarnContext(ctx, "otp rate limit reached", "identifier", rcpt.Masked())
		return nil, goerror.NewBusiness("Too many OTP requests. Please try again later.", goerror.CodeTooManyRequest)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp", "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.codeTTL()
	if err := s.deliver(ctx, rcpt, code, ttl); err != nil {
		s.deliveryFail.Add(ctx, 1, metric.WithAttributes(attribute.String("channel", rcpt.Channel.String())))
		slog.ErrorContext(ctx, "failed to deliver otp", "identifier", rcpt.Masked(), "channel", rcpt.Channel.String(), "error", err)
		return nil, goerror.NewBusinessWrap(err, "Failed to send verification code. Please try again.", goerror.CodeUnavailable)
	}

	s.LogAttempt(ctx, rcpt.Address)

	s.created.Add(ctx, 1, metric.WithAttributes(attribute.String("channel", rcpt.Channel.String())))
	slog.InfoContext(ctx, "otp challenge created", "identifier", rcpt.Masked(), "channel", rcpt.Channel.String())

	return &entity.Challenge{
		Answer:    code,
		ExpiresAt: s.clock.Now().Add(ttl),
		Recipient: rcpt,
	}, nil
}
