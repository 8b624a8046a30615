package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type VerifyInput struct {
	Username          string
	PrivateParameters map[string]string
	Answer            string
}

// Verify compares the submitted answer with the issued code. Expired codes
// and challenges without an answer are never correct.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) bool {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	result := s.verify(ctx, in)
	s.verified.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))

	return result == "correct"
}

func (s *Usecase) verify(ctx context.Context, in VerifyInput) string {
	expected := in.PrivateParameters[entity.ParamAnswer]
	if expected == "" {
		slog.WarnContext(ctx, "challenge has no expected answer", "username", in.Username)
		return "missing"
	}

	exp, ok, err := entity.ExpiryFromParameters(in.PrivateParameters)
	if err != nil {
		slog.WarnContext(ctx, "challenge expiry is malformed", "username", in.Username, "error", err)
		return "malformed"
	}
	if ok && s.clock.Now().After(exp) {
		slog.InfoContext(ctx, "otp expired", "username", in.Username)
		return "expired"
	}

	if !otp.Equal(expected, in.Answer) {
		return "incorrect"
	}

	return "correct"
}
