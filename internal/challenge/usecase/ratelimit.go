package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
)

// CheckRateLimit reports whether identifier may receive another code. When
// the store fails and fail_open is set the request is allowed; otherwise the
// store error is returned.
func (s *Usecase) CheckRateLimit(ctx context.Context, identifier string) (bool, error) {
	ctx, span := s.startSpan(ctx, "CheckRateLimit")
	defer span.End()

	since := s.clock.Now().Add(-s.window())

	count, err := s.repoRateLimit.CountSince(ctx, identifier, since)
	if err != nil {
		if s.cfg.GetBool("modules.challenge.ratelimit.fail_open") {
			slog.WarnContext(ctx, "rate limit store unavailable, allowing request",
				"identifier", entity.MaskAddress(identifier), "error", err)
			return true, nil
		}
		slog.ErrorContext(ctx, "failed to repo count rate limit records",
			"identifier", entity.MaskAddress(identifier), "error", err)
		return false, err
	}

	return count < s.maxAttempts(), nil
}

// LogAttempt records one issuance. Errors are logged only.
func (s *Usecase) LogAttempt(ctx context.Context, identifier string) {
	ctx, span := s.startSpan(ctx, "LogAttempt")
	defer span.End()

	now := s.clock.Now()
	rec := entity.RateLimitRecord{
		Identifier: identifier,
		Timestamp:  now,
		ExpiresAt:  now.Add(s.window()),
	}

	if err := s.repoRateLimit.Record(ctx, rec); err != nil {
		slog.WarnContext(ctx, "failed to repo record rate limit attempt",
			"identifier", entity.MaskAddress(identifier), "error", err)
	}
}
