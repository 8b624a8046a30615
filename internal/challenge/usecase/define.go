package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
)

// Define decides the next step from the session history. One successful
// custom challenge issues tokens; any other non-empty history fails.
func (s *Usecase) Define(ctx context.Context, session []entity.SessionEntry) entity.Decision {
	ctx, span := s.startSpan(ctx, "Define")
	defer span.End()

	switch {
	case len(session) == 0:
		return entity.Decision{ChallengeName: entity.ChallengeCustom}

	case len(session) == 1 &&
		session[0].ChallengeName == entity.ChallengeCustom &&
		session[0].Result:
		return entity.Decision{IssueTokens: true}

	default:
		slog.InfoContext(ctx, "auth session failed", "rounds", len(session))
		return entity.Decision{FailAuthentication: true}
	}
}
