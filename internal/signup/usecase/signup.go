package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpgate/internal/signup/entity"
)

type SignupInput struct {
	Draft DraftInput
}

// Signup validates every step, registers the identity and opens the first
// code challenge. Concurrent submits for one identifier register once.
func (s *Usecase) Signup(ctx context.Context, in SignupInput) (*entity.ChallengeHandle, error) {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	d := s.draft(in.Draft)
	if err := d.Validate(s.clock.Now(), s.cfg.GetArray("modules.signup.interests")); err != nil {
		return nil, stepError(err)
	}

	username := d.Username()

	var (
		userSub string
		regErr  error
	)
	err := s.idemp.Exec(ctx, "signup:"+username, func(ctx context.Context) error {
		userSub, regErr = s.repoIdentity.Register(ctx, username, d.Password(),
			d.Attributes(s.cfg.GetString("modules.signup.interests_attribute")))
		return regErr
	},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.signup.lock_seconds")),
		idempotency.WithReleaseOnFailure(),
	)
	switch {
	case regErr != nil:
		slog.WarnContext(ctx, "failed to repo register user", "channel", d.Kind().String(), "error", regErr)
		return nil, regErr
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		return nil, goerror.NewBusiness("Sign up is already in progress", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		return nil, goerror.NewBusiness("Account already registered", goerror.CodeConflict)
	case err != nil:
		slog.ErrorContext(ctx, "failed to run sign up exclusively", "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publish(ctx, "user_registered", func(ctx context.Context) error {
		return s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
			UserSub:     userSub,
			Username:    username,
			Channel:     d.Kind().String(),
			Interests:   d.Interests(),
			Suggestions: d.Suggestions(),
		})
	})

	handle, err := s.repoIdentity.InitiateAuth(ctx, username)
	if err != nil {
		slog.WarnContext(ctx, "failed to repo initiate auth after sign up", "error", err)
		code := errCode(err)
		if code == goerror.CodeInternal {
			code = goerror.CodeUnavailable
		}
		return nil, goerror.NewBusinessWrap(err, goerror.Message(err, "Failed to send OTP"), code)
	}

	return handle, nil
}
