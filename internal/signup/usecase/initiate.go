package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/signup/entity"
)

type InitiateInput struct {
	Username string `validate:"required,max=254"`
}

// Initiate opens a custom-auth challenge, which makes the identity provider
// issue and deliver a fresh code.
func (s *Usecase) Initiate(ctx context.Context, in InitiateInput) (*entity.ChallengeHandle, error) {
	ctx, span := s.startSpan(ctx, "Initiate")
	defer span.End()

	return s.initiate(ctx, in)
}

// Resend abandons the previous session and starts over from an empty one.
func (s *Usecase) Resend(ctx context.Context, in InitiateInput) (*entity.ChallengeHandle, error) {
	ctx, span := s.startSpan(ctx, "Resend")
	defer span.End()

	handle, err := s.initiate(ctx, in)
	if err != nil {
		return nil, goerror.NewBusinessWrap(err, goerror.Message(err, "Failed to resend OTP"), errCode(err))
	}

	slog.InfoContext(ctx, "otp resent", "channel", handle.DeliveryMedium)
	return handle, nil
}

func (s *Usecase) initiate(ctx context.Context, in InitiateInput) (*entity.ChallengeHandle, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	handle, err := s.repoIdentity.InitiateAuth(ctx, s.normalizeUsername(in.Username))
	if err != nil {
		slog.WarnContext(ctx, "failed to repo initiate auth", "error", err)
		return nil, err
	}

	return handle, nil
}

func errCode(err error) goerror.Code {
	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		return gerr.Code()
	}
	return goerror.CodeInternal
}
