package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"github.com/shandysiswandi/otpgate/internal/signup/entity"
)

const msgInvalidCode = "Please enter a valid 6-digit OTP"

type ConfirmInput struct {
	Username string `validate:"required,max=254"`
	Session  string `validate:"required"`
	// Code is the whole code. Cells is the per-input form; it is used when
	// Code is empty.
	Code  string
	Cells []string `validate:"max=6"`
}

type ConfirmOutput struct {
	Tokens  entity.Tokens
	Subject string
}

// Confirm answers the open challenge. On success the identity provider
// returns tokens; on failure its message is surfaced.
func (s *Usecase) Confirm(ctx context.Context, in ConfirmInput) (*ConfirmOutput, error) {
	ctx, span := s.startSpan(ctx, "Confirm")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	code := in.Code
	if code == "" && len(in.Cells) > 0 {
		code = codeFromCells(ctx, in.Cells)
	}
	if !otp.IsCode(code, entity.CodeLength) {
		return nil, goerror.NewInvalidInput(nil, "code", msgInvalidCode)
	}

	username := s.normalizeUsername(in.Username)

	tokens, err := s.repoIdentity.RespondToChallenge(ctx, username, in.Session, code)
	if err != nil {
		slog.WarnContext(ctx, "failed to repo respond to challenge", "error", err)
		return nil, err
	}

	out := &ConfirmOutput{Tokens: *tokens}
	if claims, err := s.tokens.Inspect(tokens.IDToken); err == nil {
		out.Subject = claims.Subject
	} else {
		slog.WarnContext(ctx, "failed to inspect id token", "error", err)
	}

	s.publish(ctx, "user_signed_in", func(ctx context.Context) error {
		return s.repoMessaging.PublishUserSignedIn(ctx, UserSignedInEvent{
			Subject:  out.Subject,
			Username: username,
		})
	})

	return out, nil
}

// codeFromCells replays the cells into a code grid and returns the code it
// submits, or "" when the grid never completes.
func codeFromCells(ctx context.Context, cells []string) string {
	var code string
	entry := NewCodeEntry(func(_ context.Context, c string) error {
		code = c
		return nil
	})

	for i, c := range cells {
		if err := entry.Type(ctx, i, c); err != nil {
			return ""
		}
	}

	return code
}
