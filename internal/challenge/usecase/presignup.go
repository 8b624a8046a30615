package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
)

type PreSignUpInput struct {
	Username       string
	UserAttributes map[string]string
}

// PreSignUp confirms every new account and marks the supplied contact
// attributes as verified. Possession is proven by the first OTP sign-in.
func (s *Usecase) PreSignUp(ctx context.Context, in PreSignUpInput) entity.SignUpDecision {
	ctx, span := s.startSpan(ctx, "PreSignUp")
	defer span.End()

	s.signUpWarning.Do(func() {
		slog.WarnContext(ctx, "accounts are auto-confirmed; contact ownership is only proven by the otp challenge")
	})

	yes := true
	out := entity.SignUpDecision{AutoConfirmUser: true}
	if strings.TrimSpace(in.UserAttributes[entity.AttrEmail]) != "" {
		out.AutoVerifyEmail = &yes
	}
	if strings.TrimSpace(in.UserAttributes[entity.AttrPhoneNumber]) != "" {
		out.AutoVerifyPhone = &yes
	}

	slog.InfoContext(ctx, "user pre sign up accepted", "username", in.Username)

	return out
}
