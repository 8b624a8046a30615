package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/jwt"
	"github.com/shandysiswandi/otpgate/internal/signup/entity"
)

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Auth, error) {
	auth := jwt.GetAuth(ctx)
	if auth == nil || auth.Token == "" {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	return auth, nil
}

// SignOut revokes every token issued to the caller.
func (s *Usecase) SignOut(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "SignOut")
	defer span.End()

	auth, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.repoIdentity.SignOut(ctx, auth.Token); err != nil {
		slog.WarnContext(ctx, "failed to repo sign out", "username", auth.Claims.User(), "error", err)
		return err
	}

	slog.InfoContext(ctx, "user signed out", "username", auth.Claims.User())
	return nil
}

// Session reports who the caller is and when the access token expires.
func (s *Usecase) Session(ctx context.Context) (*entity.SessionInfo, error) {
	ctx, span := s.startSpan(ctx, "Session")
	defer span.End()

	auth, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.repoIdentity.CurrentUser(ctx, auth.Token)
	if err != nil {
		slog.WarnContext(ctx, "failed to repo get current user", "username", auth.Claims.User(), "error", err)
		return nil, err
	}

	info := &entity.SessionInfo{
		Subject:  auth.Claims.Subject,
		Username: auth.Claims.User(),
		ClientID: auth.Claims.ClientID,
		Profile:  *profile,
	}
	if auth.Claims.ExpiresAt != nil {
		info.ExpiresAt = auth.Claims.ExpiresAt.Time
	}

	return info, nil
}
