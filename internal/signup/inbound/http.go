package inbound

import (
	"context"

	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/signup/entity"
	"github.com/shandysiswandi/otpgate/internal/signup/usecase"
)

type uc interface {
	ValidateStep(ctx context.Context, in usecase.ValidateStepInput) error
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.ChallengeHandle, error)

	Initiate(ctx context.Context, in usecase.InitiateInput) (*entity.ChallengeHandle, error)
	Resend(ctx context.Context, in usecase.InitiateInput) (*entity.ChallengeHandle, error)
	Confirm(ctx context.Context, in usecase.ConfirmInput) (*usecase.ConfirmOutput, error)

	SignOut(ctx context.Context) error
	Session(ctx context.Context) (*entity.SessionInfo, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Sign up
	r.POST("/api/v1/auth/signup/validate", end.ValidateStep)
	r.POST("/api/v1/auth/signup", end.Signup)

	// One-time code
	r.POST("/api/v1/auth/otp/initiate", end.Initiate)
	r.POST("/api/v1/auth/otp/resend", end.Resend)
	r.POST("/api/v1/auth/otp/verify", end.Verify)

	// Session (need authenticated)
	r.POST("/api/v1/auth/signout", end.SignOut, r.Bearer())
	r.GET("/api/v1/auth/session", end.Session, r.Bearer())
}
