package signup

import (
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpgate/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/jwt"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
	"github.com/shandysiswandi/otpgate/internal/signup/inbound"
	"github.com/shandysiswandi/otpgate/internal/signup/outbound/cognito"
	"github.com/shandysiswandi/otpgate/internal/signup/outbound/mq"
	"github.com/shandysiswandi/otpgate/internal/signup/usecase"
)

type Dependency struct {
	Cognito     cognito.API                `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Inspector   *jwt.Inspector             `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoIdentity := cognito.NewIdentity(dep.Cognito, cognito.Config{
		ClientID:     dep.Config.GetString("cognito.client_id"),
		ClientSecret: dep.Config.GetString("cognito.client_secret"),
		Timeout:      dep.Config.GetSecond("aws.timeout_seconds"),
	}, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoIdentity:  repoIdentity,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Clock:         dep.Clock,
		Tokens:        dep.Inspector,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
