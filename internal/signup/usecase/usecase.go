package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpgate/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/jwt"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
	"github.com/shandysiswandi/otpgate/internal/signup/entity"
	"go.opentelemetry.io/otel/trace"
)

type UserRegisteredEvent struct {
	UserSub     string
	Username    string
	Channel     string
	Interests   []string
	Suggestions string
}

type UserSignedInEvent struct {
	Subject  string
	Username string
}

type repoIdentity interface {
	Register(ctx context.Context, username, password string, attrs map[string]string) (userSub string, err error)
	InitiateAuth(ctx context.Context, username string) (*entity.ChallengeHandle, error)
	RespondToChallenge(ctx context.Context, username, session, code string) (*entity.Tokens, error)
	SignOut(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*entity.Profile, error)
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishUserSignedIn(ctx context.Context, msg UserSignedInEvent) error
}

type tokenInspector interface {
	Inspect(token string) (jwt.Claims, error)
}

type Usecase struct {
	repoIdentity  repoIdentity
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	clock         clock.Clocker
	tokens        tokenInspector
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoIdentity  repoIdentity
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Clock         clock.Clocker
	Tokens        tokenInspector
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoIdentity:  dep.RepoIdentity,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		clock:         dep.Clock,
		tokens:        dep.Tokens,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("signup.usecase").Start(ctx, name)
}

func (s *Usecase) countryCode() string {
	if cc := s.cfg.GetString("modules.signup.default_country_code"); cc != "" {
		return cc
	}
	return entity.DefaultCountryCode
}

// normalizeUsername accepts an email or a phone number as typed.
func (s *Usecase) normalizeUsername(username string) string {
	if strings.Contains(username, "@") {
		return entity.NormalizeEmail(username)
	}
	return entity.NormalizePhone(username, s.countryCode())
}

// publish runs fn in the background with bounded exponential backoff. A
// final failure is only logged.
func (s *Usecase) publish(ctx context.Context, name string, fn func(context.Context) error) {
	maxRetries := s.cfg.GetInt64("modules.signup.events.max_retries")
	if maxRetries <= 0 {
		maxRetries = 3
	}

	started := s.goroutine.Go(ctx, func(ctx context.Context) error {
		b := retry.NewExponential(100 * time.Millisecond)
		b = retry.WithCappedDuration(2*time.Second, b)
		b = retry.WithMaxRetries(uint64(maxRetries), b)

		err := retry.Do(ctx, b, func(ctx context.Context) error {
			if err := fn(ctx); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to publish event", "event", name, "error", err)
		}
		return err
	})
	if !started {
		slog.WarnContext(ctx, "event dropped, background workers are busy", "event", name)
	}
}
