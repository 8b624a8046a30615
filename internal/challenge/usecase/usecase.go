package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = time.Hour
	defaultCodeTTL     = 5 * time.Minute
)

type EmailMessage struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

type repoRateLimit interface {
	// CountSince counts records for identifier with a timestamp after since.
	CountSince(ctx context.Context, identifier string, since time.Time) (int, error)
	Record(ctx context.Context, rec entity.RateLimitRecord) error
}

type repoNotifier interface {
	SendSMS(ctx context.Context, phone, body string) error
	SendEmail(ctx context.Context, msg EmailMessage) error
}

type Usecase struct {
	repoRateLimit repoRateLimit
	repoNotifier  repoNotifier
	otp           otp.Generator
	cfg           config.Config
	clock         clock.Clocker
	ins           instrument.Instrumentation

	created       metric.Int64Counter
	rateLimited   metric.Int64Counter
	deliveryFail  metric.Int64Counter
	verified      metric.Int64Counter
	signUpWarning sync.Once
}

type Dependency struct {
	RepoRateLimit repoRateLimit
	RepoNotifier  repoNotifier
	OTP           otp.Generator
	Config        config.Config
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	meter := dep.Instrument.Meter("challenge.usecase")

	return &Usecase{
		repoRateLimit: dep.RepoRateLimit,
		repoNotifier:  dep.RepoNotifier,
		otp:           dep.OTP,
		cfg:           dep.Config,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		created:       counter(meter, "otp.challenge.created", "codes issued"),
		rateLimited:   counter(meter, "otp.challenge.rate_limited", "code requests refused by the rate limiter"),
		deliveryFail:  counter(meter, "otp.challenge.delivery_failed", "codes that could not be delivered"),
		verified:      counter(meter, "otp.challenge.verified", "answers checked, by result"),
	}
}

func counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		c, _ = noop.NewMeterProvider().Meter("challenge.usecase").Int64Counter(name)
	}
	return c
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("challenge.usecase").Start(ctx, name)
}

func (s *Usecase) maxAttempts() int {
	if n := s.cfg.GetInt("modules.challenge.ratelimit.max_attempts"); n > 0 {
		return n
	}
	return defaultMaxAttempts
}

func (s *Usecase) window() time.Duration {
	if d := s.cfg.GetMinute("modules.challenge.ratelimit.window_minutes"); d > 0 {
		return d
	}
	return defaultWindow
}

func (s *Usecase) codeTTL() time.Duration {
	if d := s.cfg.GetMinute("modules.challenge.otp.ttl_minutes"); d > 0 {
		return d
	}
	return defaultCodeTTL
}
