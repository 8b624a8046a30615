package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
	"github.com/shandysiswandi/otpgate/internal/challenge/inbound"
	"github.com/shandysiswandi/otpgate/internal/challenge/outbound/cache"
	"github.com/shandysiswandi/otpgate/internal/challenge/outbound/dynamo"
	"github.com/shandysiswandi/otpgate/internal/challenge/outbound/notify"
	"github.com/shandysiswandi/otpgate/internal/challenge/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"github.com/shandysiswandi/otpgate/internal/pkg/sms"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

var ErrNoRateLimitStore = errors.New("challenge: rate limit store is not configured")

type Dependency struct {
	// Exactly one of DynamoDB and Redis is used, chosen by
	// modules.challenge.ratelimit.driver.
	DynamoDB dynamo.API
	Redis    redis.Cmdable

	SMS        sms.Sender                 `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

// New wires the trigger handler.
func New(dep Dependency) (*inbound.Lambda, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	store, err := rateLimitStore(dep)
	if err != nil {
		return nil, err
	}

	timeout := dep.Config.GetSecond("aws.timeout_seconds")

	uc := usecase.New(usecase.Dependency{
		RepoRateLimit: store,
		RepoNotifier:  notify.NewNotifier(dep.SMS, dep.Mail, timeout, dep.Instrument),
		OTP:           dep.OTP,
		Config:        dep.Config,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	return inbound.NewLambda(uc, dep.Instrument), nil
}

type rateLimitRepo interface {
	CountSince(ctx context.Context, identifier string, since time.Time) (int, error)
	Record(ctx context.Context, rec entity.RateLimitRecord) error
}

func rateLimitStore(dep Dependency) (rateLimitRepo, error) {
	switch driver := dep.Config.GetString("modules.challenge.ratelimit.driver"); driver {
	case "", "dynamodb":
		if dep.DynamoDB == nil {
			return nil, ErrNoRateLimitStore
		}
		table := dep.Config.GetString("modules.challenge.ratelimit.table")
		return dynamo.NewRateLimit(dep.DynamoDB, table, dep.Config.GetSecond("aws.timeout_seconds"), dep.Instrument), nil
	case "redis":
		if dep.Redis == nil {
			return nil, ErrNoRateLimitStore
		}
		prefix := dep.Config.GetString("modules.challenge.ratelimit.redis_prefix")
		return cache.NewRateLimit(dep.Redis, prefix, dep.UUID, dep.Instrument), nil
	default:
		return nil, fmt.Errorf("challenge: unknown rate limit driver %q", driver)
	}
}
