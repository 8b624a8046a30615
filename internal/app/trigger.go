package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/otpgate/internal/challenge"
	"github.com/shandysiswandi/otpgate/internal/challenge/inbound"
	"github.com/shandysiswandi/otpgate/internal/pkg/awsconf"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"github.com/shandysiswandi/otpgate/internal/pkg/sms"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

// Trigger is the user pool trigger function: one handler for the
// pre sign-up and custom auth challenge events.
type Trigger struct {
	Handler *inbound.Lambda

	config    config.Config
	ins       instrument.Instrumentation
	cacheConn *redis.Client
}

// NewTrigger builds the trigger from the embedded defaults and the
// function's environment. It is called once per execution environment.
func NewTrigger(ctx context.Context) (*Trigger, error) {
	cfg, err := loadEnvConfig()
	if err != nil {
		return nil, err
	}
	return newTrigger(ctx, cfg)
}

func newTrigger(ctx context.Context, cfg config.Config) (*Trigger, error) {
	ins, err := instrument.New(ctx, instrumentConfig(cfg))
	if err != nil {
		return nil, err
	}

	t := &Trigger{config: cfg, ins: ins}

	awsCfg, err := awsconf.Load(ctx, awsOptions(cfg))
	if err != nil {
		return nil, errors.Join(err, t.Close(ctx))
	}

	dep := challenge.Dependency{
		UUID:       uid.NewUUID(),
		Clock:      clock.New(),
		OTP:        otp.NewNumeric(cfg.GetInt("modules.challenge.otp.digits")),
		Config:     cfg,
		Instrument: ins,
	}

	if dep.Validator, err = validator.NewV10Validator(); err != nil {
		return nil, errors.Join(err, t.Close(ctx))
	}

	if dep.SMS, err = sms.New(cfg.GetString("sms.driver"), sns.NewFromConfig(awsCfg), cfg.GetString("sms.sender_id")); err != nil {
		return nil, errors.Join(err, t.Close(ctx))
	}

	dep.Mail, err = mail.New(cfg.GetString("mail.driver"), sesv2.NewFromConfig(awsCfg), cfg.GetString("mail.from"), mail.SMTPConfig{
		Host:     cfg.GetString("mail.smtp.host"),
		Port:     cfg.GetInt("mail.smtp.port"),
		Username: cfg.GetString("mail.smtp.username"),
		Password: cfg.GetString("mail.smtp.password"),
		From:     cfg.GetString("mail.from"),
	})
	if err != nil {
		return nil, errors.Join(err, t.Close(ctx))
	}

	switch cfg.GetString("modules.challenge.ratelimit.driver") {
	case "redis":
		rdb, err := connectRedis(ctx, cfg.GetString("redis.url"))
		if err != nil {
			return nil, errors.Join(err, t.Close(ctx))
		}
		t.cacheConn = rdb
		dep.Redis = rdb
	default:
		dep.DynamoDB = dynamodb.NewFromConfig(awsCfg)
	}

	if t.Handler, err = challenge.New(dep); err != nil {
		return nil, errors.Join(err, t.Close(ctx))
	}

	slog.InfoContext(ctx, "trigger ready",
		"ratelimit_driver", cfg.GetString("modules.challenge.ratelimit.driver"),
		"sms_driver", cfg.GetString("sms.driver"),
		"mail_driver", cfg.GetString("mail.driver"),
	)

	return t, nil
}

// Close flushes telemetry and releases connections. Lambda calls it on
// SIGTERM before the environment is recycled.
func (t *Trigger) Close(ctx context.Context) error {
	var errs []error
	if t.ins != nil {
		errs = append(errs, t.ins.Shutdown(ctx))
	}
	if t.cacheConn != nil {
		errs = append(errs, t.cacheConn.Close())
	}
	if t.config != nil {
		errs = append(errs, t.config.Close())
	}
	return errors.Join(errs...)
}
