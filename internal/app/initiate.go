package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/shandysiswandi/otpgate/internal/pkg/awsconf"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpgate/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/jwt"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

func (a *App) initConfig() {
	cfg, err := loadFileConfig()
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func instrumentConfig(cfg config.Config) *instrument.Config {
	return &instrument.Config{
		Enabled:          cfg.GetBool("instrument.enabled"),
		ServiceName:      cfg.GetString("instrument.service_name"),
		ServiceVersion:   cfg.GetString("instrument.service_version"),
		Environment:      cfg.GetString("instrument.env"),
		OTLPEndpoint:     cfg.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       cfg.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: cfg.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  cfg.GetSecond("instrument.metric_interval_seconds"),
		LogLevel:         cfg.GetString("instrument.log_level"),
		MaskFields:       cfg.GetArray("instrument.log_mask_fields"),
	}
}

func awsOptions(cfg config.Config) awsconf.Options {
	return awsconf.Options{
		Region:      cfg.GetString("aws.region"),
		Endpoint:    cfg.GetString("aws.endpoint"),
		AccessKey:   cfg.GetString("aws.access_key"),
		SecretKey:   cfg.GetString("aws.secret_key"),
		MaxAttempts: cfg.GetInt("aws.max_attempts"),
	}
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func (a *App) initInstrument() {
	ins, err := instrument.New(a.ctx, instrumentConfig(a.config))
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.inspector = jwt.NewInspector(a.clock)
	a.goroutine = goroutine.NewManager(
		a.config.GetInt("app.server.max_goroutine"),
		a.config.GetSecond("app.server.goroutine_timeout_seconds"),
	)

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator
}

func (a *App) initAWS() {
	cfg, err := awsconf.Load(a.ctx, awsOptions(a.config))
	if err != nil {
		slog.Error("failed to load aws config", "error", err)
		os.Exit(1)
	}
	a.awsConfig = cfg
}

func (a *App) initCache() {
	rdb, err := connectRedis(a.ctx, a.config.GetString("redis.url"))
	if err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	a.cacheConn = rdb
	a.idemp = idempotency.New(a.cacheConn, a.config.GetString("redis.idempotency_prefix"))
}

func (a *App) initMessaging() {
	driver := a.config.GetString("messaging.driver")
	client, err := messaging.NewFromDriver(driver, messaging.FactoryOptions{
		Kafka: messaging.KafkaConfig{
			Brokers:                a.config.GetArray("messaging.kafka.brokers"),
			WriteTimeout:           a.config.GetSecond("messaging.kafka.write_timeout_seconds"),
			AllowAutoTopicCreation: a.config.GetBool("messaging.kafka.allow_auto_topic_creation"),
		},
		NATS: messaging.NATSConfig{
			URL:  a.config.GetString("messaging.nats.url"),
			Name: a.config.GetString("messaging.nats.name"),
			Options: []nats.Option{
				nats.MaxReconnects(a.config.GetInt("messaging.nats.max_reconnects")),
				nats.Timeout(a.config.GetSecond("messaging.nats.timeout_seconds")),
				nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
			},
		},
		NSQ: messaging.NSQConfig{
			ProducerAddr: a.config.GetString("messaging.nsq.producer_addr"),
		},
	})
	if err != nil {
		slog.Error("failed to init messaging", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.messaging = client
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:      a.config,
		UUID:        a.uuid,
		Inspector:   a.inspector,
		Instrument:  a.ins,
		ServiceName: a.config.GetString("instrument.service_name"),
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Messaging",
			fn: func(context.Context) error {
				return a.messaging.Close()
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				return a.cacheConn.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
