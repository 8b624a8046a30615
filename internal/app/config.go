package app

import (
	_ "embed"
	"os"

	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/strcase"
)

//go:embed defaults.yaml
var defaults []byte

const envPrefix = "OTPGATE"

// Variables set on the trigger functions by the deployment template.
var envBindings = map[string]string{
	"modules.challenge.ratelimit.table": "RATE_LIMIT_TABLE",
	"mail.from":                         "SES_FROM_EMAIL",
	"aws.region":                        "AWS_REGION",
}

func envOptions() []config.Option {
	opts := []config.Option{config.WithEnv(envPrefix)}
	for key, env := range envBindings {
		opts = append(opts, config.WithEnvBinding(key, envPrefix+"_"+strcase.ToUpperSnake(key), env))
	}
	return opts
}

// loadFileConfig reads CONFIG_PATH on top of the embedded defaults.
func loadFileConfig() (config.Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	opts := append([]config.Option{config.WithDefaults("yaml", defaults)}, envOptions()...)
	return config.NewViper(path, opts...)
}

// loadEnvConfig uses the embedded defaults and the environment only.
func loadEnvConfig() (config.Config, error) {
	return config.NewViperFromBytes("yaml", defaults, envOptions()...)
}
