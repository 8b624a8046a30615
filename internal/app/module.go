package app

import (
	"log/slog"
	"os"

	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/shandysiswandi/otpgate/internal/signup"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.signup.enabled") {
		if err := signup.New(signup.Dependency{
			Cognito:     cip.NewFromConfig(a.awsConfig),
			Messaging:   a.messaging,
			Idempotency: a.idemp,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Inspector:   a.inspector,
			Clock:       a.clock,
			Config:      a.config,
			Instrument:  a.ins,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module signup", "error", err)
			os.Exit(1)
		}
	}
}
