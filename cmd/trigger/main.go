package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/shandysiswandi/otpgate/internal/app"
)

func main() {
	ctx := context.Background()

	trigger, err := app.NewTrigger(ctx)
	if err != nil {
		slog.Error("failed to init trigger", "error", err)
		os.Exit(1)
	}

	lambda.StartWithOptions(trigger.Handler.Handle,
		lambda.WithContext(ctx),
		lambda.WithEnableSIGTERM(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
			defer cancel()
			if err := trigger.Close(ctx); err != nil {
				slog.Error("failed to close trigger", "error", err)
			}
		}),
	)
}
