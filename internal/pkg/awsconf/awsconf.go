// Package awsconf loads the aws.Config shared by every AWS client in the
// process (DynamoDB, SNS, SES, Cognito).
package awsconf

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Options configures the AWS SDK.
type Options struct {
	Region string
	// Endpoint overrides every service endpoint (LocalStack, DynamoDB Local).
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
	// MaxAttempts bounds SDK retries. Zero keeps the SDK default.
	MaxAttempts int
}

// Load resolves credentials and region from opts, falling back to the
// default chain (environment, shared config, IAM role of the Lambda).
func Load(ctx context.Context, opts Options) (aws.Config, error) {
	var cfgOpts []func(*config.LoadOptions) error

	switch {
	case opts.Region != "":
		cfgOpts = append(cfgOpts, config.WithRegion(opts.Region))
	case opts.Endpoint != "":
		cfgOpts = append(cfgOpts, config.WithRegion("us-east-1"))
	}

	if opts.AccessKey != "" || opts.SecretKey != "" {
		cfgOpts = append(cfgOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		))
	}

	if opts.Endpoint != "" {
		cfgOpts = append(cfgOpts, config.WithBaseEndpoint(opts.Endpoint))
	}

	if opts.MaxAttempts > 0 {
		cfgOpts = append(cfgOpts, config.WithRetryMaxAttempts(opts.MaxAttempts))
	}

	return config.LoadDefaultConfig(ctx, cfgOpts...)
}

// WithTimeout bounds a single SDK call. Cognito aborts a trigger after five
// seconds, so every outbound call from a trigger carries its own deadline.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// IsRetryable reports whether the SDK classifies err as transient.
func IsRetryable(err error) bool {
	return err != nil && retry.IsErrorRetryables(retry.DefaultRetryables).IsErrorRetryable(err) == aws.TrueTernary
}
