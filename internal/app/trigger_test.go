package app

import (
	"context"
	"encoding/json"
	"testing"
)

func TestLoadEnvConfig(t *testing.T) {
	// Arrange
	t.Setenv("RATE_LIMIT_TABLE", "prod-otp-rate-limits")
	t.Setenv("SES_FROM_EMAIL", "no-reply@example.com")
	t.Setenv("OTPGATE_MODULES_CHALLENGE_RATELIMIT_MAX_ATTEMPTS", "3")

	// Act
	cfg, err := loadEnvConfig()

	// Assert
	if err != nil {
		t.Fatalf("loadEnvConfig() error = %v", err)
	}
	if got := cfg.GetString("modules.challenge.ratelimit.table"); got != "prod-otp-rate-limits" {
		t.Fatalf("table = %q", got)
	}
	if got := cfg.GetString("mail.from"); got != "no-reply@example.com" {
		t.Fatalf("mail.from = %q", got)
	}
	if got := cfg.GetInt("modules.challenge.ratelimit.max_attempts"); got != 3 {
		t.Fatalf("max_attempts = %d", got)
	}
	if got := cfg.GetMinute("modules.challenge.otp.ttl_minutes").Minutes(); got != 5 {
		t.Fatalf("ttl = %v", got)
	}
}

func TestNewTriggerHandlesDefine(t *testing.T) {
	// Arrange
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("OTPGATE_AWS_ACCESS_KEY", "test")
	t.Setenv("OTPGATE_AWS_SECRET_KEY", "test")
	t.Setenv("OTPGATE_SMS_DRIVER", "log")
	ctx := context.Background()

	trigger, err := NewTrigger(ctx)
	if err != nil {
		t.Fatalf("NewTrigger() error = %v", err)
	}
	t.Cleanup(func() { _ = trigger.Close(ctx) })

	event := json.RawMessage(`{
		"version": "1",
		"triggerSource": "DefineAuthChallenge_Authentication",
		"region": "us-east-1",
		"userPoolId": "us-east-1_pool",
		"userName": "jane",
		"request": {"userAttributes": {}, "session": []},
		"response": {}
	}`)

	// Act
	out, err := trigger.Handler.Handle(ctx, event)

	// Assert
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	body, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got struct {
		Response struct {
			ChallengeName      string `json:"challengeName"`
			IssueTokens        bool   `json:"issueTokens"`
			FailAuthentication bool   `json:"failAuthentication"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Response.ChallengeName != "CUSTOM_CHALLENGE" || got.Response.IssueTokens || got.Response.FailAuthentication {
		t.Fatalf("response = %+v", got.Response)
	}
}
