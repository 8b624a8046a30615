package signup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpgate/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/jwt"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

type passIdempotency struct{}

func (passIdempotency) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	return fn(ctx)
}

func TestNew(t *testing.T) {
	// Arrange
	cfg, err := config.NewViperFromBytes("yaml", []byte("cognito: {client_id: c1}"))
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator error = %v", err)
	}
	clk := clock.New()
	r := router.NewRouter(router.Config{Instrument: instrument.NewNoop()})

	dep := Dependency{
		Cognito:     cip.New(cip.Options{Region: "us-east-1"}),
		Messaging:   messaging.Noop{},
		Idempotency: passIdempotency{},
		Goroutine:   goroutine.NewManager(1, time.Second),
		Router:      r,
		Inspector:   jwt.NewInspector(clk),
		Clock:       clk,
		Config:      cfg,
		Instrument:  instrument.NewNoop(),
		Validator:   v,
	}

	// Act
	err = New(dep)

	// Assert
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Validation fails before the provider is reached.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup/validate",
		strings.NewReader(`{"step":"password","draft":{"password":"123"}}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator error = %v", err)
	}

	if err := New(Dependency{Validator: v}); err == nil {
		t.Fatalf("New() should reject missing dependencies")
	}
}
