package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/jwt"
)

type staticID string

func (s staticID) Generate() string { return string(s) }

type greeting struct {
	Name string `json:"name"`
}

func (greeting) Message() string { return "hello" }

func newTestRouter(now time.Time) *Router {
	return NewRouter(Config{
		UUID:        staticID("cid-1"),
		Inspector:   jwt.NewInspector(clock.NewFixed(now)),
		Instrument:  instrument.NewNoop(),
		ServiceName: "otpgate",
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, header map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("response is not JSON: %s", rec.Body.String())
		}
	}
	return rec, out
}

func TestRouterSuccessAndError(t *testing.T) {
	r := newTestRouter(time.Now())
	r.POST("/ok", func(req *Request) (any, error) {
		var in greeting
		if err := req.DecodeBody(&in); err != nil {
			return nil, err
		}
		return in, nil
	})
	r.POST("/limited", func(*Request) (any, error) {
		return nil, goerror.NewBusiness("Too many OTP requests. Please try again later.", goerror.CodeTooManyRequest)
	})
	r.POST("/boom", func(*Request) (any, error) {
		return nil, errors.New("raw")
	})

	t.Run("ok", func(t *testing.T) {
		rec, out := do(t, r, http.MethodPost, "/ok", `{"name":"ana"}`, nil)
		if rec.Code != http.StatusOK || out["message"] != "hello" {
			t.Fatalf("status=%d body=%v", rec.Code, out)
		}
		if rec.Header().Get(instrument.CorrelationHeader) != "cid-1" {
			t.Fatalf("correlation header missing")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		rec, _ := do(t, r, http.MethodPost, "/ok", `{"name":"ana","x":1}`, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("business error", func(t *testing.T) {
		rec, out := do(t, r, http.MethodPost, "/limited", ``, nil)
		if rec.Code != http.StatusTooManyRequests || out["message"] != "Too many OTP requests. Please try again later." {
			t.Fatalf("status=%d body=%v", rec.Code, out)
		}
	})

	t.Run("untyped error", func(t *testing.T) {
		rec, out := do(t, r, http.MethodPost, "/boom", ``, nil)
		if rec.Code != http.StatusInternalServerError || out["message"] != "Internal server error" {
			t.Fatalf("status=%d body=%v", rec.Code, out)
		}
	})

	t.Run("health", func(t *testing.T) {
		rec, _ := do(t, r, http.MethodGet, "/health", ``, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestRouterRecoversPanic(t *testing.T) {
	r := newTestRouter(time.Now())
	r.GET("/panic", func(*Request) (any, error) { panic("kaboom") })

	rec, out := do(t, r, http.MethodGet, "/panic", ``, nil)

	if rec.Code != http.StatusInternalServerError || out["message"] != "Internal server error" {
		t.Fatalf("status=%d body=%v", rec.Code, out)
	}
}

func TestBearer(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r := newTestRouter(now)
	r.GET("/me", func(req *Request) (any, error) {
		return map[string]string{"user": jwt.GetAuth(req.Context()).Claims.User()}, nil
	}, r.Bearer())

	token := func(use string, exp time.Time) string {
		tok, err := libJWT.NewWithClaims(libJWT.SigningMethodHS256, jwt.Claims{
			RegisteredClaims: libJWT.RegisteredClaims{ExpiresAt: libJWT.NewNumericDate(exp)},
			TokenUse:         use,
			Username:         "a@b.co",
		}).SignedString([]byte("k"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return tok
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "id token", header: "Bearer " + token("id", now.Add(time.Hour)), want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + token("access", now.Add(-time.Minute)), want: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + token("access", now.Add(time.Hour)), want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, r, http.MethodGet, "/me", ``, map[string]string{"Authorization": tt.header})
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMaintenance(t *testing.T) {
	r := NewRouter(Config{Config: maintenanceConfig{"/ok"}, Instrument: instrument.NewNoop()})
	r.GET("/ok", func(*Request) (any, error) { return map[string]string{}, nil })

	rec, _ := do(t, r, http.MethodGet, "/ok", ``, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

type maintenanceConfig []string

func (maintenanceConfig) Close() error { return nil }
func (maintenanceConfig) GetSecond(string) time.Duration { return 0 }
func (maintenanceConfig) GetMinute(string) time.Duration { return 0 }
func (maintenanceConfig) GetInt(string) int { return 0 }
func (maintenanceConfig) GetInt64(string) int64 { return 0 }
func (maintenanceConfig) GetFloat64(string) float64 { return 0 }
func (maintenanceConfig) GetBool(string) bool { return false }
func (maintenanceConfig) GetString(string) string { return "" }
func (maintenanceConfig) GetMap(string) map[string]string { return nil }
func (m maintenanceConfig) GetArray(key string) []string {
	if key == "http.maintenance.endpoints" {
		return m
	}
	return nil
}
