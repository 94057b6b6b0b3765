package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/entrypoint/dto"
)

type stubTokens struct {
	adapter.TokenService
	valid  string
	userID uuid.UUID
}

func (s stubTokens) VerifyAccess(_ context.Context, token string) (*adapter.Claims, error) {
	if token != s.valid {
		return nil, errors.New("bad token")
	}
	return &adapter.Claims{UserID: s.userID}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	auth := NewAuthenticator(stubTokens{valid: "good", userID: userID})

	engine := gin.New()
	engine.GET("/me", auth.Authenticate(), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   domainerror.AuthErrorCode
	}{
		{name: "valid", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer good", wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "empty token", header: "Bearer  ", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "basic scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "bad token", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if rec.Body.String() != userID.String() {
					t.Errorf("body = %q, want user id", rec.Body.String())
				}
				return
			}

			var body dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != string(tt.wantCode) || body.Error == "" {
				t.Errorf("body = %+v, want code %s", body, tt.wantCode)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d rejected within burst", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("fourth request allowed, want rejection")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("other client rejected")
	}

	now = now.Add(20 * time.Second)
	if !rl.allow("10.0.0.1") {
		t.Error("expected one token back after a third of the window")
	}

	now = now.Add(2 * time.Minute)
	rl.sweep()
	if len(rl.buckets) != 0 {
		t.Errorf("sweep kept %d idle clients", len(rl.buckets))
	}
}

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	engine := gin.New()
	engine.POST("/login", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 2)
	for i := range codes {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes[i] = rec.Code
	}

	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [204 429]", codes)
	}
}
