package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthController_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		database   Probe
		redis      Probe
		wantStatus int
		want       HealthResponse
	}{
		{name: "all up", database: up, redis: up, wantStatus: http.StatusOK,
			want: HealthResponse{Status: "ok", Database: "connected", Redis: "connected"}},
		{name: "redis disabled", database: up, wantStatus: http.StatusOK,
			want: HealthResponse{Status: "ok", Database: "connected", Redis: "disabled"}},
		{name: "redis down", database: up, redis: down, wantStatus: http.StatusOK,
			want: HealthResponse{Status: "ok", Database: "connected", Redis: "disconnected"}},
		{name: "database down", database: down, redis: up, wantStatus: http.StatusServiceUnavailable,
			want: HealthResponse{Status: "degraded", Database: "disconnected", Redis: "connected"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health", NewHealthController(tt.database, tt.redis).Check)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var got HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Timestamp == "" {
				t.Error("expected a timestamp")
			}
			got.Timestamp = ""
			if got != tt.want {
				t.Errorf("body = %+v, want %+v", got, tt.want)
			}
		})
	}
}
