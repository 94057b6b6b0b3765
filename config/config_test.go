package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Redis.URL != "" {
		t.Errorf("Redis.URL = %q, want empty", cfg.Redis.URL)
	}
	if cfg.Lock.TTL != 10*time.Second {
		t.Errorf("Lock.TTL = %v, want 10s", cfg.Lock.TTL)
	}
	if cfg.Email.FromName != "Commitly" {
		t.Errorf("Email.FromName = %q", cfg.Email.FromName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("STREAK_LOCK_WAIT", "750ms")
	t.Setenv("EMAIL_WORKER_ENABLED", "false")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Redis.URL != "redis://cache:6379/1" {
		t.Errorf("Redis.URL = %q", cfg.Redis.URL)
	}
	if cfg.Lock.Wait != 750*time.Millisecond {
		t.Errorf("Lock.Wait = %v, want 750ms", cfg.Lock.Wait)
	}
	if cfg.Email.WorkerEnabled {
		t.Error("expected email worker to be disabled")
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.Database.MaxOpenConns)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "production with default secret", mutate: func(c *Config) { c.Server.Environment = "production" }, wantErr: true},
		{name: "production with secret", mutate: func(c *Config) {
			c.Server.Environment = "production"
			c.JWT.Secret = "s3cret"
		}},
		{name: "zero access expiry", mutate: func(c *Config) { c.JWT.AccessTokenExpiry = 0 }, wantErr: true},
		{name: "zero batch size", mutate: func(c *Config) { c.Email.BatchSize = 0 }, wantErr: true},
		{name: "zero batch size with worker off", mutate: func(c *Config) {
			c.Email.BatchSize = 0
			c.Email.WorkerEnabled = false
		}},
		{name: "lock wait exceeds ttl", mutate: func(c *Config) { c.Lock.Wait = time.Minute }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
