package config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.CatalogSource != CatalogStatic || cfg.SessionBackend != SessionMemory {
		t.Fatalf("unexpected backends %+v", cfg)
	}
	if cfg.SessionTTL != 2*time.Hour || cfg.SessionCookie != "th_session" {
		t.Fatalf("unexpected session settings %+v", cfg)
	}
	if cfg.Redis.ReadTimeout != 3 || cfg.Redis.DialTimeout != 5 {
		t.Fatalf("unexpected redis defaults %+v", cfg.Redis)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("APP_ENV", "production")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.HTTPAddr != ":9000" || cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.SessionBackend != SessionRedis || cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected redis settings %+v", cfg)
	}
	if cfg.SessionTTL != 15*time.Minute {
		t.Fatalf("unexpected ttl %s", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.Environment() != Production {
		t.Fatalf("expected production, got %s", cfg.Environment())
	}
}

func TestFromEnvValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"csv without file", map[string]string{"CATALOG_SOURCE": "csv"}, "CATALOG_FILE"},
		{"unknown catalog", map[string]string{"CATALOG_SOURCE": "s3"}, "CATALOG_SOURCE"},
		{"redis without url", map[string]string{"SESSION_BACKEND": "redis"}, "REDIS_URL"},
		{"unknown backend", map[string]string{"SESSION_BACKEND": "disk"}, "SESSION_BACKEND"},
		{"zero ttl", map[string]string{"SESSION_TTL": "0s"}, "SESSION_TTL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	if ParseEnvironment("PRODUCTION") != Production {
		t.Fatalf("expected production")
	}
	if ParseEnvironment("staging") != Development {
		t.Fatalf("expected fallback to development")
	}
}
