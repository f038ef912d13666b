package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	for _, key := range []string{"DATABASE_URL", "PORT", "HOST", "ALLOWED_ORIGINS", "DB_MAX_CONNS", "SHUTDOWN_TIMEOUT", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:3000" {
		t.Fatalf("expected default addr 0.0.0.0:3000, got %s", cfg.Addr())
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("expected all origins by default, got %v", cfg.AllowedOrigins)
	}
	if cfg.DBMaxConns != 4 || cfg.ShutdownTimeout != 5*time.Second || cfg.Debug {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/carteira")
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3002, http://localhost:3001")
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("DB_AUTO_SCHEMA", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBMaxConns != 10 || !cfg.DBAutoSchema || cfg.ShutdownTimeout != 2*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	want := []string{"http://localhost:3002", "http://localhost:3001"}
	if strings.Join(cfg.AllowedOrigins, "|") != strings.Join(want, "|") {
		t.Fatalf("expected origins %v, got %v", want, cfg.AllowedOrigins)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing database url", map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": ""}, "DATABASE_URL"},
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}, "STORE_DRIVER"},
		{"bad max conns", map[string]string{"STORE_DRIVER": "memory", "DB_MAX_CONNS": "zero"}, "DB_MAX_CONNS"},
		{"bad shutdown timeout", map[string]string{"STORE_DRIVER": "memory", "SHUTDOWN_TIMEOUT": "soon"}, "SHUTDOWN_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}
