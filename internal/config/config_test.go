package config

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("MINIO_ACCESS_KEY_ID", "minio")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "minio-secret")
}

func TestLoad_DefaultsWithRequiredEnv(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Fatalf("unexpected api port %d", cfg.API.Port)
	}
	if cfg.Render.Provider != "rod" {
		t.Fatalf("unexpected default provider %q", cfg.Render.Provider)
	}
	if cfg.Render.TimeoutSeconds != 60 {
		t.Fatalf("unexpected default timeout %d", cfg.Render.TimeoutSeconds)
	}
	if cfg.Database.DSN() == "" {
		t.Fatal("empty dsn")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RENDER_PROVIDER", "chromedp")
	t.Setenv("RENDER_BROWSER_PATH", "/usr/bin/chromium")
	t.Setenv("API_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Render.Provider != "chromedp" {
		t.Fatalf("provider override lost: %q", cfg.Render.Provider)
	}
	if cfg.Render.BrowserPath != "/usr/bin/chromium" {
		t.Fatalf("browser path override lost: %q", cfg.Render.BrowserPath)
	}
	if cfg.API.Port != 9090 {
		t.Fatalf("port override lost: %d", cfg.API.Port)
	}
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RENDER_PROVIDER", "puppeteer")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown render provider")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("MINIO_ACCESS_KEY_ID", "minio")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "minio-secret")
	t.Setenv("AUTH_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing jwt secret")
	}
}
