package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var allKeys = []string{
	"NAYIDISHA_HTTP_PORT",
	"NAYIDISHA_SQLITE_DSN",
	"NAYIDISHA_SESSION_SECRET",
	"NAYIDISHA_SESSION_TTL",
	"NAYIDISHA_SECURE_COOKIES",
	"NAYIDISHA_REDIS_URL",
	"NAYIDISHA_CACHE_TTL",
	"NAYIDISHA_CATALOG_FILE",
	"NAYIDISHA_SIGNIN_RATE",
	"NAYIDISHA_LOG_LEVEL",
}

func clearEnvironment(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		// Setenv registers restoration of the previous value before we unset it.
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearEnvironment(t)

		const secret = "super-secret"
		t.Setenv("NAYIDISHA_SESSION_SECRET", secret)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:nayidisha.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.SessionSecret != secret {
			t.Fatalf("expected session secret to be %q, got %q", secret, cfg.SessionSecret)
		}
		if !cfg.SecureCookies {
			t.Fatalf("expected secure cookies by default")
		}
		if cfg.CacheTTL != time.Minute {
			t.Fatalf("expected default cache TTL 1m, got %s", cfg.CacheTTL)
		}
		if cfg.RedisURL != "" || cfg.CatalogFile != "" {
			t.Fatalf("expected optional integrations to be disabled, got %#v", cfg)
		}
		if cfg.LogLevel != "info" {
			t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
		}
		if cfg.SigninRate != 10 {
			t.Fatalf("expected default signin rate 10, got %d", cfg.SigninRate)
		}
	})

	t.Run("errors when required values are missing", func(t *testing.T) {
		clearEnvironment(t)

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when required values are missing")
		}
		expected := "required environment variables are not set: NAYIDISHA_SESSION_SECRET"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("reports every invalid value at once", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("NAYIDISHA_SESSION_SECRET", "secret")
		t.Setenv("NAYIDISHA_HTTP_PORT", "http")
		t.Setenv("NAYIDISHA_CACHE_TTL", "soon")
		t.Setenv("NAYIDISHA_SIGNIN_RATE", "-1")
		t.Setenv("NAYIDISHA_LOG_LEVEL", "loud")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "environment variables have invalid values: NAYIDISHA_HTTP_PORT, NAYIDISHA_CACHE_TTL, NAYIDISHA_SIGNIN_RATE, NAYIDISHA_LOG_LEVEL"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("parses duration, boolean, and numeric fields", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("NAYIDISHA_SESSION_SECRET", "secret-value")
		t.Setenv("NAYIDISHA_HTTP_PORT", "9090")
		t.Setenv("NAYIDISHA_SQLITE_DSN", "file:/tmp/nayidisha.db")
		t.Setenv("NAYIDISHA_SESSION_TTL", "12h")
		t.Setenv("NAYIDISHA_SECURE_COOKIES", "false")
		t.Setenv("NAYIDISHA_REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("NAYIDISHA_CACHE_TTL", "30s")
		t.Setenv("NAYIDISHA_CATALOG_FILE", "/etc/nayidisha/catalog.json")
		t.Setenv("NAYIDISHA_SIGNIN_RATE", "0")
		t.Setenv("NAYIDISHA_LOG_LEVEL", "DEBUG")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.SessionTTL != 12*time.Hour {
			t.Fatalf("expected session TTL 12h, got %s", cfg.SessionTTL)
		}
		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:/tmp/nayidisha.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.SecureCookies {
			t.Fatalf("expected secure cookies to be disabled")
		}
		if cfg.RedisURL != "redis://localhost:6379/0" {
			t.Fatalf("unexpected redis url: %q", cfg.RedisURL)
		}
		if cfg.CacheTTL != 30*time.Second {
			t.Fatalf("expected cache TTL 30s, got %s", cfg.CacheTTL)
		}
		if cfg.CatalogFile != "/etc/nayidisha/catalog.json" {
			t.Fatalf("unexpected catalog file: %q", cfg.CatalogFile)
		}
		if cfg.LogLevel != "debug" {
			t.Fatalf("expected log level debug, got %q", cfg.LogLevel)
		}
		if cfg.SigninRate != 0 {
			t.Fatalf("expected signin rate limiting to be disabled, got %d", cfg.SigninRate)
		}
	})
}

func TestLoadWithDotEnv(t *testing.T) {
	t.Run("reads values from the dotenv file", func(t *testing.T) {
		clearEnvironment(t)
		path := filepath.Join(t.TempDir(), ".env")
		body := "NAYIDISHA_SESSION_SECRET=from-file\nNAYIDISHA_HTTP_PORT=7070\n"
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("failed to write dotenv file: %v", err)
		}
		t.Setenv("NAYIDISHA_HTTP_PORT", "6060")

		cfg, err := LoadWithDotEnv(path)
		if err != nil {
			t.Fatalf("LoadWithDotEnv returned error: %v", err)
		}
		if cfg.SessionSecret != "from-file" {
			t.Fatalf("expected secret from file, got %q", cfg.SessionSecret)
		}
		if cfg.HTTPPort != 6060 {
			t.Fatalf("expected environment to win over the file, got %d", cfg.HTTPPort)
		}
	})

	t.Run("skips missing files", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("NAYIDISHA_SESSION_SECRET", "secret")

		if _, err := LoadWithDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
			t.Fatalf("expected missing dotenv file to be ignored, got %v", err)
		}
	})
}
