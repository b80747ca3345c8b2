package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the Nayi Disha service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	SessionSecret string
	SessionTTL    time.Duration
	SecureCookies bool
	RedisURL      string
	CacheTTL      time.Duration
	CatalogFile   string
	SigninRate    int
	LogLevel      string
}

const envPrefix = "NAYIDISHA_"

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults. Every missing or malformed variable is
// collected so operators see the complete list in a single error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:      8080,
		SQLiteDSN:     "file:nayidisha.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		SessionTTL:    24 * time.Hour,
		SecureCookies: true,
		CacheTTL:      time.Minute,
		SigninRate:    10,
		LogLevel:      "info",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 4)

	if portValue := lookup("HTTP_PORT"); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, envPrefix+"HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := lookup("SQLITE_DSN"); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := lookup("SESSION_SECRET"); secret == "" {
		missing = append(missing, envPrefix+"SESSION_SECRET")
	} else {
		cfg.SessionSecret = secret
	}

	if ttlValue := lookup("SESSION_TTL"); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, envPrefix+"SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if secureValue := lookup("SECURE_COOKIES"); secureValue != "" {
		secure, err := strconv.ParseBool(secureValue)
		if err != nil {
			invalid = append(invalid, envPrefix+"SECURE_COOKIES")
		} else {
			cfg.SecureCookies = secure
		}
	}

	cfg.RedisURL = lookup("REDIS_URL")

	if ttlValue := lookup("CACHE_TTL"); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl < 0 {
			invalid = append(invalid, envPrefix+"CACHE_TTL")
		} else {
			cfg.CacheTTL = ttl
		}
	}

	cfg.CatalogFile = lookup("CATALOG_FILE")

	if rateValue := lookup("SIGNIN_RATE"); rateValue != "" {
		rate, err := strconv.Atoi(rateValue)
		if err != nil || rate < 0 {
			invalid = append(invalid, envPrefix+"SIGNIN_RATE")
		} else {
			cfg.SigninRate = rate
		}
	}

	if level := lookup("LOG_LEVEL"); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "warning", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			invalid = append(invalid, envPrefix+"LOG_LEVEL")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// LoadWithDotEnv reads variables from the given dotenv files (".env" when
// none are named) into the process environment and then calls Load. Missing
// files are skipped and variables already set in the environment win.
func LoadWithDotEnv(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", file, err)
		}
	}
	return Load()
}

func lookup(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}
