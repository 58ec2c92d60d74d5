// Package logging configures zerolog for the service and scrubs secrets
// from anything that ends up in a log line.
package logging

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/config"
)

// New builds the service logger from config.
func New(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

var sensitiveKeys = []string{"password", "token", "jwt", "secret", "apikey", "authorization"}

var passwordPattern = regexp.MustCompile(`("password"\s*:\s*)"[^"]*"`)

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// Sanitize recursively replaces the values of sensitive fields so request
// and response bodies can be logged without leaking credentials.
func Sanitize(data any) any {
	switch v := data.(type) {
	case map[string]any:
		sanitized := make(map[string]any, len(v))
		for key, value := range v {
			if isSensitiveKey(key) {
				sanitized[key] = "***REDACTED***"
			} else {
				sanitized[key] = Sanitize(value)
			}
		}
		return sanitized
	case []any:
		sanitized := make([]any, len(v))
		for i, item := range v {
			sanitized[i] = Sanitize(item)
		}
		return sanitized
	default:
		return data
	}
}

// SanitizeBody scrubs a raw JSON body for logging. Bodies that are not
// valid JSON get a regex pass over password fields only.
func SanitizeBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return passwordPattern.ReplaceAllString(string(body), `$1"***REDACTED***"`)
	}

	sanitized, err := json.Marshal(Sanitize(parsed))
	if err != nil {
		return ""
	}
	return string(sanitized)
}
