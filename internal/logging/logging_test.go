package logging_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwtpizza/pizza-service/internal/logging"
)

func TestSanitizeRedactsSensitiveFields(t *testing.T) {
	input := map[string]any{
		"email":    "diner@test.com",
		"password": "secret",
		"nested": map[string]any{
			"token":  "abc",
			"apiKey": "xyz",
			"safe":   "keep",
		},
		"list": []any{
			map[string]any{"authorization": "Bearer abc", "name": "ok"},
		},
	}

	sanitized := logging.Sanitize(input).(map[string]any)
	require.Equal(t, "diner@test.com", sanitized["email"])
	require.Equal(t, "***REDACTED***", sanitized["password"])

	nested := sanitized["nested"].(map[string]any)
	require.Equal(t, "***REDACTED***", nested["token"])
	require.Equal(t, "***REDACTED***", nested["apiKey"])
	require.Equal(t, "keep", nested["safe"])

	item := sanitized["list"].([]any)[0].(map[string]any)
	require.Equal(t, "***REDACTED***", item["authorization"])
	require.Equal(t, "ok", item["name"])
}

func TestSanitizeBody(t *testing.T) {
	body := []byte(`{"email":"diner@test.com","password":"secret"}`)
	sanitized := logging.SanitizeBody(body)
	require.Contains(t, sanitized, "diner@test.com")
	require.NotContains(t, sanitized, "secret")
	require.Contains(t, sanitized, "***REDACTED***")
}

func TestSanitizeBodyNonJSON(t *testing.T) {
	body := []byte(`prefix "password": "secret" suffix`)
	sanitized := logging.SanitizeBody(body)
	require.NotContains(t, sanitized, "secret")

	require.Empty(t, logging.SanitizeBody(nil))
}
