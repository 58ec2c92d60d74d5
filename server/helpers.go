package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jwtpizza/pizza-service/authz"
)

// statusCodeError carries an HTTP status alongside its message.
type statusCodeError struct {
	code    int
	message string
}

func (e *statusCodeError) Error() string {
	return e.message
}

func statusError(code int, message string) error {
	return &statusCodeError{code: code, message: message}
}

// handlerFunc is an http.HandlerFunc that may fail; the returned error is
// mapped to a JSON error response.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.writeError(w, r, err)
		}
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var sce *statusCodeError
	switch {
	case errors.As(err, &sce):
		status = sce.code
		message = sce.message
	case errors.Is(err, authz.UnauthenticatedErr):
		status = http.StatusUnauthorized
		message = "unauthorized"
	case errors.Is(err, authz.ForbiddenErr):
		status = http.StatusForbidden
		message = "unauthorized"
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error().
			Str("type", "exception").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Err(err).
			Msg("Unhandled exception")
	}

	writeJSON(w, status, map[string]any{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return statusError(http.StatusBadRequest, "invalid JSON body")
	}
	return nil
}

// bearerToken extracts the bearer credential from the Authorization header,
// empty when absent or malformed.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func pathInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, statusError(http.StatusBadRequest, "invalid "+name)
	}
	return value, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return value
}
