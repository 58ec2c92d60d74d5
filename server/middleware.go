package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/jwtpizza/pizza-service/authz"
	"github.com/jwtpizza/pizza-service/internal/logging"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyAuthUser stores the resolved *authz.Context for the request
const ContextKeyAuthUser ContextKey = "auth_user"

// maxLoggedBody caps how much of a request body is buffered for logging.
const maxLoggedBody = 64 * 1024

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

func (s *Server) apiMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return []func(http.HandlerFunc) http.HandlerFunc{
		s.RecoverMiddleware,
		s.CorsMiddleware,
		s.LoggingMiddleware,
		s.MetricsMiddleware,
		s.SetAuthUserMiddleware,
	}
}

// SetAuthUserMiddleware validates a bearer credential when one is present
// and attaches the resolved principal to the request context. It runs on
// every route, public ones included, so downstream logic always knows who
// the caller is. Validation failure leaves the request anonymous; the
// endpoint decides whether that is acceptable.
func (s *Server) SetAuthUserMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token != "" {
			if authUser, err := s.sessions.Validate(r.Context(), token); err == nil {
				if s.metrics != nil {
					s.metrics.TrackActiveUser(authUser.ID)
				}
				ctx := context.WithValue(r.Context(), ContextKeyAuthUser, authUser)
				r = r.WithContext(ctx)
			}
		}
		next(w, r)
	}
}

// authUser returns the resolved principal for the request, nil when the
// request is anonymous.
func authUser(r *http.Request) *authz.Context {
	authUser, _ := r.Context().Value(ContextKeyAuthUser).(*authz.Context)
	return authUser
}

func (s *Server) CorsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

// responseRecorder captures the status code and body written by a handler.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (rec *responseRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *responseRecorder) Write(b []byte) (int, error) {
	if rec.body.Len() < maxLoggedBody {
		rec.body.Write(b)
	}
	return rec.ResponseWriter.Write(b)
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		var requestBody []byte
		if r.Body != nil {
			requestBody, _ = io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
			r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(requestBody), r.Body))
		}

		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		s.logger.Info().
			Str("type", "general").
			Str("method", r.Method).
			Str("path", r.URL.RequestURI()).
			Int("statusCode", rec.status).
			Bool("hasAuth", r.Header.Get("Authorization") != "").
			Int64("latency", time.Since(startTime).Milliseconds()).
			Str("requestBody", logging.SanitizeBody(requestBody)).
			Str("responseBody", logging.SanitizeBody(rec.body.Bytes())).
			Msg("HTTP request")
	}
}

func (s *Server) MetricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next(w, r)
			return
		}

		startTime := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.TrackRequest(r.Method, time.Since(startTime))

		// login attempts are PUT /api/auth
		if r.Method == http.MethodPut && r.URL.Path == "/api/auth" {
			s.metrics.TrackAuthAttempt(rec.status == http.StatusOK)
		}
	}
}

func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().
					Str("type", "exception").
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", rec).
					Msg("Recovered from panic")
				writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "internal server error"})
			}
		}()
		next(w, r)
	}
}
