package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jbrokmeier/tagungsplan/internal/store"
)

type contextKey string

const (
	requestIDKey contextKey = "requestID"
	usernameKey  contextKey = "username"
)

// sessionCookie is the cookie carrying the login token.
const sessionCookie = "session"

// RequestID adds a unique request ID to each request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()[:8]
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// Logger logs request method, path, status, and duration.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// Recovery catches panics and returns a 500.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered", "error", err, "path", r.URL.Path)
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession resolves the session cookie to a username and stores it in
// the request context. Requests without a valid session get a 401 with the
// message the frontend expects.
func RequireSession(sessions *store.AuthSessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookie)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Nicht eingeloggt.")
				return
			}
			sess, err := sessions.Get(cookie.Value)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if sess == nil {
				writeError(w, http.StatusUnauthorized, "Nicht eingeloggt.")
				return
			}
			ctx := context.WithValue(r.Context(), usernameKey, sess.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// usernameFrom returns the authenticated username set by RequireSession.
func usernameFrom(r *http.Request) string {
	username, _ := r.Context().Value(usernameKey).(string)
	return username
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
