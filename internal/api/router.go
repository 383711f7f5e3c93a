package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jbrokmeier/tagungsplan/internal/store"
)

// NewRouter creates the Chi router with all routes and middleware. The
// program JSON and the frontend are plain static files under staticDir; the
// API only manages accounts and saved selections.
func NewRouter(
	db *store.DB,
	users *store.UserStore,
	sessions *store.AuthSessionStore,
	staticDir string,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	authH := NewAuthHandler(users, sessions, sessionTTL, logger)
	healthH := NewHealthHandler(db)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthH.Health)
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession(sessions))
			r.Get("/me", authH.Me)
			r.Post("/save_program", authH.SaveProgram)
		})
	})

	// Everything else is static content, including the enriched program
	// JSON the batch tools maintain.
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))

	return r
}
