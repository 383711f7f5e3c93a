package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jbrokmeier/tagungsplan/internal/models"
	"github.com/jbrokmeier/tagungsplan/internal/store"
)

// AuthHandler implements registration, login and the saved-program API.
// User-facing messages are German, matching the frontend.
type AuthHandler struct {
	users      *store.UserStore
	sessions   *store.AuthSessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewAuthHandler(users *store.UserStore, sessions *store.AuthSessionStore, sessionTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, sessionTTL: sessionTTL, logger: logger}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Ungültige Daten.")
		return
	}
	username := strings.TrimSpace(req.Username)

	if username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Benutzername und Passwort erforderlich.")
		return
	}
	if len(username) < 3 || len(username) > 30 {
		writeError(w, http.StatusBadRequest, "Benutzername muss zwischen 3 und 30 Zeichen lang sein.")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Passwort muss mindestens 8 Zeichen lang sein.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.users.Create(username, string(hash)); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "Benutzername bereits vergeben.")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registrierung erfolgreich."})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Ungültige Daten.")
		return
	}
	username := strings.TrimSpace(req.Username)

	if username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Benutzername und Passwort erforderlich.")
		return
	}

	user, err := h.users.Get(username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Ungültige Anmeldedaten.")
		return
	}

	sess, err := h.sessions.Create(username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.users.RecordLogin(username); err != nil {
		h.logger.Warn("record login failed", "username", username, "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, models.MeResponse{
		Message:       "Login erfolgreich.",
		SavedSessions: user.SavedSessions,
		SavedPosters:  user.SavedPosters,
		SavedTalks:    user.SavedTalks,
	})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := h.sessions.Delete(cookie.Value); err != nil {
			h.logger.Warn("delete session failed", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout erfolgreich."})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	username := usernameFrom(r)
	user, err := h.users.Get(username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		// Account deleted while the session was still live.
		writeError(w, http.StatusUnauthorized, "Benutzer nicht gefunden.")
		return
	}
	writeJSON(w, http.StatusOK, models.MeResponse{
		Username:      username,
		SavedSessions: user.SavedSessions,
		SavedPosters:  user.SavedPosters,
		SavedTalks:    user.SavedTalks,
	})
}

// SaveProgram handles POST /api/save_program.
func (h *AuthHandler) SaveProgram(w http.ResponseWriter, r *http.Request) {
	var req models.SaveProgramRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Ungültige Daten.")
		return
	}
	// Sessions is required; posters and talks default to empty lists.
	if req.Sessions == nil {
		writeError(w, http.StatusBadRequest, "Ungültige Daten.")
		return
	}
	posters := []string{}
	if req.Posters != nil {
		posters = *req.Posters
	}
	talks := []string{}
	if req.Talks != nil {
		talks = *req.Talks
	}

	if err := h.users.SaveSelections(usernameFrom(r), req.Sessions, posters, talks); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Programm gespeichert."})
}
