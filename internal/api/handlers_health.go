package api

import (
	"net/http"

	"github.com/jbrokmeier/tagungsplan/internal/models"
	"github.com/jbrokmeier/tagungsplan/internal/store"
)

type HealthHandler struct {
	db *store.DB
}

func NewHealthHandler(db *store.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{Status: "ok"}

	count, err := h.db.UserCount()
	if err != nil {
		resp.Status = "degraded"
		resp.Message = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.UserCount = count
	writeJSON(w, http.StatusOK, resp)
}
