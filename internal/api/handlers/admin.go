package handlers

import (
	"net/http"
	"strconv"

	"github.com/ascleon/ascleon-backend/internal/querylog"
)

type AdminHandler struct {
	logs *querylog.Service
}

func NewAdminHandler(logs *querylog.Service) *AdminHandler {
	return &AdminHandler{logs: logs}
}

func (h *AdminHandler) ListQueries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	entries, err := h.logs.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"queries": entries, "count": len(entries)})
}
