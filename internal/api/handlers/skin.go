package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ascleon/ascleon-backend/internal/auth"
	"github.com/ascleon/ascleon-backend/internal/skincheck"
)

type SkinHandler struct {
	svc *skincheck.Service
}

func NewSkinHandler(svc *skincheck.Service) *SkinHandler {
	return &SkinHandler{svc: svc}
}

type skinRequest struct {
	Image    string `json:"image"`
	Language string `json:"language"`
}

func (h *SkinHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req skinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Image == "" {
		writeError(w, http.StatusBadRequest, "image is required")
		return
	}

	userID := auth.UserIDFromContext(r.Context())

	triage, err := h.svc.Analyze(r.Context(), skincheck.AnalyzeRequest{
		Image:    req.Image,
		Language: req.Language,
		UserID:   userID,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to analyze image")
		return
	}

	writeJSON(w, http.StatusOK, triage)
}
