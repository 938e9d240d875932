package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ascleon/ascleon-backend/internal/auth"
	"github.com/ascleon/ascleon-backend/internal/rag"
)

type QueryHandler struct {
	svc *rag.QueryService
}

func NewQueryHandler(svc *rag.QueryService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

type queryRequest struct {
	Question  string `json:"question"`
	Language  string `json:"language"`
	QueryType string `json:"query_type"`
}

func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	userID := auth.UserIDFromContext(r.Context())

	answer, err := h.svc.Answer(r.Context(), rag.QueryRequest{
		Question:  req.Question,
		Language:  req.Language,
		QueryType: req.QueryType,
		UserID:    userID,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to generate answer")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
