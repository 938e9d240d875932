package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ascleon/ascleon-backend/internal/document"
	"github.com/ascleon/ascleon-backend/internal/queue"
	"github.com/ascleon/ascleon-backend/internal/rag"
)

const maxUploadBytes = 32 << 20 // 32MB

type DocumentHandler struct {
	svc      *document.Service
	ingestor *rag.Ingestor
	queue    *queue.Client
}

func NewDocumentHandler(svc *document.Service, ingestor *rag.Ingestor, qc *queue.Client) *DocumentHandler {
	return &DocumentHandler{svc: svc, ingestor: ingestor, queue: qc}
}

// Upload accepts a PDF, creates the document row and runs ingestion
// synchronously so the admin sees the outcome (and chunk count) in the
// response.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read file")
		return
	}
	if len(data) > maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds 32MB limit")
		return
	}

	doc, err := h.svc.Create(r.Context(), document.CreateRequest{
		OriginalName:  header.Filename,
		FileSizeBytes: header.Size,
		Data:          data,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.ingestor.Ingest(r.Context(), doc.ID, data)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, document.ErrNoText) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, map[string]interface{}{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"document_id": result.DocumentID,
		"chunk_count": result.ChunksWritten,
		"status":      result.Status,
	})
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	docs, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs, "count": len(docs)})
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	doc, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *DocumentHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	doc, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":               doc.ID,
		"status":           doc.Status,
		"chunks_attempted": doc.ChunksAttempted,
		"chunks_written":   doc.ChunksWritten,
	})
}

// Reprocess queues a fresh ingestion run for the stored original.
func (h *DocumentHandler) Reprocess(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	if _, err := h.svc.GetByID(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	if err := h.queue.EnqueueDocumentIngest(queue.DocumentIngestPayload{DocumentID: id.String()}); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
