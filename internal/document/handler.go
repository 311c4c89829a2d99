package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wordapp/internal/document/model"
	"wordapp/internal/document/service"
	"wordapp/middleware"
	"wordapp/pkg/apperr"
	"wordapp/pkg/logger"
)

type DocumentHandler struct {
	Service *service.DocumentService
	// Production hides upstream error detail from clients.
	Production bool
}

func NewDocumentHandler(service *service.DocumentService, production bool) *DocumentHandler {
	return &DocumentHandler{Service: service, Production: production}
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	token := middleware.Credential(r)

	docs, err := h.Service.List(r.Context(), token)
	if err != nil {
		logger.Sugar.Errorf("Handler: failed to list documents: %v", err)
		h.respondError(w, "Error listing documents", err)
		return
	}

	respondJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	token := middleware.Credential(r)
	docID := r.PathValue("id")

	doc, err := h.Service.Get(r.Context(), token, docID)
	if err != nil {
		logger.Sugar.Errorf("Handler: failed to get document %s: %v", docID, err)
		h.respondError(w, "Error getting document", err)
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) SaveDocument(w http.ResponseWriter, r *http.Request) {
	token := middleware.Credential(r)

	var req model.SaveDocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, "Error saving document", apperr.Validation("invalid request body"))
		return
	}

	created, err := h.Service.Create(r.Context(), token, req)
	if err != nil {
		logger.Sugar.Errorf("Handler: failed to save document: %v", err)
		h.respondError(w, "Error saving document", err)
		return
	}

	respondJSON(w, http.StatusOK, model.SaveDocResponse{
		Message:     "Document saved successfully",
		DocumentID:  created.ID,
		Title:       created.Name,
		WebViewLink: created.WebViewLink,
	})
}

func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	token := middleware.Credential(r)
	docID := r.PathValue("id")

	var req model.SaveDocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, "Error updating document", apperr.Validation("invalid request body"))
		return
	}

	if err := h.Service.Update(r.Context(), token, docID, req); err != nil {
		logger.Sugar.Errorf("Handler: failed to update document %s: %v", docID, err)
		h.respondError(w, "Error updating document", err)
		return
	}

	respondJSON(w, http.StatusOK, model.MessageResponse{Message: "Document updated successfully"})
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	token := middleware.Credential(r)
	docID := r.PathValue("id")

	if err := h.Service.Delete(r.Context(), token, docID); err != nil {
		logger.Sugar.Errorf("Handler: failed to delete document %s: %v", docID, err)
		h.respondError(w, "Error deleting document", err)
		return
	}

	respondJSON(w, http.StatusOK, model.MessageResponse{Message: "Document deleted successfully"})
}

func (h *DocumentHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// respondError maps the error taxonomy to a status code and a client-safe
// body. Server-side failures keep their detail out of production responses.
func (h *DocumentHandler) respondError(w http.ResponseWriter, message string, err error) {
	status := apperr.HTTPStatus(err)

	details := ""
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		details = appErr.Message
	}
	if status == http.StatusInternalServerError {
		message = "Something went wrong!"
		if h.Production {
			details = "Internal server error"
		} else if details == "" {
			details = err.Error()
		}
	}

	respondJSON(w, status, errorResponse{Error: message, Details: details})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
