package history

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/heygoodlife/chat-assistant/internal/auth"
)

type saveRequest struct {
	Query    string         `json:"query" validate:"required"`
	Response string         `json:"response" validate:"required"`
	Metadata map[string]any `json:"metadata"`
}

// HTTPHandler is the authenticated conversation-history surface.
// Storage failures here are real 500s: the caller needs to know that
// persistence did not happen.
type HTTPHandler struct {
	svc      Service
	validate *validator.Validate
	log      *zap.Logger
}

func NewHTTPHandler(svc Service, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:      svc,
		validate: validator.New(),
		log:      log.Named("history"),
	}
}

func (h *HTTPHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	count, err := h.svc.Count(r.Context(), userID)
	if err != nil {
		h.log.Error("status check failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "Failed to check status"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"message":      "Chat history API is working correctly",
		"userId":       userID,
		"messageCount": count,
		"timestamp":    time.Now().Format(time.RFC3339),
	})
}

func (h *HTTPHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Both 'query' and 'response' fields are required"})
		return
	}

	turn, err := h.svc.Save(r.Context(), auth.UserID(r.Context()), req.Query, req.Response, req.Metadata)
	if err != nil {
		h.log.Error("save failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "Failed to save chat conversation"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Chat conversation saved successfully",
		"data":    []Turn{*turn},
	})
}

func (h *HTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxLimit {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	var before time.Time
	if v := r.URL.Query().Get("before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "before must be an RFC3339 timestamp"})
			return
		}
		before = t
	}

	turns, err := h.svc.List(r.Context(), auth.UserID(r.Context()), limit, before)
	if err != nil {
		h.log.Error("list failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "Failed to retrieve chat conversations"})
		return
	}
	if turns == nil {
		turns = []Turn{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Chat conversations retrieved successfully",
		"data":    turns,
	})
}

func (h *HTTPHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.DeleteAll(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.log.Error("delete failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "Failed to clear chat history"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Chat history cleared successfully",
		"count":   count,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
