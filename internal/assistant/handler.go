package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type unifiedRequest struct {
	Query       string         `json:"query" validate:"required"`
	ContextData map[string]any `json:"contextData"`
	Metadata    map[string]any `json:"metadata"`
}

// HTTPHandler is the query-processing surface: the unified chat endpoint
// and the unauthenticated status probe.
type HTTPHandler struct {
	router         *Router
	validate       *validator.Validate
	maxQueryLength int
	timeout        time.Duration
	log            *zap.Logger
}

func NewHTTPHandler(router *Router, maxQueryLength int, timeout time.Duration, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		router:         router,
		validate:       validator.New(),
		maxQueryLength: maxQueryLength,
		timeout:        timeout,
		log:            log.Named("chat"),
	}
}

// HandleUnified validates the request and hands it to the router.
// Validation failures are the only errors a caller sees; everything past
// dispatch degrades to a normal-looking reply.
func (h *HTTPHandler) HandleUnified(w http.ResponseWriter, r *http.Request) {
	var req unifiedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid request format. Request must be a JSON object.",
		})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid request format. Must include 'query' field.",
		})
		return
	}
	if err := h.validate.Var(req.Query, fmt.Sprintf("max=%d", h.maxQueryLength)); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": fmt.Sprintf("Query exceeds maximum length of %d characters", h.maxQueryLength),
		})
		return
	}

	h.log.Info("received unified chat request", zap.Int("queryLength", len(req.Query)))

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := h.router.Dispatch(ctx, req.Query, req.ContextData, req.Metadata)
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"message":   "Chat service is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
