package assistant

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *HTTPHandler) {
	r.Post("/api/chat/unified", h.HandleUnified)
	r.Get("/api/chat/status", h.HandleStatus)
}
