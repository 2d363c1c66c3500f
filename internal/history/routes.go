package history

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, h *HTTPHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(g chi.Router) {
		g.Use(authMiddleware)
		g.Get("/api/chat/history/status", h.HandleStatus)
		g.Post("/api/chat/conversations", h.HandleSave)
		g.Get("/api/chat/conversations", h.HandleList)
		g.Delete("/api/chat/conversations", h.HandleDelete)
	})
}
