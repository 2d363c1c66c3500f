package assistant

import (
	"context"

	"go.uber.org/zap"
)

// Router dispatches a query to exactly one page handler. It never fails
// upward: handler errors and panics both degrade to the generic reply,
// so a malfunctioning engine can not surface a 500 to the end user.
type Router struct {
	dashboard Handler
	settings  Handler
	extension Handler
	log       *zap.Logger
}

func NewRouter(dashboard, settings, extension Handler, log *zap.Logger) *Router {
	return &Router{
		dashboard: dashboard,
		settings:  settings,
		extension: extension,
		log:       log.Named("router"),
	}
}

func (r *Router) Dispatch(ctx context.Context, query string, contextData, metadata map[string]any) (out Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("handler panicked", zap.Any("panic", rec))
			out = Response{ResponseMessage: ErrorResponseMessage}
		}
	}()

	page := nonEmptyString(metadata["page"])

	var h Handler
	switch page {
	case PageSettings:
		h = r.settings
	case PageExtension:
		h = r.extension
	default:
		h = r.dashboard
	}
	r.log.Info("dispatching query", zap.String("page", page), zap.String("query", query))

	resp, err := h.Process(ctx, query, contextData)
	if err != nil {
		r.log.Error("handler failed", zap.String("page", page), zap.Error(err))
		return Response{ResponseMessage: ErrorResponseMessage}
	}
	return resp
}
