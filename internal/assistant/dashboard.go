package assistant

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/heygoodlife/chat-assistant/internal/ai"
)

const (
	dashboardModel       = "gpt-4o"
	dashboardTemperature = 0.5
	dashboardMaxTokens   = 200
)

// DashboardHandler turns filtering queries into filter-change responses.
// Filter mutation over natural language is ambiguous (add vs. replace
// vs. remove), so when the UI already has active filters the prompt
// demands a clarification question instead of a mutation.
type DashboardHandler struct {
	engine ai.Completer
	log    *zap.Logger
	now    func() time.Time
}

func NewDashboardHandler(engine ai.Completer, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		engine: engine,
		log:    log.Named("dashboard"),
		now:    time.Now,
	}
}

func (h *DashboardHandler) Process(ctx context.Context, query string, contextData map[string]any) (Response, error) {
	contextBlock := BuildDashboardContext(contextData, h.now())
	hasFilters := HasExistingFilters(contextData)
	h.log.Debug("processing dashboard query",
		zap.String("query", query),
		zap.Bool("hasExistingFilters", hasFilters))

	system, user := BuildDashboardPrompt(query, contextBlock, hasFilters)

	raw, err := h.engine.Complete(ctx, ai.Request{
		Model:       dashboardModel,
		System:      system,
		Messages:    []ai.Message{{Role: "user", Content: user}},
		Temperature: dashboardTemperature,
		MaxTokens:   dashboardMaxTokens,
		ForceJSON:   true,
	})
	if err != nil {
		return Response{}, err
	}

	return Normalize(raw), nil
}

// BuildDashboardPrompt constructs the system and user prompts. Split out
// so the constructed prompt can be inspected without an engine call.
func BuildDashboardPrompt(query, contextBlock string, hasExistingFilters bool) (system, user string) {
	system = DashboardSystemPrompt
	if hasExistingFilters {
		system += ClarificationFirstRules
	}
	user = "Context:\n" + contextBlock + "\n\nUser query: " + query +
		"\n\nPlease provide a JSON response with appropriate filters and a natural language response. Make sure to only use options that are available in the context."
	return system, user
}
