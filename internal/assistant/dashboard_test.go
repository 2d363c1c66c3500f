package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/heygoodlife/chat-assistant/internal/ai"
)

// fakeCompleter records every request and replies from a fixed script.
type fakeCompleter struct {
	requests []ai.Request
	reply    string
	err      error
}

func (f *fakeCompleter) Complete(_ context.Context, req ai.Request) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

func TestDashboardPromptClarificationGate(t *testing.T) {
	contextBlock := "CURRENT DATE: whenever"

	t.Run("existing filters add clarification rules", func(t *testing.T) {
		system, _ := BuildDashboardPrompt("show me products over $500", contextBlock, true)
		assert.Contains(t, system, "ALWAYS ASK FOR CLARIFICATION WHEN EXISTING FILTERS ARE APPLIED")
		assert.Contains(t, system, "MUST trigger clarification")
	})

	t.Run("no filters no clarification rules", func(t *testing.T) {
		system, _ := BuildDashboardPrompt("show me electronics", contextBlock, false)
		assert.NotContains(t, system, "ALWAYS ASK FOR CLARIFICATION WHEN EXISTING FILTERS ARE APPLIED")
	})

	t.Run("user prompt carries context and query", func(t *testing.T) {
		_, user := BuildDashboardPrompt("show me electronics", contextBlock, false)
		assert.Contains(t, user, contextBlock)
		assert.Contains(t, user, "User query: show me electronics")
	})
}

func TestDashboardProcessAppliesFilter(t *testing.T) {
	engine := &fakeCompleter{
		reply: `{"filters": {"categories": ["Electronics"]}, "response_message": "Here are Electronics products."}`,
	}
	h := NewDashboardHandler(engine, zap.NewNop())
	h.now = func() time.Time { return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC) }

	resp, err := h.Process(context.Background(), "show me electronics",
		dashboardContextData(map[string]any{}))
	require.NoError(t, err)

	require.NotNil(t, resp.Filters)
	assert.Equal(t, []string{"Electronics"}, resp.Filters.Categories)
	assert.Equal(t, "Here are Electronics products.", resp.ResponseMessage)

	require.Len(t, engine.requests, 1)
	req := engine.requests[0]
	assert.Equal(t, dashboardModel, req.Model)
	assert.Equal(t, float32(dashboardTemperature), req.Temperature)
	assert.Equal(t, dashboardMaxTokens, req.MaxTokens)
	assert.True(t, req.ForceJSON)
	assert.NotContains(t, req.System, "ALWAYS ASK FOR CLARIFICATION WHEN EXISTING FILTERS ARE APPLIED")
}

func TestDashboardProcessClarifiesWithExistingFilters(t *testing.T) {
	engine := &fakeCompleter{
		reply: `{"response_message": "I notice you already have filters applied. Would you like me to add Electronics to your current filters, or replace your current filters with just Electronics?"}`,
	}
	h := NewDashboardHandler(engine, zap.NewNop())

	resp, err := h.Process(context.Background(), "show me electronics",
		dashboardContextData(map[string]any{"categories": []any{"Food"}}))
	require.NoError(t, err)

	assert.Nil(t, resp.Filters)
	assert.Contains(t, resp.ResponseMessage, "add Electronics to your current filters")

	require.Len(t, engine.requests, 1)
	assert.Contains(t, engine.requests[0].System, "ALWAYS ASK FOR CLARIFICATION WHEN EXISTING FILTERS ARE APPLIED")
}

func TestDashboardProcessEngineFailure(t *testing.T) {
	engine := &fakeCompleter{err: errors.New("rate limited")}
	h := NewDashboardHandler(engine, zap.NewNop())

	_, err := h.Process(context.Background(), "show me electronics",
		dashboardContextData(map[string]any{}))
	assert.Error(t, err)
}

func TestDashboardProcessMalformedReply(t *testing.T) {
	engine := &fakeCompleter{reply: "sorry, here are your filters"}
	h := NewDashboardHandler(engine, zap.NewNop())

	resp, err := h.Process(context.Background(), "show me electronics",
		dashboardContextData(map[string]any{}))
	require.NoError(t, err)
	assert.Equal(t, ParseErrorMessage, resp.ResponseMessage)
	assert.Nil(t, resp.Filters)
}
