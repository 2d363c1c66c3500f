package assistant

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/heygoodlife/chat-assistant/internal/ai"
)

const (
	extensionModel       = "gpt-3.5-turbo-0125"
	extensionTemperature = 0.7
	extensionMaxTokens   = 300
)

// extensionSchema is the declared output shape for the navigation call.
// This is the one handler that outsources shape validation to the engine
// itself instead of the generic normalizer; the goto enum is still
// enforced here because the engine is not trusted to honor it.
var extensionSchema = &ai.Schema{
	Name:        "provide_response",
	Description: "Provides a response to the user with optional navigation",
	Parameters: json.RawMessage(`{
		"type": "object",
		"properties": {
			"response_message": {
				"type": "string",
				"description": "The text response to display to the user"
			},
			"goto": {
				"type": "string",
				"description": "The destination to navigate to (dashboard, settings, savings, history, lists)",
				"enum": ["dashboard", "settings", "savings", "history", "lists"]
			}
		},
		"required": ["response_message"]
	}`),
}

var navDestinations = map[string]bool{
	"dashboard": true,
	"settings":  true,
	"savings":   true,
	"history":   true,
	"lists":     true,
}

// ExtensionHandler answers navigation-oriented queries from the browser
// extension: a message plus an optional destination page.
type ExtensionHandler struct {
	engine ai.Completer
	log    *zap.Logger
}

func NewExtensionHandler(engine ai.Completer, log *zap.Logger) *ExtensionHandler {
	return &ExtensionHandler{engine: engine, log: log.Named("extension")}
}

func (h *ExtensionHandler) Process(ctx context.Context, query string, contextData map[string]any) (Response, error) {
	msgs := []ai.Message{}
	if lastQuery, lastResponse, ok := lastConversation(contextData); ok {
		msgs = append(msgs,
			ai.Message{Role: "user", Content: lastQuery},
			ai.Message{Role: "assistant", Content: lastResponse},
		)
	}
	msgs = append(msgs, ai.Message{Role: "user", Content: query})

	raw, err := h.engine.Complete(ctx, ai.Request{
		Model:       extensionModel,
		System:      ExtensionSystemPrompt,
		Messages:    msgs,
		Temperature: extensionTemperature,
		MaxTokens:   extensionMaxTokens,
		Schema:      extensionSchema,
	})
	if err != nil {
		return Response{}, err
	}

	var args struct {
		ResponseMessage string `json:"response_message"`
		Goto            string `json:"goto"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &args); err != nil {
		// The structured path gave back something unparsable; wrap the
		// plain text instead of failing the turn.
		h.log.Warn("unparsable structured reply, using text fallback", zap.String("raw", raw))
		text := strings.TrimSpace(raw)
		if text == "" {
			text = ExtensionDefaultReply
		}
		return Response{ResponseMessage: text}, nil
	}

	out := Response{ResponseMessage: args.ResponseMessage}
	if out.ResponseMessage == "" {
		out.ResponseMessage = ExtensionDefaultReply
	}
	if navDestinations[args.Goto] {
		out.Goto = args.Goto
	}
	return out, nil
}
