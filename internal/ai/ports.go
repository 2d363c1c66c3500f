package ai

import (
	"context"
	"encoding/json"
)

// Completer is the external intelligence. It knows nothing about pages,
// filters or the database — it turns one prompt into one reply.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Message is the engine-neutral dialogue format.
type Message struct {
	Role    string // "user" | "assistant" | "system"
	Content string
}

// Schema declares the output shape for call sites that need structured
// arguments instead of free text. Parameters is a JSON Schema object.
type Schema struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Request carries one completion call: system prompt, dialogue history,
// generation parameters, and an optional output-schema constraint.
// ForceJSON asks the engine for a JSON-only reply without constraining
// the shape; Schema constrains the shape via a declared function.
type Request struct {
	Model       string
	System      string
	Messages    []Message
	Temperature float32
	MaxTokens   int
	ForceJSON   bool
	Schema      *Schema
}
