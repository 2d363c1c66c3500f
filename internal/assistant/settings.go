package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/heygoodlife/chat-assistant/internal/ai"
)

const (
	settingsModel       = "gpt-3.5-turbo"
	settingsTemperature = 0.7
	settingsMaxTokens   = 250
)

// SettingsHandler answers read-only questions about the user's profile,
// credit cards and memberships. Its task is conversational Q&A grounded
// in facts, so the context is linearized into prose sentences rather
// than a structured state dump, and the reply is plain text carried in
// generalResponse — it never emits filter or navigation fields.
type SettingsHandler struct {
	engine ai.Completer
	log    *zap.Logger
}

func NewSettingsHandler(engine ai.Completer, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{engine: engine, log: log.Named("settings")}
}

func (h *SettingsHandler) Process(ctx context.Context, query string, contextData map[string]any) (Response, error) {
	system := BuildSettingsPrompt(contextData)

	msgs := []ai.Message{}
	if lastQuery, lastResponse, ok := lastConversation(contextData); ok {
		msgs = append(msgs,
			ai.Message{Role: "user", Content: lastQuery},
			ai.Message{Role: "assistant", Content: lastResponse},
		)
	}
	msgs = append(msgs, ai.Message{Role: "user", Content: query})

	raw, err := h.engine.Complete(ctx, ai.Request{
		Model:       settingsModel,
		System:      system,
		Messages:    msgs,
		Temperature: settingsTemperature,
		MaxTokens:   settingsMaxTokens,
	})
	if err != nil {
		// A broken settings turn still reads like a normal answer.
		h.log.Error("settings completion failed", zap.Error(err))
		return Response{GeneralResponse: SettingsErrorResponse}, nil
	}

	return Response{GeneralResponse: strings.TrimSpace(raw)}, nil
}

// BuildSettingsPrompt linearizes the settings-page context into the
// system prompt: identity, saved cards, available card examples, and
// membership standing, each as descriptive sentences.
func BuildSettingsPrompt(contextData map[string]any) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant for the settings page of a Goodlife shopping application. ")
	b.WriteString("Provide concise, friendly responses about the user's profile, credit cards, and memberships. ")

	if profile, ok := contextData["profile"].(map[string]any); ok {
		fmt.Fprintf(&b, "The user's name is %s %s. ",
			nonEmptyString(profile["firstName"]), nonEmptyString(profile["lastName"]))
		fmt.Fprintf(&b, "Their email is %s. ", nonEmptyString(profile["email"]))
	}

	if cards, ok := contextData["creditCards"].(map[string]any); ok {
		writeUserCards(&b, cards["userCards"])
		writeAvailableCards(&b, cards["availableCards"])
	}

	if memberships, ok := contextData["memberships"].([]any); ok {
		writeMemberships(&b, memberships)
	}

	b.WriteString(`
Guidelines for your responses:
1. Be concise and direct - provide helpful information about the user's settings.
2. Answer questions about their profile, credit cards, and memberships accurately.
3. For credit card questions, provide specific information about their cards when relevant.
4. For membership questions, mention their active memberships and relevant benefits.
5. Do not suggest making changes to settings directly - only provide information.
6. If asked about card benefits or rewards, provide general information about the types of cards they have.
7. Keep responses brief but informative, focusing on answering the user's question directly.
8. If asked about a card or membership they don't have, acknowledge this and suggest alternatives if appropriate.
9. Personalize your responses using their name occasionally.
10. Do not invent details that aren't provided in the context.
11. If the user asks about a specific detail not provided in the context, say you don't have that specific information.`)

	return b.String()
}

func writeUserCards(b *strings.Builder, v any) {
	userCards, ok := v.([]any)
	if !ok || len(userCards) == 0 {
		return
	}
	names := make([]string, 0, len(userCards))
	for _, c := range userCards {
		card, ok := c.(map[string]any)
		if !ok {
			continue
		}
		info := cardInfo(card["creditCardId"])
		name := nonEmptyString(info["cardName"])
		if name == "" {
			continue
		}
		detail := name
		if issuer := nonEmptyString(info["cardIssuer"]); issuer != "" {
			detail += " from " + issuer
		}
		if network := nonEmptyString(info["cardNetwork"]); network != "" {
			detail += " (" + network + ")"
		}
		names = append(names, detail)
	}
	fmt.Fprintf(b, "The user has %d saved credit card(s): %s. ", len(userCards), strings.Join(names, ", "))
}

func writeAvailableCards(b *strings.Builder, v any) {
	available, ok := v.([]any)
	if !ok || len(available) == 0 {
		return
	}
	fmt.Fprintf(b, "There are %d available credit card types that could be added. ", len(available))

	examples := make([]string, 0, 3)
	for _, c := range available {
		if len(examples) == 3 {
			break
		}
		card, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if name := nonEmptyString(cardInfo(card)["cardName"]); name != "" {
			examples = append(examples, name)
		}
	}
	if len(examples) > 0 {
		fmt.Fprintf(b, "Examples include: %s. ", strings.Join(examples, ", "))
	}
}

func writeMemberships(b *strings.Builder, memberships []any) {
	var active, inactive []string
	for _, m := range memberships {
		membership, ok := m.(map[string]any)
		if !ok {
			continue
		}
		name := ""
		if id, ok := membership["membership_id"].(map[string]any); ok {
			name = nonEmptyString(id["membership_name"])
		}
		if name == "" {
			continue
		}
		isActive, _ := membership["active"].(bool)
		if !isActive {
			inactive = append(inactive, name)
			continue
		}
		tier := nonEmptyString(membership["tier"])
		if tier != "" && tier != "Not a member" {
			active = append(active, name+" ("+tier+")")
		} else {
			active = append(active, name)
		}
	}
	if len(active) > 0 {
		fmt.Fprintf(b, "The user has active memberships with: %s. ", strings.Join(active, ", "))
	}
	if len(inactive) > 0 {
		fmt.Fprintf(b, "The user previously had memberships with: %s (now inactive). ", strings.Join(inactive, ", "))
	}
}

func cardInfo(v any) map[string]any {
	card, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	info, _ := card["cardInfo"].(map[string]any)
	return info
}
