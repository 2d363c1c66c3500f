package ai

import (
	"context"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient binds the Completer port to the OpenAI chat completion API.
// One instance is shared by every handler; it is not mutated after New.
type OpenAIClient struct {
	client *openai.Client
	log    *zap.Logger
}

func NewOpenAIClient(apiKey string, log *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		log:    log.Named("ai"),
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.ForceJSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	if req.Schema != nil {
		fn := &openai.FunctionDefinition{
			Name:        req.Schema.Name,
			Description: req.Schema.Description,
			Parameters:  req.Schema.Parameters,
		}
		chatReq.Tools = []openai.Tool{{Type: openai.ToolTypeFunction, Function: fn}}
		chatReq.ToolChoice = openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: req.Schema.Name},
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		c.log.Error("completion call failed", zap.String("model", req.Model), zap.Error(err))
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(resp.Choices) == 0 {
		c.log.Warn("completion returned no choices", zap.String("model", req.Model))
		return "", nil
	}

	msg := resp.Choices[0].Message

	// Schema-constrained calls come back as a tool call; the arguments
	// string is the structured reply. Some models answer in content
	// anyway, so fall through when no tool call is present.
	if req.Schema != nil && len(msg.ToolCalls) > 0 {
		raw := msg.ToolCalls[0].Function.Arguments
		c.log.Debug("raw structured reply", zap.String("arguments", raw))
		return raw, nil
	}

	c.log.Debug("raw engine reply", zap.String("content", msg.Content))
	return msg.Content, nil
}
