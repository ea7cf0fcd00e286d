package providers

import (
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"github.com/inkwell-ai/inkwell/internal/backend"
)

// toMessages converts a generate request to langchaingo message content.
func toMessages(req backend.GenerateRequest) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, 2)

	if req.System != "" {
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(req.System)},
		})
	}

	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(req.Prompt)},
	})

	return messages
}

// buildCallOptions converts a generate request to langchaingo call options.
func buildCallOptions(req backend.GenerateRequest) []llms.CallOption {
	callOpts := make([]llms.CallOption, 0)

	if req.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(req.Temperature))
	}

	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}

	if req.Model != "" {
		callOpts = append(callOpts, llms.WithModel(req.Model))
	}

	return callOpts
}

// fromContentResponse converts a langchaingo response to a generate response.
func fromContentResponse(resp *llms.ContentResponse, backendName, model string) *backend.GenerateResponse {
	out := &backend.GenerateResponse{
		ID:      uuid.New().String(),
		Model:   model,
		Backend: backendName,
	}

	if resp != nil && len(resp.Choices) > 0 {
		out.Text = resp.Choices[0].Content
	}

	return out
}
