package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAIClassifier implements Classifier on any OpenAI-compatible endpoint
type OpenAIClassifier struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

// NewOpenAIClassifier creates a classifier against an OpenAI-compatible API.
// baseURL may point at a proxy or compatible provider; empty keeps the default.
func NewOpenAIClassifier(apiKey, baseURL, model string, logger *logrus.Logger) *OpenAIClassifier {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClassifier{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Classify labels the text High/Low and produces a supportive reply
func (h *OpenAIClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	resp, err := h.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: h.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(classifyPrompt, text),
			},
		},
	})
	if err != nil {
		return Classification{}, fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Classification{}, fmt.Errorf("completion returned no choices")
	}
	raw := resp.Choices[0].Message.Content
	h.logger.WithField("model", h.model).Debug("classification response received")
	return ParseClassification(raw)
}
