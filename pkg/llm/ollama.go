package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// OllamaClassifier implements the Classifier interface for a local Ollama server
type OllamaClassifier struct {
	model     string
	logger    *logrus.Logger
	ollamaURL string
}

// NewOllamaClassifier creates a new Ollama-backed classifier
func NewOllamaClassifier(ollamaURL, model string, logger *logrus.Logger) *OllamaClassifier {
	return &OllamaClassifier{
		model:     model,
		logger:    logger,
		ollamaURL: ollamaURL,
	}
}

// Classify labels the text High/Low and produces a supportive reply
func (h *OllamaClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	requestBody := map[string]interface{}{
		"model":  h.model,
		"prompt": fmt.Sprintf(classifyPrompt, text),
		"stream": false,
	}
	body, err := json.Marshal(requestBody)
	if err != nil {
		return Classification{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/generate", h.ollamaURL), bytes.NewReader(body))
	if err != nil {
		return Classification{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Classification{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Classification{}, fmt.Errorf("failed to decode response: %w", err)
	}

	h.logger.WithField("model", h.model).Debug("ollama classification response received")
	return ParseClassification(response.Response)
}
