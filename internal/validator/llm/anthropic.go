// Package llm implements the validator's Classifier interface against the
// Anthropic Messages API, plus an in-memory fake for tests.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/validator"
)

// maxBodyChars caps how much article body is sent to the model.
const maxBodyChars = 4000

// AnthropicClassifier calls a small Claude model with a strict-JSON
// classification prompt. One call per report; the validator owns the timeout.
type AnthropicClassifier struct {
	client anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClassifier builds a classifier for the given model name.
func NewAnthropicClassifier(apiKey, model string, logger *zap.Logger) *AnthropicClassifier {
	return &AnthropicClassifier{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: logger,
	}
}

// Classify implements validator.Classifier.
func (c *AnthropicClassifier) Classify(ctx context.Context, title, body string) (validator.Verdict, error) {
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars]
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 256,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(userTemplate, title, body))),
		},
	})
	if err != nil {
		return validator.Verdict{}, fmt.Errorf("anthropic messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	raw := strings.TrimSpace(sb.String())

	// Models occasionally fence the JSON despite instructions; strip before
	// treating the payload as malformed.
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var verdict validator.Verdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		c.logger.Warn("classifier returned malformed JSON",
			zap.String("model", c.model),
			zap.String("raw", truncate(raw, 200)),
		)
		return validator.Verdict{}, fmt.Errorf("malformed classifier verdict: %w", err)
	}
	if verdict.Confidence < 0 || verdict.Confidence > 1 {
		return validator.Verdict{}, fmt.Errorf("classifier confidence %v out of [0,1]", verdict.Confidence)
	}
	return verdict, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
