// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/poiesic/distill/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// TextGenerator implements ai.TextGenerator using OpenAI-compatible chat APIs.
type TextGenerator struct {
	client llms.Model
	logger *slog.Logger
}

// newTextGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTextGenerator(config *ai.Config) (*TextGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &TextGenerator{
		client: client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewTextGenerator creates a new text generator using the provided configuration.
//
// Returns ai.TextGenerator interface to enforce abstraction.
func NewTextGenerator(config *ai.Config) (ai.TextGenerator, error) {
	return newTextGenerator(config)
}

// Generate returns the raw text the model produced for the prompt.
func (g *TextGenerator) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	response, err := g.client.GenerateContent(ctx, promptContent(prompt),
		llms.WithTemperature(temperature))
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model")
		return "", nil
	}

	return response.Choices[0].Content, nil
}

// GenerateObject asks the model for a single JSON object and parses it.
// A response that cannot be parsed, even after fence stripping and repair,
// yields an empty map rather than an error.
func (g *TextGenerator) GenerateObject(ctx context.Context, prompt string, temperature float64) (map[string]any, error) {
	response, err := g.client.GenerateContent(ctx, promptContent(prompt),
		llms.WithTemperature(temperature), llms.WithJSONMode())
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model")
		return map[string]any{}, nil
	}

	text := repairJSON(stripCodeFences(response.Choices[0].Content))

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		g.logger.Warn("error parsing structured response",
			"response", text,
			"err", err)
		return map[string]any{}, nil
	}

	return obj, nil
}

// promptContent wraps a prompt as a single human message.
func promptContent(prompt string) []llms.MessageContent {
	return []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}
}
