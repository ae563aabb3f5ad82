// Package gemini adapts the Gemini API to the small text and audio
// interfaces the services depend on.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Alijeyrad/health_companion/config"
)

var ErrEmptyResponse = errors.New("gemini returned an empty response")

const transcriptionPrompt = "Transcribe this audio recording of a medical consultation verbatim. " +
	"Return only the spoken words as plain text, without speaker labels, timestamps or commentary."

type Client struct {
	client             *genai.Client
	model              string
	transcriptionModel string
	timeout            time.Duration
}

// New returns nil, nil when the backend is disabled.
func New(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	c := &Client{
		client:             client,
		model:              cfg.Model,
		transcriptionModel: cfg.TranscriptionModel,
		timeout:            time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	if c.transcriptionModel == "" {
		c.transcriptionModel = c.model
	}
	return c, nil
}

// Generate sends a single-turn text prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	return c.generate(ctx, c.model, contents)
}

// Transcribe sends the audio inline with a verbatim transcription prompt.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: transcriptionPrompt},
				{InlineData: &genai.Blob{Data: audio, MIMEType: mimeType}},
			},
		},
	}
	return c.generate(ctx, c.transcriptionModel, contents)
}

func (c *Client) generate(ctx context.Context, model string, contents []*genai.Content) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", model, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
