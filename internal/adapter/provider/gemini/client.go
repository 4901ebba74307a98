// Package gemini calls Google's Gemini models through the genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/provider"
)

// User-facing failure messages.
const (
	MsgMissingKey = "Invalid or missing Gemini API key"
	MsgBlocked    = "Image was blocked by safety filters. Please try a different image."
	MsgEmpty      = "Empty response from Gemini API"
)

// Config configures the client.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; tests point it at httptest.
	BaseURL string
}

// Client generates content with one Gemini model. With an empty API key it
// still constructs, and every call fails with a credential error.
type Client struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

// New creates a Client.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	c := &Client{model: cfg.Model, log: logger.With("adapter", "gemini")}
	if cfg.APIKey == "" {
		c.log.Warn("gemini api key not configured; model calls will fail")
		return c, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	c.client = client
	return c, nil
}

// Diagnose sends the image and the diagnosis prompt in one user turn.
func (c *Client) Diagnose(ctx context.Context, img provider.Image, prompt string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(img.Data, img.MimeType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	return c.generate(ctx, "diagnose", contents, nil)
}

// Chat continues a conversation under the given system instruction.
func (c *Client) Chat(ctx context.Context, system string, history []provider.Turn, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		role := genai.Role(genai.RoleModel)
		if t.Role == provider.RoleUser {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	return c.generate(ctx, "chat", contents, cfg)
}

// Generate answers a single text prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	return c.generate(ctx, "generate", contents, nil)
}

func (c *Client) generate(ctx context.Context, op string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	if c.client == nil {
		return "", domain.NewUpstreamError(domain.ErrUpstreamCredential, MsgMissingKey)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		c.log.ErrorContext(ctx, "gemini call failed", slog.String("op", op), slog.String("error", err.Error()))
		return "", classify(err)
	}

	if blocked(resp) {
		c.log.WarnContext(ctx, "gemini response blocked", slog.String("op", op))
		return "", domain.NewUpstreamError(domain.ErrContentBlocked, MsgBlocked)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", domain.NewUpstreamError(domain.ErrEmptyResponse, MsgEmpty)
	}

	c.log.DebugContext(ctx, "gemini response", slog.String("op", op), slog.Int("chars", len(text)))
	return text, nil
}

// blocked reports whether the prompt or the first candidate was stopped by a
// safety filter.
func blocked(resp *genai.GenerateContentResponse) bool {
	if resp == nil {
		return false
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return true
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return false
	}
	switch resp.Candidates[0].FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent, genai.FinishReasonBlocklist, genai.FinishReasonImageSafety:
		return true
	}
	return false
}

// classify maps an SDK error onto the upstream taxonomy. Context errors pass
// through untouched.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	msg := err.Error()

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
		if apiErr.Code == 401 || apiErr.Code == 403 {
			return domain.NewUpstreamError(domain.ErrUpstreamCredential, MsgMissingKey)
		}
	}

	switch {
	case strings.Contains(msg, "API_KEY") || strings.Contains(msg, "API key"):
		return domain.NewUpstreamError(domain.ErrUpstreamCredential, MsgMissingKey)
	case strings.Contains(msg, "SAFETY"):
		return domain.NewUpstreamError(domain.ErrContentBlocked, MsgBlocked)
	}
	return domain.NewUpstreamError(domain.ErrUpstream, msg)
}
