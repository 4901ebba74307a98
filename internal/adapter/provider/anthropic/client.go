// Package anthropic calls Claude models through the official SDK. It offers
// the same surface as the gemini package so either can back the services.
package anthropic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/provider"
)

// User-facing failure messages.
const (
	MsgMissingKey = "Invalid or missing Anthropic API key"
	MsgBlocked    = "Image was blocked by safety filters. Please try a different image."
	MsgEmpty      = "Empty response from Anthropic API"
)

// Config configures the client.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
	// BaseURL overrides the API endpoint; tests point it at httptest.
	BaseURL string
}

// Client sends messages to one Claude model. Upstream failures are terminal:
// the SDK's automatic retries are disabled.
type Client struct {
	client    anthropic.Client
	hasKey    bool
	model     string
	maxTokens int64
	log       *slog.Logger
}

// New creates a Client. An empty API key is accepted; calls then fail with a
// credential error.
func New(cfg Config, logger *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	c := &Client{
		client:    anthropic.NewClient(opts...),
		hasKey:    cfg.APIKey != "",
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       logger.With("adapter", "anthropic"),
	}
	if !c.hasKey {
		c.log.Warn("anthropic api key not configured; model calls will fail")
	}
	return c
}

// Diagnose sends the image followed by the diagnosis prompt.
func (c *Client) Diagnose(ctx context.Context, img provider.Image, prompt string) (string, error) {
	msg := anthropic.NewUserMessage(
		anthropic.NewImageBlockBase64(img.MimeType, base64.StdEncoding.EncodeToString(img.Data)),
		anthropic.NewTextBlock(prompt),
	)
	return c.send(ctx, "diagnose", "", []anthropic.MessageParam{msg})
}

// Chat continues a conversation under the given system prompt.
func (c *Client) Chat(ctx context.Context, system string, history []provider.Turn, message string) (string, error) {
	msgs := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, t := range history {
		if t.Role == provider.RoleUser {
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Text)))
		} else {
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Text)))
		}
	}
	msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(message)))
	return c.send(ctx, "chat", system, msgs)
}

// Generate answers a single text prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	msgs := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))}
	return c.send(ctx, "generate", "", msgs)
}

func (c *Client) send(ctx context.Context, op, system string, msgs []anthropic.MessageParam) (string, error) {
	if !c.hasKey {
		return "", domain.NewUpstreamError(domain.ErrUpstreamCredential, MsgMissingKey)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  msgs,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		c.log.ErrorContext(ctx, "anthropic call failed", slog.String("op", op), slog.String("error", err.Error()))
		return "", classify(err)
	}

	if msg.StopReason == anthropic.StopReasonRefusal {
		c.log.WarnContext(ctx, "anthropic refused", slog.String("op", op))
		return "", domain.NewUpstreamError(domain.ErrContentBlocked, MsgBlocked)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", domain.NewUpstreamError(domain.ErrEmptyResponse, MsgEmpty)
	}

	c.log.DebugContext(ctx, "anthropic response", slog.String("op", op), slog.Int("chars", len(text)))
	return text, nil
}

// errorBody is the JSON envelope of API errors.
type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// classify maps an SDK error onto the upstream taxonomy. Context errors pass
// through untouched.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return domain.NewUpstreamError(domain.ErrUpstream, err.Error())
	}
	if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
		return domain.NewUpstreamError(domain.ErrUpstreamCredential, MsgMissingKey)
	}

	var body errorBody
	if json.Unmarshal([]byte(apiErr.RawJSON()), &body) == nil && body.Error.Message != "" {
		return domain.NewUpstreamError(domain.ErrUpstream, body.Error.Message)
	}
	return domain.NewUpstreamError(domain.ErrUpstream, fmt.Sprintf("anthropic: status %d", apiErr.StatusCode))
}
