// Package assistant answers free-form gardening questions and looks up
// disease library entries through a text model.
package assistant

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/nivara-backend/internal/provider"
)

// SystemInstruction is the AgriGuru persona. It is sent to the model as-is.
const SystemInstruction = `
You are **AgriGuru**, a friendly and expert agricultural AI assistant for the Nivara platform. 
Your goal is to help farmers and plant enthusiasts with their doubts.

**Persona:**
- Friendly, encouraging, and knowledgeable (like an old wise farmer + a botanist).
- Use emojis occasionally (🌿, 🚜, 💧, ☀️).
- Keep answers concise (under 100 words) but helpful.
- If the question is not about plants, agriculture, or gardening, politely steer them back to those topics.
- Nivara is a platform for "Healing Plants, Healing Earth".

**Tone:**
- Warm and professional.
- Start responses directly (no "model" boilerplates).
`

type chatter interface {
	Chat(ctx context.Context, system string, history []provider.Turn, message string) (string, error)
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service implements the assistant and the disease library.
type Service struct {
	chatter chatter
	log     *slog.Logger
}

// NewService creates an assistant Service.
func NewService(log *slog.Logger, chatter chatter) *Service {
	return &Service{
		chatter: chatter,
		log:     log.With("service", "assistant"),
	}
}
