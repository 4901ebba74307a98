package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/provider"
)

// Reply sends the message with its history and returns the model's answer.
// User turns stay user turns; every other turn is replayed as the model's.
func (s *Service) Reply(ctx context.Context, in ChatInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	history := make([]provider.Turn, 0, len(in.History))
	for _, t := range in.History {
		role := provider.RoleModel
		if t.Role == domain.ChatRoleUser {
			role = provider.RoleUser
		}
		history = append(history, provider.Turn{Role: role, Text: t.Content})
	}

	reply, err := s.chatter.Chat(ctx, SystemInstruction, history, in.Message)
	if err != nil {
		return "", fmt.Errorf("reply: %w", err)
	}

	s.log.DebugContext(ctx, "chat replied",
		slog.Int("history", len(history)),
		slog.Int("reply_len", len(reply)),
	)

	return reply, nil
}
