// File: internal/repository/chatmessage/interface.go
package chatmessage

import (
	"context"

	"github.com/carelink/carelink-server/internal/domain"
)

// ChatMessageRepository persists assistant conversation turns. Append-only.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) (*domain.ChatMessage, error)
	// FindRecentByPatient returns up to limit messages in creation order.
	FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.ChatMessage, error)
}
