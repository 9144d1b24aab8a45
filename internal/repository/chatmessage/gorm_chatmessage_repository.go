// File: internal/repository/chatmessage/gorm_chatmessage_repository.go
package chatmessage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carelink/carelink-server/internal/domain"
)

type gormChatMessageRepository struct {
	db *gorm.DB
}

func NewGormChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &gormChatMessageRepository{db: db}
}

func (r *gormChatMessageRepository) Create(ctx context.Context, message *domain.ChatMessage) (*domain.ChatMessage, error) {
	if message.PatientID == "" {
		return nil, errors.New("chat message patient ID is required")
	}
	if message.Sender != domain.ChatSenderUser && message.Sender != domain.ChatSenderBot {
		return nil, errors.New("chat message sender must be user or bot")
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func (r *gormChatMessageRepository) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.ChatMessage, error) {
	q := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var messages []domain.ChatMessage
	if err := q.Find(&messages).Error; err != nil {
		return nil, err
	}
	// Newest-first query, oldest-first result: the assistant reads the
	// conversation top to bottom.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
