// File: internal/domain/chat_message.go
package domain

import "time"

// Chat message senders.
const (
	ChatSenderUser = "user"
	ChatSenderBot  = "bot"
)

// ChatMessage is one turn of the assistant conversation. Append-only; read
// back in creation order, capped to the most recent ten, to build the
// assistant's conversational context.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PatientID string    `json:"patient_id" gorm:"column:patient_id;index;not null"`
	Sender    string    `json:"sender" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
