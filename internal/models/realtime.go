package models

import "time"

// ChatMessage — це realtime-представлення повідомлення для WebSocket та Redis Pub/Sub.
type ChatMessage struct {
	ID       uint      `json:"id,omitempty"`
	SenderID string    `json:"sender_id"`
	RoomID   string    `json:"room_id"`
	Content  string    `json:"content"`
	Type     string    `json:"type"` // "text", "system_match_found"
	SentAt   time.Time `json:"sent_at"`
}
