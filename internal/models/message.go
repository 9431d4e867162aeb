package models

import "gorm.io/gorm"

// Message represents a saved chat message in the PostgreSQL database.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt fields;
// ID doubles as the tie-breaker for messages that share a timestamp.
type Message struct {
	gorm.Model

	// RoomID is the identifier of the chat room where the message was sent.
	RoomID string `gorm:"type:uuid;not null;index:idx_room_msg" json:"room_id"`
	// SenderID is the ID of the user who sent the message.
	// It must be one of the room's two participants.
	SenderID string `gorm:"type:text;not null;index:idx_room_msg" json:"sender_id"`
	// Content is the message text. Never empty after trimming.
	Content string `gorm:"type:text;not null" json:"content"`
	// Type indicates the kind of message (e.g., "text", "system_match_found").
	Type string `gorm:"type:text;not null" json:"type"`
}
