package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoom represents a 1-on-1 conversation between two matched users.
// Exactly one room exists per unordered match pair.
type ChatRoom struct {
	// RoomID is derived deterministically from the participant pair, see DeriveRoomID.
	RoomID string `gorm:"primaryKey" json:"id"`
	// User1ID is the lexicographically smaller participant ID.
	User1ID string `gorm:"uniqueIndex:idx_room_pair" json:"user1_id"`
	// User2ID is the lexicographically larger participant ID.
	User2ID string `gorm:"uniqueIndex:idx_room_pair" json:"user2_id"`
	// IsActive indicates whether the room is open for messaging.
	IsActive bool `json:"is_active"`
	// StartedAt is the timestamp when the room was first materialized.
	StartedAt time.Time `json:"started_at"`
}

// DeriveRoomID повертає стабільний ID кімнати для невпорядкованої пари учасників.
// Пара спочатку канонізується сортуванням, тому DeriveRoomID(a, b) == DeriveRoomID(b, a).
// Виведення "від поточного користувача" дає дублікати кімнат — тому тут UUIDv5 від пари.
func DeriveRoomID(userA, userB string) string {
	a, b := CanonicalPair(userA, userB)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(a+":"+b)).String()
}

// CanonicalPair returns the two IDs in lexicographic order.
func CanonicalPair(userA, userB string) (string, string) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

// HasParticipant reports whether userID is one of the room's two participants.
func (r *ChatRoom) HasParticipant(userID string) bool {
	return r.User1ID == userID || r.User2ID == userID
}

// OtherParticipant returns the ID of the participant other than userID.
// The second return value is false when userID is not in the room at all.
func (r *ChatRoom) OtherParticipant(userID string) (string, bool) {
	if r.User1ID == userID {
		return r.User2ID, true
	}
	if r.User2ID == userID {
		return r.User1ID, true
	}
	return "", false
}
