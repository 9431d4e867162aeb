package storage

import (
	"encoding/json"
	"errors"
	"time"

	"lovegogo/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Redis-ключі: unread:<roomID>:<userID>, ban:<userID>, канали room:<roomID>.

// PublishMessage публікує повідомлення в Redis Pub/Sub каналу кімнати.
func (s *Service) PublishMessage(roomID string, msg models.ChatMessage) error {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, "room:"+roomID, string(msgBytes)).Err(); err != nil {
		return err
	}

	return nil
}

// SubscribeToRooms підписується на всі канали кімнат.
func (s *Service) SubscribeToRooms() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, "room:*")
}

// IncrementUnread збільшує лічильник непрочитаних повідомлень одержувача.
func (s *Service) IncrementUnread(roomID, userID string) error {
	return s.Redis.Incr(s.Ctx, "unread:"+roomID+":"+userID).Err()
}

// GetUnread повертає лічильник непрочитаних для користувача в кімнаті.
func (s *Service) GetUnread(roomID, userID string) (int64, error) {
	count, err := s.Redis.Get(s.Ctx, "unread:"+roomID+":"+userID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ClearUnread скидає лічильник непрочитаних (користувач відкрив кімнату).
func (s *Service) ClearUnread(roomID, userID string) error {
	return s.Redis.Del(s.Ctx, "unread:"+roomID+":"+userID).Err()
}

// IsUserBanned перевіряє статус бану в Redis (швидка перевірка)
func (s *Service) IsUserBanned(userID string) (bool, error) {
	key := "ban:" + userID
	status, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status != "", nil
}

// SetBanned позначає користувача забаненим до вказаного часу.
func (s *Service) SetBanned(userID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.Redis.Set(s.Ctx, "ban:"+userID, "active", ttl).Err()
}

// ClearBan знімає бан з користувача.
func (s *Service) ClearBan(userID string) error {
	return s.Redis.Del(s.Ctx, "ban:"+userID).Err()
}
