package storage

import (
	"errors"
	"log"
	"time"

	"lovegogo/backend/internal/models"

	"gorm.io/gorm"
)

// GetRoomByID повертає кімнату за її ID.
func (s *Service) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom

	err := s.DB.Where("room_id = ?", roomID).First(&room).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get room %s: %v", roomID, err)
		return nil, err
	}
	return &room, nil
}

// GetOrCreateRoom повертає кімнату для невпорядкованої пари учасників,
// створюючи її при першому зверненні. ID кімнати детермінований,
// тому повторні виклики з будь-яким порядком аргументів дають ту саму кімнату.
func (s *Service) GetOrCreateRoom(userA, userB string) (*models.ChatRoom, error) {
	a, b := models.CanonicalPair(userA, userB)
	room := models.ChatRoom{RoomID: models.DeriveRoomID(a, b)}

	defaults := models.ChatRoom{
		User1ID:   a,
		User2ID:   b,
		IsActive:  true,
		StartedAt: time.Now(),
	}

	result := s.DB.Where("room_id = ?", room.RoomID).
		Attrs(defaults).
		FirstOrCreate(&room)
	if result.Error != nil {
		log.Printf("ERROR: Failed to get or create room for %s and %s: %v", a, b, result.Error)
		return nil, result.Error
	}
	return &room, nil
}

// SaveMessage зберігає повідомлення в PostgreSQL.
// msg.ID буде заповнено GORM після створення запису.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %s: %v", msg.RoomID, err)
		return err
	}
	return nil
}

// GetChatHistory отримує історію повідомлень для кімнати.
// Сортування: за часом створення, при рівності — за порядком вставки (ID).
func (s *Service) GetChatHistory(roomID string) ([]models.Message, error) {
	var history []models.Message
	if err := s.DB.Where("room_id = ?", roomID).
		Order("created_at asc, id asc").
		Find(&history).Error; err != nil {
		log.Printf("ERROR: Failed to get chat history for room %s: %v", roomID, err)
		return nil, err
	}
	return history, nil
}

// GetLastMessage повертає останнє повідомлення кімнати або nil, якщо їх немає.
func (s *Service) GetLastMessage(roomID string) (*models.Message, error) {
	var msg models.Message
	err := s.DB.Where("room_id = ?", roomID).
		Order("created_at desc, id desc").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetMessagesBefore повертає до limit повідомлень, створених строго раніше before,
// у висхідному порядку. Використовується для пагінації "load more".
func (s *Service) GetMessagesBefore(roomID string, before time.Time, limit int) ([]models.Message, error) {
	var page []models.Message
	if err := s.DB.Where("room_id = ? AND created_at < ?", roomID, before).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&page).Error; err != nil {
		log.Printf("ERROR: Failed to page messages for room %s: %v", roomID, err)
		return nil, err
	}

	// Запит вибирає найновіші зі старших за курсор, тому розвертаємо у висхідний порядок.
	for i, j := 0, len(page)-1; i < j; i, j = i+1, j-1 {
		page[i], page[j] = page[j], page[i]
	}
	return page, nil
}
