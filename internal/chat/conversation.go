// Package chat derives chat rooms from the match relation and owns message history.
// The match relation itself always comes from the user directory — this package
// never keeps its own copy of it.
package chat

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"lovegogo/backend/internal/config"
	"lovegogo/backend/internal/models"
)

// Типізовані помилки надсилання повідомлень.
var (
	ErrEmptyMessage   = errors.New("message text is empty")
	ErrNotParticipant = errors.New("sender is not a room participant")
)

// Store — частина сховища, потрібна для розмов. Реалізується *storage.Service.
type Store interface {
	GetUserByID(id string) (*models.User, error)
	GetRoomByID(roomID string) (*models.ChatRoom, error)
	GetOrCreateRoom(userA, userB string) (*models.ChatRoom, error)
	SaveMessage(msg *models.Message) error
	GetChatHistory(roomID string) ([]models.Message, error)
	GetLastMessage(roomID string) (*models.Message, error)
	GetMessagesBefore(roomID string, before time.Time, limit int) ([]models.Message, error)
	PublishMessage(roomID string, msg models.ChatMessage) error
	IncrementUnread(roomID, userID string) error
	GetUnread(roomID, userID string) (int64, error)
	ClearUnread(roomID, userID string) error
}

// RoomView — кімната очима конкретного глядача: партнер, останнє повідомлення
// та його лічильник непрочитаних.
type RoomView struct {
	Room        models.ChatRoom `json:"room"`
	PartnerID   string          `json:"partner_id"`
	LastMessage *models.Message `json:"last_message"`
	UnreadCount int64           `json:"unread_count"`
}

// ConversationService керує кімнатами та історією повідомлень.
type ConversationService struct {
	Storage Store

	// roomLocks серіалізує надсилання в межах однієї кімнати, щоб мітки часу
	// повідомлень ніколи не спадали.
	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

// NewConversationService створює новий ConversationService.
func NewConversationService(s Store) *ConversationService {
	return &ConversationService{
		Storage:   s,
		roomLocks: make(map[string]*sync.Mutex),
	}
}

func (c *ConversationService) lockForRoom(roomID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.roomLocks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		c.roomLocks[roomID] = lock
	}
	return lock
}

// ListRooms повертає кімнати глядача — рівно по одній на кожного метч-партнера.
// Відношення метчів щоразу читається з каталогу; кімната створюється ліниво
// при першому зверненні, з нульовим лічильником непрочитаних і без повідомлень.
func (c *ConversationService) ListRooms(viewerID string) ([]RoomView, error) {
	viewer, err := c.Storage.GetUserByID(viewerID)
	if err != nil {
		return nil, err
	}

	views := make([]RoomView, 0, len(viewer.Matches))
	for _, partnerID := range viewer.Matches {
		room, err := c.Storage.GetOrCreateRoom(viewer.ID, partnerID)
		if err != nil {
			return nil, err
		}

		lastMsg, err := c.Storage.GetLastMessage(room.RoomID)
		if err != nil {
			return nil, err
		}

		unread, err := c.Storage.GetUnread(room.RoomID, viewer.ID)
		if err != nil {
			return nil, err
		}

		views = append(views, RoomView{
			Room:        *room,
			PartnerID:   partnerID,
			LastMessage: lastMsg,
			UnreadCount: unread,
		})
	}

	return views, nil
}

// ListMessages повертає всю історію кімнати, відсортовану за часом створення
// (при рівних мітках — за порядком вставки). Історію бачать лише учасники кімнати.
func (c *ConversationService) ListMessages(roomID, viewerID string) ([]models.Message, error) {
	room, err := c.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(viewerID) {
		return nil, ErrNotParticipant
	}
	return c.Storage.GetChatHistory(roomID)
}

// SendMessage додає нове повідомлення в кімнату.
//
// Мітка часу нового повідомлення ніколи не менша за мітку попереднього
// останнього повідомлення кімнати. Лічильник непрочитаних збільшується лише
// для одержувача; відправник свій стан не змінює. Помилка валідації не змінює
// жодного збереженого стану.
func (c *ConversationService) SendMessage(roomID, senderID, text string) (*models.Message, error) {
	room, err := c.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	recipientID, ok := room.OtherParticipant(senderID)
	if !ok {
		return nil, ErrNotParticipant
	}

	lock := c.lockForRoom(roomID)
	lock.Lock()
	defer lock.Unlock()

	createdAt := time.Now()
	last, err := c.Storage.GetLastMessage(roomID)
	if err != nil {
		return nil, err
	}
	if last != nil && createdAt.Before(last.CreatedAt) {
		createdAt = last.CreatedAt
	}

	msg := &models.Message{
		RoomID:   roomID,
		SenderID: senderID,
		Content:  text,
		Type:     "text",
	}
	msg.CreatedAt = createdAt

	if err := c.Storage.SaveMessage(msg); err != nil {
		return nil, err
	}

	if err := c.Storage.IncrementUnread(roomID, recipientID); err != nil {
		log.Printf("ERROR: Failed to bump unread counter for %s in room %s: %v", recipientID, roomID, err)
	}

	// Realtime-доставка через Redis Pub/Sub; невдача не відкочує збережене повідомлення.
	rt := models.ChatMessage{
		ID:       msg.ID,
		SenderID: senderID,
		RoomID:   roomID,
		Content:  text,
		Type:     "text",
		SentAt:   msg.CreatedAt,
	}
	if err := c.Storage.PublishMessage(roomID, rt); err != nil {
		log.Printf("ERROR: Failed to publish message for room %s: %v", roomID, err)
	}

	return msg, nil
}

// LoadMoreMessages повертає сторінку повідомлень, створених строго раніше курсора
// before (мітка часу найстарішого вже завантаженого повідомлення). Нульовий курсор
// означає "усе вже доставлено" — повертається порожнє продовження. Повідомлення
// ніколи не повторюються і не пропускаються; пагінація доступна лише учасникам.
func (c *ConversationService) LoadMoreMessages(roomID, viewerID string, before time.Time) ([]models.Message, error) {
	room, err := c.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(viewerID) {
		return nil, ErrNotParticipant
	}
	if before.IsZero() {
		return []models.Message{}, nil
	}
	return c.Storage.GetMessagesBefore(roomID, before, config.MessagePageSize)
}

// MarkRoomRead скидає лічильник непрочитаних глядача в кімнаті.
// Це і є той момент звірки, коли одержувач нарешті матеріалізує свою кімнату.
func (c *ConversationService) MarkRoomRead(roomID, viewerID string) error {
	room, err := c.Storage.GetRoomByID(roomID)
	if err != nil {
		return err
	}
	if !room.HasParticipant(viewerID) {
		return ErrNotParticipant
	}
	return c.Storage.ClearUnread(roomID, viewerID)
}
