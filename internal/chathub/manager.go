package chathub

import (
	"encoding/json"
	"log"

	"lovegogo/backend/internal/models"
	"lovegogo/backend/internal/storage"
)

// MessageSink persists an incoming realtime message. Wired to the conversation
// service so that websocket traffic goes through the same validation and
// ordering rules as the REST path.
type MessageSink func(roomID, senderID, text string) (*models.Message, error)

// ManagerService — центральний диспетчер realtime-з'єднань.
// Один Goroutine (Run) володіє мапою Clients; решта взаємодіє через канали.
type ManagerService struct {
	Clients map[string]Client

	// Channels
	IncomingCh   chan models.ChatMessage
	RegisterCh   chan Client
	UnregisterCh chan Client

	Storage *storage.Service
	Sink    MessageSink

	pubSubChannel chan models.ChatMessage
}

// NewManagerService створює новий хаб.
func NewManagerService(s *storage.Service) *ManagerService {
	return &ManagerService{
		Clients:       make(map[string]Client),
		IncomingCh:    make(chan models.ChatMessage),
		RegisterCh:    make(chan Client),
		UnregisterCh:  make(chan Client),
		Storage:       s,
		pubSubChannel: make(chan models.ChatMessage),
	}
}

// SetMessageSink встановлює обробник вхідних повідомлень.
func (m *ManagerService) SetMessageSink(sink MessageSink) {
	m.Sink = sink
}

// StartPubSubListener запускає Goroutine, яка слухає Redis Pub/Sub.
// Повідомлення, опубліковані будь-яким процесом у канали кімнат, потрапляють
// у pubSubChannel і роздаються підключеним учасникам кімнати.
func (m *ManagerService) StartPubSubListener() {
	go func() {
		pubsub := m.Storage.SubscribeToRooms()
		defer pubsub.Close()

		ch := pubsub.Channel()

		for msg := range ch {
			var chatMsg models.ChatMessage
			err := json.Unmarshal([]byte(msg.Payload), &chatMsg)
			if err != nil {
				log.Printf("Error unmarshalling Redis message: %v", err)
				continue
			}

			m.pubSubChannel <- chatMsg
		}
	}()
}

// Run — головний цикл хаба. Підписку на Redis запускає окремо
// StartPubSubListener.
func (m *ManagerService) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			// Повторна реєстрація (нова вкладка): старе з'єднання закриваємо,
			// щоб воно не лишилося висіти без доставки.
			if old, ok := m.Clients[client.GetUserID()]; ok && old != client {
				old.Close()
			}
			m.Clients[client.GetUserID()] = client
			log.Printf("Client registered: %s", client.GetUserID())

		case client := <-m.UnregisterCh:
			// Видаляємо лише якщо в мапі саме цей клієнт: unregister старої
			// вкладки не має знімати з мапи живу нову.
			if current, ok := m.Clients[client.GetUserID()]; ok && current == client {
				delete(m.Clients, client.GetUserID())
				client.Close()
				log.Printf("Client unregistered: %s", client.GetUserID())
			}

		case msg := <-m.IncomingCh:
			// Вхідне повідомлення з WebSocket: персистимо через Sink.
			// Доставка назад відбудеться через Pub/Sub після збереження.
			if m.Sink == nil {
				continue
			}
			if _, err := m.Sink(msg.RoomID, msg.SenderID, msg.Content); err != nil {
				log.Printf("ERROR: Failed to persist realtime message from %s: %v", msg.SenderID, err)
			}

		case msg := <-m.pubSubChannel:
			m.deliverToRoom(msg)
		}
	}
}

// deliverToRoom роздає повідомлення підключеним учасникам кімнати.
// Учасники визначаються за записом кімнати в каталозі, а не за станом хаба.
func (m *ManagerService) deliverToRoom(msg models.ChatMessage) {
	room, err := m.Storage.GetRoomByID(msg.RoomID)
	if err != nil {
		log.Printf("WARNING: Message for unknown room %s dropped: %v", msg.RoomID, err)
		return
	}

	for _, userID := range []string{room.User1ID, room.User2ID} {
		client, ok := m.Clients[userID]
		if !ok {
			continue
		}
		select {
		case client.GetSendChannel() <- msg:
		default:
			// Клієнт не встигає читати — від'єднуємо його.
			delete(m.Clients, userID)
			client.Close()
		}
	}
}
