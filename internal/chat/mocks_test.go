package chat_test

import (
	"sort"
	"sync"
	"time"

	"lovegogo/backend/internal/models"
	"lovegogo/backend/internal/storage"
)

// fakeStore is an in-memory stand-in for *storage.Service. It covers both the
// chat.Store and matching.Store surfaces so the end-to-end flow test can drive
// the whole engine against a single fake.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]*models.User
	order     []string
	rooms     map[string]*models.ChatRoom
	messages  []models.Message
	nextMsgID uint
	unread    map[string]int64
	published []models.ChatMessage
	banned    map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[string]*models.User),
		rooms:  make(map[string]*models.ChatRoom),
		unread: make(map[string]int64),
		banned: make(map[string]bool),
	}
}

func cloneUser(u *models.User) *models.User {
	copied := *u
	copied.Photos = append([]string(nil), u.Photos...)
	copied.Interests = append([]string(nil), u.Interests...)
	copied.Likes = append([]string(nil), u.Likes...)
	copied.Matches = append([]string(nil), u.Matches...)
	return &copied
}

func (f *fakeStore) addUser(u *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = cloneUser(u)
	f.order = append(f.order, u.ID)
}

// seedMessage inserts a message directly, bypassing the service, for tests that
// need a prebuilt history.
func (f *fakeStore) seedMessage(roomID, senderID, content string, createdAt time.Time) models.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMsgID++
	msg := models.Message{RoomID: roomID, SenderID: senderID, Content: content, Type: "text"}
	msg.ID = f.nextMsgID
	msg.CreatedAt = createdAt
	f.messages = append(f.messages, msg)
	return msg
}

// --- matching.Store ---

func (f *fakeStore) GetUserByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (f *fakeStore) UpdateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeStore) SaveUserPair(u1, u2 *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u1.ID] = cloneUser(u1)
	f.users[u2.ID] = cloneUser(u2)
	return nil
}

func (f *fakeStore) ListUsers() ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]models.User, 0, len(f.order))
	for _, id := range f.order {
		users = append(users, *cloneUser(f.users[id]))
	}
	return users, nil
}

func (f *fakeStore) IsUserBanned(userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banned[userID], nil
}

// --- chat.Store ---

func (f *fakeStore) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, storage.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

func (f *fakeStore) GetOrCreateRoom(userA, userB string) (*models.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, b := models.CanonicalPair(userA, userB)
	roomID := models.DeriveRoomID(a, b)
	if room, ok := f.rooms[roomID]; ok {
		copied := *room
		return &copied, nil
	}
	room := &models.ChatRoom{
		RoomID:    roomID,
		User1ID:   a,
		User2ID:   b,
		IsActive:  true,
		StartedAt: time.Now(),
	}
	f.rooms[roomID] = room
	copied := *room
	return &copied, nil
}

func (f *fakeStore) SaveMessage(msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMsgID++
	msg.ID = f.nextMsgID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeStore) sortedRoomMessages(roomID string) []models.Message {
	history := make([]models.Message, 0)
	for _, m := range f.messages {
		if m.RoomID == roomID {
			history = append(history, m)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].CreatedAt.Equal(history[j].CreatedAt) {
			return history[i].ID < history[j].ID
		}
		return history[i].CreatedAt.Before(history[j].CreatedAt)
	})
	return history
}

func (f *fakeStore) GetChatHistory(roomID string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedRoomMessages(roomID), nil
}

func (f *fakeStore) GetLastMessage(roomID string) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	history := f.sortedRoomMessages(roomID)
	if len(history) == 0 {
		return nil, nil
	}
	last := history[len(history)-1]
	return &last, nil
}

func (f *fakeStore) GetMessagesBefore(roomID string, before time.Time, limit int) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	history := f.sortedRoomMessages(roomID)
	older := make([]models.Message, 0)
	for _, m := range history {
		if m.CreatedAt.Before(before) {
			older = append(older, m)
		}
	}
	if len(older) > limit {
		older = older[len(older)-limit:]
	}
	return older, nil
}

func (f *fakeStore) PublishMessage(roomID string, msg models.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeStore) IncrementUnread(roomID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unread[roomID+":"+userID]++
	return nil
}

func (f *fakeStore) GetUnread(roomID, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread[roomID+":"+userID], nil
}

func (f *fakeStore) ClearUnread(roomID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.unread, roomID+":"+userID)
	return nil
}
