package chat_test

import (
	"testing"
	"time"

	"lovegogo/backend/internal/chat"
	"lovegogo/backend/internal/config"
	"lovegogo/backend/internal/models"
	"lovegogo/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchedPair(store *fakeStore) (aliceID, bobID string) {
	store.addUser(&models.User{ID: "alice", Gender: "female", Age: 28, Likes: []string{"bob"}, Matches: []string{"bob"}})
	store.addUser(&models.User{ID: "bob", Gender: "male", Age: 30, Likes: []string{"alice"}, Matches: []string{"alice"}})
	return "alice", "bob"
}

// TestListRooms_OnePerMatch verifies exactly one room per match partner and
// a fresh room with no messages and a zero unread counter.
func TestListRooms_OnePerMatch(t *testing.T) {
	store := newFakeStore()
	matchedPair(store)
	store.addUser(&models.User{ID: "carol", Gender: "female", Age: 27, Matches: []string{}})
	svc := chat.NewConversationService(store)

	rooms, err := svc.ListRooms("alice")

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "bob", rooms[0].PartnerID)
	assert.Nil(t, rooms[0].LastMessage)
	assert.Zero(t, rooms[0].UnreadCount)
	assert.True(t, rooms[0].Room.IsActive)
}

// TestListRooms_DeterministicIDs verifies both participants see the same room id,
// and repeated calls never create duplicates.
func TestListRooms_DeterministicIDs(t *testing.T) {
	store := newFakeStore()
	matchedPair(store)
	svc := chat.NewConversationService(store)

	aliceRooms, err := svc.ListRooms("alice")
	require.NoError(t, err)
	bobRooms, err := svc.ListRooms("bob")
	require.NoError(t, err)
	aliceAgain, err := svc.ListRooms("alice")
	require.NoError(t, err)

	require.Len(t, aliceRooms, 1)
	require.Len(t, bobRooms, 1)
	assert.Equal(t, aliceRooms[0].Room.RoomID, bobRooms[0].Room.RoomID,
		"room id must not depend on which participant materializes it")
	assert.Equal(t, aliceRooms[0].Room.RoomID, aliceAgain[0].Room.RoomID)
	assert.Len(t, store.rooms, 1, "exactly one room per unordered pair")
}

// TestListRooms_ViewerNotFound verifies the typed failure for unknown viewers.
func TestListRooms_ViewerNotFound(t *testing.T) {
	store := newFakeStore()
	svc := chat.NewConversationService(store)

	_, err := svc.ListRooms("ghost")

	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

// TestSendMessage_Validation covers blank text, outsiders and unknown rooms.
// Every failure must leave stored state untouched.
func TestSendMessage_Validation(t *testing.T) {
	store := newFakeStore()
	matchedPair(store)
	store.addUser(&models.User{ID: "eve", Gender: "female", Age: 22})
	svc := chat.NewConversationService(store)

	rooms, err := svc.ListRooms("alice")
	require.NoError(t, err)
	roomID := rooms[0].Room.RoomID

	_, err = svc.SendMessage(roomID, "alice", "")
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)

	_, err = svc.SendMessage(roomID, "alice", "   ")
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)

	_, err = svc.SendMessage(roomID, "eve", "hi")
	assert.ErrorIs(t, err, chat.ErrNotParticipant)

	_, err = svc.SendMessage("no-such-room", "alice", "hi")
	assert.ErrorIs(t, err, storage.ErrRoomNotFound)

	history, err := svc.ListMessages(roomID, "alice")
	require.NoError(t, err)
	assert.Empty(t, history, "failed sends must not create messages")
}

// TestSendMessage_UnreadCounters verifies only the recipient's counter moves,
// and that reading the room clears it.
func TestSendMessage_UnreadCounters(t *testing.T) {
	store := newFakeStore()
	matchedPair(store)
	svc := chat.NewConversationService(store)

	rooms, err := svc.ListRooms("alice")
	require.NoError(t, err)
	roomID := rooms[0].Room.RoomID

	_, err = svc.SendMessage(roomID, "alice", "hello")
	require.NoError(t, err)
	_, err = svc.SendMessage(roomID, "alice", "are you there?")
	require.NoError(t, err)

	bobUnread, _ := store.GetUnread(roomID, "bob")
	aliceUnread, _ := store.GetUnread(roomID, "alice")
	assert.EqualValues(t, 2, bobUnread)
	assert.EqualValues(t, 0, aliceUnread, "sender's own unread counter never moves")

	require.NoError(t, svc.MarkRoomRead(roomID, "bob"))
	bobUnread, _ = store.GetUnread(roomID, "bob")
	assert.EqualValues(t, 0, bobUnread)

	err = svc.MarkRoomRead(roomID, "eve")
	assert.ErrorIs(t, err, chat.ErrNotParticipant)
}

// TestSendMessage_OrderingAndLastMessage verifies ascending history order,
// non-decreasing timestamps and last-message bookkeeping.
func TestSendMessage_OrderingAndLastMessage(t *testing.T) {
	store := newFakeStore()
	matchedPair(store)
	svc := chat.NewConversationService(store)

	rooms, err := svc.ListRooms("alice")
	require.NoError(t, err)
	roomID := rooms[0].Room.RoomID

	// Повідомлення з майбутньою міткою; наступний send не може створити
	// "головне" повідомлення з меншою міткою часу.
	future := time.Now().Add(time.Minute)
	store.seedMessage(roomID, "bob", "from the future", future)

	msg, err := svc.SendMessage(roomID, "alice", "reply")
	require.NoError(t, err)
	assert.False(t, msg.CreatedAt.Before(future), "new head must not be out of order")

	history, err := svc.ListMessages(roomID, "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].CreatedAt.Before(history[i-1].CreatedAt),
			"history must be sorted ascending by timestamp")
	}

	rooms, err = svc.ListRooms("alice")
	require.NoError(t, err)
	require.NotNil(t, rooms[0].LastMessage)
	assert.Equal(t, "reply", rooms[0].LastMessage.Content)

	// Realtime-копія опублікована в канал кімнати.
	assert.Len(t, store.published, 1)
	assert.Equal(t, "reply", store.published[0].Content)
}

// TestListMessages_TieBreakByInsertion verifies equal timestamps fall back to
// insertion (id) order.
func TestListMessages_TieBreakByInsertion(t *testing.T) {
	store := newFakeStore()
	matchedPair(store)
	svc := chat.NewConversationService(store)

	rooms, err := svc.ListRooms("alice")
	require.NoError(t, err)
	roomID := rooms[0].Room.RoomID

	ts := time.Now()
	store.seedMessage(roomID, "alice", "first", ts)
	store.seedMessage(roomID, "bob", "second", ts)
	store.seedMessage(roomID, "alice", "third", ts)

	history, err := svc.ListMessages(roomID, "alice")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{history[0].Content, history[1].Content, history[2].Content})
}

// TestLoadMoreMessages verifies stable cursor paging: no repeats, no gaps,
// and a deterministic empty continuation without a cursor.
func TestLoadMoreMessages(t *testing.T) {
	store := newFakeStore()
	matchedPair(store)
	svc := chat.NewConversationService(store)

	rooms, err := svc.ListRooms("alice")
	require.NoError(t, err)
	roomID := rooms[0].Room.RoomID

	base := time.Now().Add(-time.Hour)
	total := config.MessagePageSize*2 + 5
	for i := 0; i < total; i++ {
		store.seedMessage(roomID, "alice", "msg", base.Add(time.Duration(i)*time.Second))
	}

	// Без курсора — порожнє продовження.
	page, err := svc.LoadMoreMessages(roomID, "alice", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, page)

	// Курсор — мітка найстарішого вже завантаженого повідомлення.
	cursor := base.Add(time.Duration(total-config.MessagePageSize) * time.Second)
	page, err = svc.LoadMoreMessages(roomID, "alice", cursor)
	require.NoError(t, err)
	require.Len(t, page, config.MessagePageSize)
	for _, m := range page {
		assert.True(t, m.CreatedAt.Before(cursor), "pages must be strictly older than the cursor")
	}

	// Наступна сторінка не перетинається з попередньою.
	nextCursor := page[0].CreatedAt
	nextPage, err := svc.LoadMoreMessages(roomID, "alice", nextCursor)
	require.NoError(t, err)
	for _, m := range nextPage {
		assert.True(t, m.CreatedAt.Before(nextCursor))
	}

	_, err = svc.LoadMoreMessages("no-such-room", "alice", time.Now())
	assert.ErrorIs(t, err, storage.ErrRoomNotFound)
}

// TestHistoryAccess_OutsiderRejected verifies non-participants can neither read
// a room's history nor page through it.
func TestHistoryAccess_OutsiderRejected(t *testing.T) {
	store := newFakeStore()
	matchedPair(store)
	store.addUser(&models.User{ID: "eve", Gender: "female", Age: 22})
	svc := chat.NewConversationService(store)

	rooms, err := svc.ListRooms("alice")
	require.NoError(t, err)
	roomID := rooms[0].Room.RoomID
	store.seedMessage(roomID, "alice", "secret", time.Now())

	_, err = svc.ListMessages(roomID, "eve")
	assert.ErrorIs(t, err, chat.ErrNotParticipant)

	_, err = svc.LoadMoreMessages(roomID, "eve", time.Now())
	assert.ErrorIs(t, err, chat.ErrNotParticipant)

	// Учасники читають як і раніше.
	history, err := svc.ListMessages(roomID, "bob")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
