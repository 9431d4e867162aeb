// Package notify surfaces match notifications to users: a realtime system
// message into the pair's room plus a Telegram push for users who linked a bot.
package notify

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"lovegogo/backend/internal/localization"
	"lovegogo/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Store — частина сховища, потрібна для сповіщень.
type Store interface {
	GetOrCreateRoom(userA, userB string) (*models.ChatRoom, error)
	PublishMessage(roomID string, msg models.ChatMessage) error
}

// Service реалізує matching.MatchNotifier.
type Service struct {
	Storage   Store
	Bot       *tgbotapi.BotAPI // nil, якщо бот не налаштований
	Localizer *localization.Localizer
	Lang      string
}

// NewService створює сервіс сповіщень. bot може бути nil.
func NewService(s Store, bot *tgbotapi.BotAPI, loc *localization.Localizer, lang string) *Service {
	if lang == "" {
		lang = "en"
	}
	return &Service{Storage: s, Bot: bot, Localizer: loc, Lang: lang}
}

// MatchFound сповіщає обидві сторони про новий метч.
// Realtime-повідомлення йде в канал кімнати пари (доставиться підключеним
// клієнтам через хаб); likee додатково отримує Telegram-пуш, якщо прив'язав бота.
// Невдача доставки не впливає на вже зафіксований метч.
func (n *Service) MatchFound(liker, likee *models.User) {
	room, err := n.Storage.GetOrCreateRoom(liker.ID, likee.ID)
	if err != nil {
		log.Printf("ERROR: Failed to materialize room for match %s/%s: %v", liker.ID, likee.ID, err)
		return
	}

	notice := models.ChatMessage{
		RoomID:   room.RoomID,
		SenderID: "system",
		Content:  n.Localizer.GetString(n.Lang, "match_found_room"),
		Type:     "system_match_found",
		SentAt:   time.Now(),
	}
	if err := n.Storage.PublishMessage(room.RoomID, notice); err != nil {
		log.Printf("ERROR: Failed to publish match notice for room %s: %v", room.RoomID, err)
	}

	n.sendTelegram(likee, liker.Name)
}

func (n *Service) sendTelegram(user *models.User, partnerName string) {
	if n.Bot == nil || user.TelegramID == "" {
		return
	}

	chatID, err := strconv.ParseInt(user.TelegramID, 10, 64)
	if err != nil || chatID == 0 {
		return
	}

	text := fmt.Sprintf(n.Localizer.GetString(n.Lang, "match_found"), partnerName)
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.Bot.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send Telegram notification to %s: %v", user.ID, err)
	}
}
