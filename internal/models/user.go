package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // Необхідний для pq.StringArray
	"gorm.io/gorm"
)

// User представляє користувача в системі.
// Містить профіль, демографічні дані та відношення лайків/метчів.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"` // UUID
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Age          int    `json:"age"`    // Вік користувача (>= 18 при реєстрації)
	Gender       string `json:"gender"` // Стать користувача
	Bio          string `json:"bio"`
	Location     string `json:"location"`

	Photos    pq.StringArray `gorm:"type:text[]" json:"photos"`    // Перше фото — головне
	Interests pq.StringArray `gorm:"type:text[]" json:"interests"` // Теги інтересів

	// Likes — кого цей користувач лайкнув; Matches — взаємні лайки.
	// Каталог користувачів є єдиним джерелом правди для цих відношень.
	Likes   pq.StringArray `gorm:"type:text[]" json:"likes"`
	Matches pq.StringArray `gorm:"type:text[]" json:"matches"`

	// TelegramID заповнюється, якщо користувач прив'язав Telegram для сповіщень.
	TelegramID string `gorm:"index"`

	ReputationScore int   `json:"-"`
	IsBlocked       bool  `json:"-"`
	BlockEndTime    int64 `json:"-"`
	BlockLevel      int   `json:"-"`
	LastBanDate     int64 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate — це хук GORM, який викликається перед створенням запису.
// Генерує UUID, якщо ID ще не встановлено, та нормалізує email до нижнього регістру.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.Email = strings.ToLower(u.Email)
	return
}

// HasLiked reports whether this user has already liked the given user.
func (u *User) HasLiked(userID string) bool {
	for _, id := range u.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// HasMatched reports whether the given user is in this user's matches.
func (u *User) HasMatched(userID string) bool {
	for _, id := range u.Matches {
		if id == userID {
			return true
		}
	}
	return false
}

// AddLike appends userID to Likes if it is not present yet.
func (u *User) AddLike(userID string) {
	if !u.HasLiked(userID) {
		u.Likes = append(u.Likes, userID)
	}
}

// AddMatch appends userID to Matches if it is not present yet.
func (u *User) AddMatch(userID string) {
	if !u.HasMatched(userID) {
		u.Matches = append(u.Matches, userID)
	}
}

// ProfileUpdate описує часткове оновлення профілю.
// ID та Email не можна змінити через оновлення — такі спроби мовчки ігноруються,
// щоб не зламати посилання з кімнат та повідомлень.
type ProfileUpdate struct {
	Name      *string   `json:"name"`
	Age       *int      `json:"age"`
	Bio       *string   `json:"bio"`
	Location  *string   `json:"location"`
	Photos    *[]string `json:"photos"`
	Interests *[]string `json:"interests"`
}
