package storage

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"lovegogo/backend/internal/config"
	"lovegogo/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Типізовані помилки каталогу. Викликачі перевіряють їх через errors.Is.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrRoomNotFound   = errors.New("chat room not found")
)

type Storage interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdateUserProfile(id string, upd models.ProfileUpdate) (*models.User, error)
	SaveUserPair(u1, u2 *models.User) error
	ListUsers() ([]models.User, error)
	UpdateUserReputation(userID string, delta int) error

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

	IsUserBanned(userID string) (bool, error)
	SetBanned(userID string, until time.Time) error
	ClearBan(userID string) error

	SaveReport(report *models.Report) error
	GetReportByID(id uint) (*models.Report, error)
	GetReportsForUser(userID string, since time.Time) ([]models.Report, error)
	GetLastBanDate(userID string) (int64, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser створює нового користувача в PostgreSQL.
// Email порівнюється без урахування регістру; дублікат повертає ErrDuplicateEmail.
func (s *Service) CreateUser(user *models.User) error {
	var existing models.User
	err := s.DB.Where("email = ?", strings.ToLower(user.Email)).First(&existing).Error
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user.ReputationScore == 0 {
		user.ReputationScore = config.InitialReputation
	}

	if err := s.DB.Create(user).Error; err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", user.Email, err)
		return err
	}
	return nil
}

// GetUserByID повертає користувача за його ID.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get user %s: %v", id, err)
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail шукає користувача за email без урахування регістру.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser зберігає користувача в PostgreSQL
func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// UpdateUserProfile застосовує часткове оновлення профілю.
// ID та Email залишаються незмінними незалежно від вхідних даних.
func (s *Service) UpdateUserProfile(id string, upd models.ProfileUpdate) (*models.User, error) {
	var updated *models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if upd.Name != nil {
			user.Name = *upd.Name
		}
		if upd.Age != nil {
			user.Age = *upd.Age
		}
		if upd.Bio != nil {
			user.Bio = *upd.Bio
		}
		if upd.Location != nil {
			user.Location = *upd.Location
		}
		if upd.Photos != nil {
			user.Photos = *upd.Photos
		}
		if upd.Interests != nil {
			user.Interests = *upd.Interests
		}

		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		updated = &user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SaveUserPair зберігає двох користувачів в одній транзакції.
// Використовується резолвером метчів: обидва набори matches мають оновитися
// атомарно, без видимого проміжного стану.
func (s *Service) SaveUserPair(u1, u2 *models.User) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(u1).Error; err != nil {
			return err
		}
		return tx.Save(u2).Error
	})
}

// ListUsers повертає всіх користувачів у стабільному порядку створення.
func (s *Service) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at asc, id asc").Find(&users).Error; err != nil {
		log.Printf("ERROR: Failed to list users: %v", err)
		return nil, err
	}
	return users, nil
}

// UpdateUserReputation змінює репутацію користувача на delta,
// обмежуючи результат діапазоном [MinReputation, MaxReputation].
func (s *Service) UpdateUserReputation(userID string, delta int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		user.ReputationScore += delta
		if user.ReputationScore > config.MaxReputation {
			user.ReputationScore = config.MaxReputation
		}
		if user.ReputationScore < config.MinReputation {
			user.ReputationScore = config.MinReputation
		}

		return tx.Save(&user).Error
	})
}
