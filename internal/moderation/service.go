// Package moderation provides the core logic for handling user reports,
// including reputation management and applying bans.
package moderation

import (
	"time"

	"lovegogo/backend/internal/analysis"
	"lovegogo/backend/internal/config"
	"lovegogo/backend/internal/models"
)

// Store — частина сховища, потрібна модерації. Реалізується *storage.Service.
type Store interface {
	GetUserByID(id string) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdateUserReputation(userID string, delta int) error
	SaveReport(report *models.Report) error
	GetReportsForUser(userID string, since time.Time) ([]models.Report, error)
	GetLastBanDate(userID string) (int64, error)
	SetBanned(userID string, until time.Time) error
}

// Service handles the business logic for reports.
type Service struct {
	Storage Store
}

// NewService creates a new moderation service.
func NewService(s Store) *Service {
	return &Service{Storage: s}
}

// HandleReport processes a new report: persists it, applies the type-weighted
// reputation penalty and re-evaluates the ban state of the reported user.
func (s *Service) HandleReport(report *models.Report) error {
	if _, err := s.Storage.GetUserByID(report.ReportedUserID); err != nil {
		return err
	}

	if err := s.Storage.SaveReport(report); err != nil {
		return err
	}

	weight := analysis.GetWeight(report.ReportType)
	if err := s.Storage.UpdateUserReputation(report.ReportedUserID, -weight); err != nil {
		return err
	}

	return s.CheckForBan(report.ReportedUserID)
}

// CheckForBan checks if a user should be banned based on their reputation and report history.
func (s *Service) CheckForBan(userID string) error {
	user, err := s.Storage.GetUserByID(userID)
	if err != nil {
		return err
	}

	// Threshold Ban
	if user.ReputationScore < config.BanThresholdReputation {
		return s.applyBan(user)
	}

	// Frequency Ban
	reports, err := s.Storage.GetReportsForUser(userID, time.Now().Add(-config.BanFrequencyWindow))
	if err != nil {
		return err
	}
	if len(reports) > config.BanThresholdFrequency {
		return s.applyBan(user)
	}

	return nil
}

func (s *Service) applyBan(user *models.User) error {
	lastBanDate, err := s.Storage.GetLastBanDate(user.ID)
	if err != nil {
		return err
	}

	level := 1
	if lastBanDate > 0 {
		if time.Since(time.Unix(lastBanDate, 0)) < 7*24*time.Hour {
			level = 2
		} else if time.Since(time.Unix(lastBanDate, 0)) < 30*24*time.Hour {
			level = 3
		}
	}

	duration := getBanDuration(level)
	until := time.Now().Add(duration)

	user.IsBlocked = true
	user.BlockEndTime = until.Unix()
	user.BlockLevel = level
	user.LastBanDate = time.Now().Unix()
	if err := s.Storage.UpdateUser(user); err != nil {
		return err
	}

	// Дзеркалимо бан у Redis, щоб стрічка та WebSocket перевіряли його дешево.
	return s.Storage.SetBanned(user.ID, until)
}

func getBanDuration(level int) time.Duration {
	switch level {
	case 1:
		return config.BanLevel1Duration
	case 2:
		return config.BanLevel2Duration
	default:
		return config.BanLevel3Duration
	}
}
