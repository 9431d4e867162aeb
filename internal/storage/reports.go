package storage

import (
	"errors"
	"log"
	"time"

	"lovegogo/backend/internal/models"

	"gorm.io/gorm"
)

// SaveReport зберігає скаргу. Новим скаргам присвоюється статус "new".
func (s *Service) SaveReport(report *models.Report) error {
	if report.Status == "" {
		report.Status = "new"
	}

	result := s.DB.Create(report)

	if result.Error != nil {
		log.Printf("ERROR: Failed to save report for room %s: %v", report.RoomID, result.Error)
		return result.Error
	}

	return nil
}

// GetReportByID повертає скаргу за її внутрішнім ID (gorm.Model.ID).
func (s *Service) GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	err := s.DB.First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("report not found")
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetReportsForUser повертає скарги на користувача, подані після since.
func (s *Service) GetReportsForUser(userID string, since time.Time) ([]models.Report, error) {
	var reports []models.Report
	if err := s.DB.Where("reported_user_id = ? AND created_at > ?", userID, since).
		Find(&reports).Error; err != nil {
		log.Printf("ERROR: Failed to get reports for user %s: %v", userID, err)
		return nil, err
	}
	return reports, nil
}

// GetLastBanDate повертає час останнього бану користувача (unix seconds, 0 якщо не банився).
func (s *Service) GetLastBanDate(userID string) (int64, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return 0, err
	}
	return user.LastBanDate, nil
}
