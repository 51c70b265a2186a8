package repository

import (
	"github.com/orgstock/inventory-api/internal/models"
	"gorm.io/gorm"
)

// GormLogRepository is a GORM implementation of LogRepository
type GormLogRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new LogRepository
func NewLogRepository(db *gorm.DB) LogRepository {
	return &GormLogRepository{db: db}
}

func (r *GormLogRepository) Create(log *models.Log) error {
	return r.db.Create(log).Error
}

func (r *GormLogRepository) FindByID(id uint64) (*models.Log, error) {
	var log models.Log
	if err := r.db.First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// List retrieves log entries most-recent-first with optional severity and
// user filters.
func (r *GormLogRepository) List(filter LogFilter) ([]models.Log, int64, error) {
	query := r.db.Model(&models.Log{})

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var logs []models.Log
	if err := query.Order("created_at DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
