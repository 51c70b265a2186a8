package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/orgstock/inventory-api/internal/logger"
	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrLogDescriptionRequired = errors.New("log description is required")
	ErrLogTypeInvalid         = errors.New("unknown log severity")
)

// LogService provides the append-only audit trail. Entries are never
// updated or deleted through normal flow.
type LogService struct {
	logRepo repository.LogRepository
}

// NewLogService creates a new LogService.
func NewLogService(logRepo repository.LogRepository) *LogService {
	return &LogService{
		logRepo: logRepo,
	}
}

// Record appends an audit entry.
func (s *LogService) Record(description string, logType models.LogType, link string, userID *uint64) error {
	if strings.TrimSpace(description) == "" {
		return ErrLogDescriptionRequired
	}
	if !logType.Valid() {
		return ErrLogTypeInvalid
	}

	entry := &models.Log{
		Description:       description,
		Type:              logType,
		RelatedEntityLink: link,
		UserID:            userID,
	}
	if err := s.logRepo.Create(entry); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}

// Audit records an entry on behalf of another service. A failed audit
// write never fails the operation that triggered it.
func (s *LogService) Audit(description string, logType models.LogType, link string, userID *uint64) {
	if err := s.Record(description, logType, link, userID); err != nil {
		logger.L().Warn("audit entry dropped", zap.String("description", description), zap.Error(err))
	}
}

// List returns audit entries most-recent-first, optionally filtered by
// severity and user.
func (s *LogService) List(filter repository.LogFilter) ([]models.Log, int64, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, 0, ErrLogTypeInvalid
	}

	logs, total, err := s.logRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list logs: %w", err)
	}
	return logs, total, nil
}
