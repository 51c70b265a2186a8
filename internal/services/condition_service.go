package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrConditionNameMissing = errors.New("condition name is required")
	ErrConditionNameTaken   = errors.New("a condition with this name already exists")
	ErrConditionNotFound    = errors.New("condition not found")
	ErrConditionInUse       = errors.New("condition is referenced by inventory items")
)

// ConditionService provides business logic for inventory conditions.
type ConditionService struct {
	conditionRepo repository.ConditionRepository
}

// NewConditionService creates a new ConditionService.
func NewConditionService(conditionRepo repository.ConditionRepository) *ConditionService {
	return &ConditionService{
		conditionRepo: conditionRepo,
	}
}

// Create creates a condition after checking name uniqueness.
func (s *ConditionService) Create(name, description string) (*models.InventoryCondition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrConditionNameMissing
	}

	if _, err := s.conditionRepo.FindByName(name, true); err == nil {
		return nil, ErrConditionNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check condition name: %w", err)
	}

	condition := &models.InventoryCondition{
		Name:        name,
		Description: description,
	}
	if err := s.conditionRepo.Create(condition); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConditionNameTaken
		}
		return nil, fmt.Errorf("failed to create condition: %w", err)
	}
	return condition, nil
}

// List returns all conditions.
func (s *ConditionService) List() ([]models.InventoryCondition, error) {
	conditions, err := s.conditionRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list conditions: %w", err)
	}
	return conditions, nil
}

// GetByID retrieves a condition by ID.
func (s *ConditionService) GetByID(id uint64) (*models.InventoryCondition, error) {
	condition, err := s.conditionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConditionNotFound
		}
		return nil, fmt.Errorf("failed to find condition: %w", err)
	}
	return condition, nil
}

// GetByName retrieves a condition by name, exact or partial match.
func (s *ConditionService) GetByName(name string, exact bool) (*models.InventoryCondition, error) {
	condition, err := s.conditionRepo.FindByName(name, exact)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConditionNotFound
		}
		return nil, fmt.Errorf("failed to find condition: %w", err)
	}
	return condition, nil
}

// Update applies a partial patch, re-checking name uniqueness.
func (s *ConditionService) Update(id uint64, name, description *string) (*models.InventoryCondition, error) {
	condition, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		newName := strings.TrimSpace(*name)
		if newName == "" {
			return nil, ErrConditionNameMissing
		}
		if existing, err := s.conditionRepo.FindByName(newName, true); err == nil {
			if existing.ID != id {
				return nil, ErrConditionNameTaken
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check condition name: %w", err)
		}
		condition.Name = newName
	}
	if description != nil {
		condition.Description = *description
	}

	if err := s.conditionRepo.Update(condition); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConditionNameTaken
		}
		return nil, fmt.Errorf("failed to update condition: %w", err)
	}
	return condition, nil
}

// Delete removes a condition. Conditions still referenced by items are kept.
func (s *ConditionService) Delete(id uint64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.conditionRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrConditionInUse
		}
		return fmt.Errorf("failed to delete condition: %w", err)
	}
	return nil
}
