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
	ErrConsumableNameMissing   = errors.New("consumable name is required")
	ErrConsumableNotFound      = errors.New("consumable not found")
	ErrConsumableBadQuantity   = errors.New("quantity and minimum quantity must not be negative")
	ErrConsumableBadAdjustment = errors.New("adjustment amount must be positive")
)

const defaultUnit = "pcs"

// ConsumableService provides business logic for consumable stock.
type ConsumableService struct {
	consumableRepo repository.ConsumableRepository
	logService     *LogService
}

// NewConsumableService creates a new ConsumableService.
func NewConsumableService(consumableRepo repository.ConsumableRepository, logService *LogService) *ConsumableService {
	return &ConsumableService{
		consumableRepo: consumableRepo,
		logService:     logService,
	}
}

// CreateConsumableInput represents the fields to create a consumable.
type CreateConsumableInput struct {
	Name        string
	Description string
	Quantity    int
	MinQuantity *int
	Unit        string
}

// Create creates a consumable. The minimum quantity defaults to 1 and the
// unit to "pcs" when omitted.
func (s *ConsumableService) Create(input CreateConsumableInput) (*models.Consumable, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrConsumableNameMissing
	}

	minQuantity := 1
	if input.MinQuantity != nil {
		minQuantity = *input.MinQuantity
	}
	if input.Quantity < 0 || minQuantity < 0 {
		return nil, ErrConsumableBadQuantity
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = defaultUnit
	}

	consumable := &models.Consumable{
		Name:        name,
		Description: input.Description,
		Quantity:    input.Quantity,
		MinQuantity: minQuantity,
		Unit:        unit,
	}
	if err := s.consumableRepo.Create(consumable); err != nil {
		return nil, fmt.Errorf("failed to create consumable: %w", err)
	}

	s.logService.Audit(fmt.Sprintf("consumable %q created", consumable.Name), models.LogInfo,
		fmt.Sprintf("/consumables/%d", consumable.ID), nil)

	return consumable, nil
}

// List returns all consumables.
func (s *ConsumableService) List() ([]models.Consumable, error) {
	consumables, err := s.consumableRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list consumables: %w", err)
	}
	return consumables, nil
}

// ListLowStock returns consumables at or below their minimum threshold.
func (s *ConsumableService) ListLowStock() ([]models.Consumable, error) {
	consumables, err := s.consumableRepo.ListLowStock()
	if err != nil {
		return nil, fmt.Errorf("failed to list low-stock consumables: %w", err)
	}
	return consumables, nil
}

// GetByID retrieves a consumable by ID.
func (s *ConsumableService) GetByID(id uint64) (*models.Consumable, error) {
	consumable, err := s.consumableRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsumableNotFound
		}
		return nil, fmt.Errorf("failed to find consumable: %w", err)
	}
	return consumable, nil
}

// UpdateConsumableInput holds the partial fields of a consumable update.
type UpdateConsumableInput struct {
	Name        *string
	Description *string
	Quantity    *int
	MinQuantity *int
	Unit        *string
}

// Update applies a partial patch to a consumable.
func (s *ConsumableService) Update(id uint64, input UpdateConsumableInput) (*models.Consumable, error) {
	consumable, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrConsumableNameMissing
		}
		consumable.Name = name
	}
	if input.Description != nil {
		consumable.Description = *input.Description
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, ErrConsumableBadQuantity
		}
		consumable.Quantity = *input.Quantity
	}
	if input.MinQuantity != nil {
		if *input.MinQuantity < 0 {
			return nil, ErrConsumableBadQuantity
		}
		consumable.MinQuantity = *input.MinQuantity
	}
	if input.Unit != nil && strings.TrimSpace(*input.Unit) != "" {
		consumable.Unit = strings.TrimSpace(*input.Unit)
	}

	if err := s.consumableRepo.Update(consumable); err != nil {
		return nil, fmt.Errorf("failed to update consumable: %w", err)
	}
	return consumable, nil
}

// Delete removes a consumable.
func (s *ConsumableService) Delete(id uint64) error {
	consumable, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.consumableRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete consumable: %w", err)
	}

	s.logService.Audit(fmt.Sprintf("consumable %q deleted", consumable.Name), models.LogWarning, "", nil)
	return nil
}

// Increase adds stock. The amount must be positive; the total is unbounded.
func (s *ConsumableService) Increase(id uint64, amount int) (*models.Consumable, error) {
	if amount <= 0 {
		return nil, ErrConsumableBadAdjustment
	}
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	if err := s.consumableRepo.IncreaseQuantity(id, amount); err != nil {
		return nil, fmt.Errorf("failed to increase quantity: %w", err)
	}
	return s.GetByID(id)
}

// Decrease removes stock, clamping the quantity at zero.
func (s *ConsumableService) Decrease(id uint64, amount int) (*models.Consumable, error) {
	if amount <= 0 {
		return nil, ErrConsumableBadAdjustment
	}
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	if err := s.consumableRepo.DecreaseQuantity(id, amount); err != nil {
		return nil, fmt.Errorf("failed to decrease quantity: %w", err)
	}

	consumable, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if consumable.IsLowStock() {
		s.logService.Audit(fmt.Sprintf("consumable %q is low on stock (%d %s left)",
			consumable.Name, consumable.Quantity, consumable.Unit),
			models.LogWarning, fmt.Sprintf("/consumables/%d", consumable.ID), nil)
	}
	return consumable, nil
}
