package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrItemFieldsMissing = errors.New("item name, category and condition are required")
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrItemWrittenOff    = errors.New("inventory item is written off")
	ErrNoWrittenOffState = errors.New("no condition named WRITTEN_OFF is configured")
	ErrAssigneeNotFound  = errors.New("assigned user not found")
)

// roomlessCode substitutes for the room short code in derived numbers of
// items not assigned to a room.
const roomlessCode = "XX"

// ItemService provides business logic for inventory items, including the
// derived-number lifecycle and the one-way write-off transition.
type ItemService struct {
	itemRepo      repository.ItemRepository
	categoryRepo  repository.CategoryRepository
	roomRepo      repository.RoomRepository
	conditionRepo repository.ConditionRepository
	userRepo      repository.UserRepository
	logService    *LogService
}

// NewItemService creates a new ItemService.
func NewItemService(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	roomRepo repository.RoomRepository,
	conditionRepo repository.ConditionRepository,
	userRepo repository.UserRepository,
	logService *LogService,
) *ItemService {
	return &ItemService{
		itemRepo:      itemRepo,
		categoryRepo:  categoryRepo,
		roomRepo:      roomRepo,
		conditionRepo: conditionRepo,
		userRepo:      userRepo,
		logService:    logService,
	}
}

// itemPreloads are the relations loaded for item projections.
var itemPreloads = []string{"Category", "Room", "Condition", "AssignedUser"}

// CreateItemInput represents the fields to create an inventory item.
type CreateItemInput struct {
	Name           string
	Description    string
	CategoryID     uint64
	RoomID         *uint64
	ConditionID    uint64
	AssignedUserID *uint64
	Photo          []byte
	PurchaseDate   *time.Time
	PurchasePrice  *decimal.Decimal
	WarrantyUntil  *time.Time
}

// Create validates references, derives the inventory number and inserts
// the item atomically.
func (s *ItemService) Create(input CreateItemInput) (*models.InventoryItem, error) {
	if strings.TrimSpace(input.Name) == "" || input.CategoryID == 0 || input.ConditionID == 0 {
		return nil, ErrItemFieldsMissing
	}

	category, err := s.categoryRepo.FindByID(input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	if _, err := s.conditionRepo.FindByID(input.ConditionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConditionNotFound
		}
		return nil, fmt.Errorf("failed to resolve condition: %w", err)
	}

	roomCode := roomlessCode
	if input.RoomID != nil {
		room, err := s.roomRepo.FindByID(*input.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, fmt.Errorf("failed to resolve room: %w", err)
		}
		roomCode = room.ShortName
	}

	if input.AssignedUserID != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to resolve assigned user: %w", err)
		}
	}

	item := &models.InventoryItem{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		CategoryID:     input.CategoryID,
		RoomID:         input.RoomID,
		ConditionID:    input.ConditionID,
		AssignedUserID: input.AssignedUserID,
		Photo:          input.Photo,
		PurchaseDate:   input.PurchaseDate,
		PurchasePrice:  input.PurchasePrice,
		WarrantyUntil:  input.WarrantyUntil,
	}

	prefix := numberPrefix(category.ShortName, roomCode)
	if err := s.itemRepo.CreateWithNumber(item, prefix); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logService.Audit(fmt.Sprintf("inventory item %s (%q) created", item.Number, item.Name),
		models.LogInfo, fmt.Sprintf("/inventory/items/%d", item.ID), nil)

	return s.GetByID(item.ID)
}

// List returns items matching the filter, with relations preloaded.
func (s *ItemService) List(filter repository.ItemFilter) ([]models.InventoryItem, int64, error) {
	items, total, err := s.itemRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}
	return items, total, nil
}

// ListByCondition returns items currently in the named condition.
func (s *ItemService) ListByCondition(conditionName string) ([]models.InventoryItem, error) {
	condition, err := s.conditionRepo.FindByName(conditionName, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConditionNotFound
		}
		return nil, fmt.Errorf("failed to resolve condition: %w", err)
	}

	items, _, err := s.itemRepo.List(repository.ItemFilter{ConditionID: &condition.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// GetByID retrieves an item with its relations.
func (s *ItemService) GetByID(id uint64) (*models.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(id, itemPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return item, nil
}

// GetByNumber retrieves an item by its derived inventory number.
func (s *ItemService) GetByNumber(number string) (*models.InventoryItem, error) {
	item, err := s.itemRepo.FindByNumber(number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return s.GetByID(item.ID)
}

// UpdateItemInput holds the partial fields of an item update. The
// write-off flag is deliberately absent: the state is reachable only
// through the WriteOff transition and cannot be reversed. ClearRoom and
// ClearAssignedUser null the optional references; they win over the
// corresponding ID fields when both are set.
type UpdateItemInput struct {
	Name              *string
	Description       *string
	CategoryID        *uint64
	RoomID            *uint64
	ClearRoom         bool
	ConditionID       *uint64
	AssignedUserID    *uint64
	ClearAssignedUser bool
	Photo             []byte
	PurchaseDate      *time.Time
	PurchasePrice     *decimal.Decimal
	WarrantyUntil     *time.Time
}

// Update applies a partial patch. The inventory number is re-derived only
// when the category or room changes. Written-off items are immutable.
func (s *ItemService) Update(id uint64, input UpdateItemInput) (*models.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	if item.IsWrittenOff {
		return nil, ErrItemWrittenOff
	}

	needsNumberUpdate := false

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrItemFieldsMissing
		}
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.ConditionID != nil && *input.ConditionID != item.ConditionID {
		if _, err := s.conditionRepo.FindByID(*input.ConditionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrConditionNotFound
			}
			return nil, fmt.Errorf("failed to resolve condition: %w", err)
		}
		item.ConditionID = *input.ConditionID
	}
	if input.ClearAssignedUser {
		item.AssignedUserID = nil
	} else if input.AssignedUserID != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to resolve assigned user: %w", err)
		}
		item.AssignedUserID = input.AssignedUserID
	}
	if input.Photo != nil {
		item.Photo = input.Photo
	}
	if input.PurchaseDate != nil {
		item.PurchaseDate = input.PurchaseDate
	}
	if input.PurchasePrice != nil {
		item.PurchasePrice = input.PurchasePrice
	}
	if input.WarrantyUntil != nil {
		item.WarrantyUntil = input.WarrantyUntil
	}
	if input.CategoryID != nil && *input.CategoryID != item.CategoryID {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		item.CategoryID = *input.CategoryID
		needsNumberUpdate = true
	}
	if input.ClearRoom {
		if item.RoomID != nil {
			item.RoomID = nil
			needsNumberUpdate = true
		}
	} else if input.RoomID != nil && (item.RoomID == nil || *input.RoomID != *item.RoomID) {
		if _, err := s.roomRepo.FindByID(*input.RoomID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, fmt.Errorf("failed to resolve room: %w", err)
		}
		item.RoomID = input.RoomID
		needsNumberUpdate = true
	}

	if needsNumberUpdate {
		prefix, err := s.prefixFor(item)
		if err != nil {
			return nil, err
		}
		if err := s.itemRepo.UpdateWithNumber(item, prefix); err != nil {
			return nil, fmt.Errorf("failed to update item: %w", err)
		}
	} else {
		if err := s.itemRepo.Update(item); err != nil {
			return nil, fmt.Errorf("failed to update item: %w", err)
		}
	}

	return s.GetByID(item.ID)
}

// WriteOff moves an item into the terminal written-off state. The
// transition is one-way; re-applying it is a no-op.
func (s *ItemService) WriteOff(id uint64) (*models.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	if item.IsWrittenOff {
		return s.GetByID(id)
	}

	writtenOff, err := s.conditionRepo.FindByName(models.ConditionWrittenOff, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoWrittenOffState
		}
		return nil, fmt.Errorf("failed to resolve written-off condition: %w", err)
	}

	item.ConditionID = writtenOff.ID
	item.IsWrittenOff = true
	if err := s.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to write off item: %w", err)
	}

	s.logService.Audit(fmt.Sprintf("inventory item %s (%q) written off", item.Number, item.Name),
		models.LogWarning, fmt.Sprintf("/inventory/items/%d", item.ID), nil)

	return s.GetByID(id)
}

// Delete removes an item.
func (s *ItemService) Delete(id uint64) error {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to find item: %w", err)
	}

	if err := s.itemRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.logService.Audit(fmt.Sprintf("inventory item %s (%q) deleted", item.Number, item.Name),
		models.LogWarning, "", nil)
	return nil
}

func (s *ItemService) prefixFor(item *models.InventoryItem) (string, error) {
	category, err := s.categoryRepo.FindByID(item.CategoryID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve category: %w", err)
	}

	roomCode := roomlessCode
	if item.RoomID != nil {
		room, err := s.roomRepo.FindByID(*item.RoomID)
		if err != nil {
			return "", fmt.Errorf("failed to resolve room: %w", err)
		}
		roomCode = room.ShortName
	}
	return numberPrefix(category.ShortName, roomCode), nil
}

// numberPrefix is the category/room part of a derived inventory number,
// e.g. "PC-SR" for category "PC" in room "SR".
func numberPrefix(categoryShort, roomShort string) string {
	return strings.ToUpper(categoryShort) + "-" + strings.ToUpper(roomShort)
}
