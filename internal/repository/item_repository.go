package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/orgstock/inventory-api/internal/models"
	"gorm.io/gorm"
)

// numberRetries bounds the duplicate-key retry loop for concurrent
// creates under the same number prefix.
const numberRetries = 3

// ErrNumberConflict is returned when a unique number could not be derived
// after retrying.
var ErrNumberConflict = errors.New("item repository: could not derive a unique inventory number")

// GormItemRepository is a GORM implementation of ItemRepository
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &GormItemRepository{db: db}
}

// nextNumber computes the successor of the highest existing number under
// prefix. Sequences are zero-padded to a fixed width, so lexicographic
// order matches numeric order.
func nextNumber(tx *gorm.DB, prefix string) (string, error) {
	var last []string
	err := tx.Model(&models.InventoryItem{}).
		Where("number LIKE ?", prefix+"-%").
		Order("number DESC").
		Limit(1).
		Pluck("number", &last).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if len(last) > 0 {
		if n, err := strconv.Atoi(strings.TrimPrefix(last[0], prefix+"-")); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s-%06d", prefix, seq), nil
}

// CreateWithNumber derives the item number and inserts the row in one
// transaction, retrying on duplicate-key conflicts from concurrent creates.
func (r *GormItemRepository) CreateWithNumber(item *models.InventoryItem, prefix string) error {
	for attempt := 0; attempt < numberRetries; attempt++ {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			number, err := nextNumber(tx, prefix)
			if err != nil {
				return err
			}
			item.Number = number
			return tx.Create(item).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		item.ID = 0
	}
	return ErrNumberConflict
}

// UpdateWithNumber re-derives the number under a new prefix and saves the
// item atomically.
func (r *GormItemRepository) UpdateWithNumber(item *models.InventoryItem, prefix string) error {
	for attempt := 0; attempt < numberRetries; attempt++ {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			number, err := nextNumber(tx, prefix)
			if err != nil {
				return err
			}
			item.Number = number
			now := time.Now()
			item.UpdatedAt = &now
			return tx.Save(item).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return ErrNumberConflict
}

// FindByID finds an item by ID with optional preloading
func (r *GormItemRepository) FindByID(id uint64, preload ...string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByNumber finds an item by its derived inventory number
func (r *GormItemRepository) FindByNumber(number string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.Where("number = ?", number).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List retrieves items with filtering and pagination
func (r *GormItemRepository) List(filter ItemFilter) ([]models.InventoryItem, int64, error) {
	query := r.db.Model(&models.InventoryItem{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}
	if filter.ConditionID != nil {
		query = query.Where("condition_id = ?", *filter.ConditionID)
	}
	if filter.AssignedUserID != nil {
		query = query.Where("assigned_user_id = ?", *filter.AssignedUserID)
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

	var items []models.InventoryItem
	err := query.
		Preload("Category").
		Preload("Room").
		Preload("Condition").
		Preload("AssignedUser").
		Order("number").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update saves an item and stamps its update time
func (r *GormItemRepository) Update(item *models.InventoryItem) error {
	now := time.Now()
	item.UpdatedAt = &now
	return r.db.Save(item).Error
}

// Delete removes an item row
func (r *GormItemRepository) Delete(id uint64) error {
	return r.db.Delete(&models.InventoryItem{}, id).Error
}
