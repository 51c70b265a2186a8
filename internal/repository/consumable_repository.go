package repository

import (
	"strings"

	"github.com/orgstock/inventory-api/internal/models"
	"gorm.io/gorm"
)

// GormConsumableRepository is a GORM implementation of ConsumableRepository
type GormConsumableRepository struct {
	db *gorm.DB
}

// NewConsumableRepository creates a new ConsumableRepository
func NewConsumableRepository(db *gorm.DB) ConsumableRepository {
	return &GormConsumableRepository{db: db}
}

func (r *GormConsumableRepository) Create(consumable *models.Consumable) error {
	return r.db.Create(consumable).Error
}

func (r *GormConsumableRepository) FindByID(id uint64) (*models.Consumable, error) {
	var consumable models.Consumable
	if err := r.db.First(&consumable, id).Error; err != nil {
		return nil, err
	}
	return &consumable, nil
}

func (r *GormConsumableRepository) FindByName(name string, exact bool) (*models.Consumable, error) {
	var consumable models.Consumable
	query := r.db
	if exact {
		query = query.Where("name = ?", name)
	} else {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if err := query.First(&consumable).Error; err != nil {
		return nil, err
	}
	return &consumable, nil
}

func (r *GormConsumableRepository) List() ([]models.Consumable, error) {
	var consumables []models.Consumable
	if err := r.db.Order("name").Find(&consumables).Error; err != nil {
		return nil, err
	}
	return consumables, nil
}

// ListLowStock returns consumables at or below their minimum threshold
func (r *GormConsumableRepository) ListLowStock() ([]models.Consumable, error) {
	var consumables []models.Consumable
	if err := r.db.Where("quantity <= min_quantity").Order("name").Find(&consumables).Error; err != nil {
		return nil, err
	}
	return consumables, nil
}

func (r *GormConsumableRepository) Update(consumable *models.Consumable) error {
	return r.db.Save(consumable).Error
}

func (r *GormConsumableRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Consumable{}, id).Error
}

// IncreaseQuantity adds amount to the stored quantity
func (r *GormConsumableRepository) IncreaseQuantity(id uint64, amount int) error {
	return r.db.Model(&models.Consumable{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", amount)).Error
}

// DecreaseQuantity subtracts amount from the stored quantity, never below zero.
// The clamp runs in SQL so concurrent decrements cannot drive it negative.
func (r *GormConsumableRepository) DecreaseQuantity(id uint64, amount int) error {
	return r.db.Model(&models.Consumable{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr(
			"CASE WHEN quantity - ? < 0 THEN 0 ELSE quantity - ? END", amount, amount)).Error
}
