package repository

import (
	"strings"

	"github.com/orgstock/inventory-api/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Create(category *models.InventoryCategory) error {
	return r.db.Create(category).Error
}

func (r *GormCategoryRepository) FindByID(id uint64) (*models.InventoryCategory, error) {
	var category models.InventoryCategory
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByName(name string, exact bool) (*models.InventoryCategory, error) {
	var category models.InventoryCategory
	query := r.db
	if exact {
		query = query.Where("name = ?", name)
	} else {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if err := query.First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByShortName(shortName string) (*models.InventoryCategory, error) {
	var category models.InventoryCategory
	if err := r.db.Where("short_name = ?", shortName).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) List() ([]models.InventoryCategory, error) {
	var categories []models.InventoryCategory
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCategoryRepository) Update(category *models.InventoryCategory) error {
	return r.db.Save(category).Error
}

func (r *GormCategoryRepository) Delete(id uint64) error {
	return r.db.Delete(&models.InventoryCategory{}, id).Error
}
