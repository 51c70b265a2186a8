package repository

import (
	"strings"

	"github.com/orgstock/inventory-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username, exact or case-insensitive partial
func (r *GormUserRepository) FindByUsername(username string, exact bool) (*models.User, error) {
	var user models.User
	query := r.db
	if exact {
		query = query.Where("username = ?", username)
	} else {
		query = query.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(username)+"%")
	}
	if err := query.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email, exact or case-insensitive partial
func (r *GormUserRepository) FindByEmail(email string, exact bool) (*models.User, error) {
	var user models.User
	query := r.db
	if exact {
		query = query.Where("email = ?", email)
	} else {
		query = query.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(email)+"%")
	}
	if err := query.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByAnyIdentity returns a user matching any of the given identity
// attributes. Empty arguments do not participate in the match.
func (r *GormUserRepository) FindByAnyIdentity(username, email, fullName, phone string) (*models.User, error) {
	query := r.db.Model(&models.User{})

	matched := false
	cond := r.db.Session(&gorm.Session{NewDB: true})
	if username != "" {
		cond = cond.Or("username = ?", username)
		matched = true
	}
	if email != "" {
		cond = cond.Or("email = ?", email)
		matched = true
	}
	if fullName != "" {
		cond = cond.Or("full_name = ?", fullName)
		matched = true
	}
	if phone != "" {
		cond = cond.Or("phone_number = ?", phone)
		matched = true
	}
	if !matched {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.User
	if err := query.Where(cond).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns users with pagination and the total count
func (r *GormUserRepository) List(offset, limit int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("id")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes the user row
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Delete(&models.User{}, id).Error
}
