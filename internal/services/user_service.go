package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/orgstock/inventory-api/internal/constants"
	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserFieldsMissing    = errors.New("username, password, email, full name and phone number are required")
	ErrUserIdentityTaken    = errors.New("a user with the same username, email, full name or phone number already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrPasswordUnchanged    = errors.New("new password must differ from the old one")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles user accounts and authentication checks.
type UserService struct {
	userRepo   repository.UserRepository
	logService *LogService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, logService *LogService) *UserService {
	return &UserService{
		userRepo:   userRepo,
		logService: logService,
	}
}

// CreateUserInput represents the required information to create a user.
type CreateUserInput struct {
	Username    string
	Password    string
	Email       string
	FullName    string
	PhoneNumber string
	IsAdmin     bool
	Avatar      []byte
}

// Create validates the input and creates a user. Any identity attribute
// (username, email, full name, phone) colliding with an existing user
// blocks creation.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	phone := strings.TrimSpace(input.PhoneNumber)

	if username == "" || input.Password == "" || email == "" || fullName == "" || phone == "" {
		return nil, ErrUserFieldsMissing
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByAnyIdentity(username, email, fullName, phone); err == nil {
		return nil, ErrUserIdentityTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check user identity: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Email:        email,
		FullName:     fullName,
		PhoneNumber:  phone,
		IsAdmin:      input.IsAdmin,
		IsActive:     true,
		Avatar:       input.Avatar,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserIdentityTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logService.Audit(fmt.Sprintf("user %q created", user.Username), models.LogInfo,
		fmt.Sprintf("/users/%d", user.ID), &user.ID)

	return user, nil
}

// Login verifies credentials and returns the authenticated user. Unknown
// username, wrong password and locked accounts fail indistinguishably.
func (s *UserService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.CanLogin() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// List returns users with pagination.
func (s *UserService) List(offset, limit int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username, exact or partial match.
func (s *UserService) GetByUsername(username string, exact bool) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username, exact)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email, exact or partial match.
func (s *UserService) GetByEmail(email string, exact bool) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email, exact)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUserInput holds the partial fields of a user update.
type UpdateUserInput struct {
	Username    *string
	Email       *string
	FullName    *string
	PhoneNumber *string
}

// Update applies a partial patch to a user, re-checking identity
// collisions for any changed attribute.
func (s *UserService) Update(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	check := func(username, email, fullName, phone string) error {
		existing, err := s.userRepo.FindByAnyIdentity(username, email, fullName, phone)
		if err == nil && existing.ID != id {
			return ErrUserIdentityTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check user identity: %w", err)
		}
		return nil
	}

	if input.Username != nil && *input.Username != user.Username {
		if err := check(*input.Username, "", "", ""); err != nil {
			return nil, err
		}
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := check("", *input.Email, "", ""); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserIdentityTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes a user. Soft deletion marks the account inactive and
// stamps deleted_at; hard deletion removes the row.
func (s *UserService) Delete(id uint64, soft bool) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if soft {
		now := time.Now()
		user.DeletedAt = &now
		user.IsActive = false
		if err := s.userRepo.Update(user); err != nil {
			return fmt.Errorf("failed to deactivate user: %w", err)
		}
	} else {
		if err := s.userRepo.Delete(id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
	}

	s.logService.Audit(fmt.Sprintf("user %q deleted (soft=%t)", user.Username, soft),
		models.LogWarning, fmt.Sprintf("/users/%d", user.ID), nil)
	return nil
}

// ChangePassword replaces a user's password after verifying the old one.
func (s *UserService) ChangePassword(id uint64, oldPassword, newPassword string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if oldPassword == newPassword {
		return ErrPasswordUnchanged
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// ChangePasswordAsAdmin replaces a user's password without the old one.
// The caller must already be authorized as an admin.
func (s *UserService) ChangePasswordAsAdmin(id uint64, newPassword string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logService.Audit(fmt.Sprintf("password reset for user %q", user.Username),
		models.LogWarning, fmt.Sprintf("/users/%d", user.ID), nil)
	return nil
}

// ChangeRole toggles the admin flag.
func (s *UserService) ChangeRole(id uint64, isAdmin bool) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	user.IsAdmin = isAdmin
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// ChangeAvatar replaces the stored avatar. A nil avatar clears it.
func (s *UserService) ChangeAvatar(id uint64, avatar []byte) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	user.Avatar = avatar
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	return nil
}
