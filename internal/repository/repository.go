package repository

import (
	"github.com/orgstock/inventory-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint64) (*models.User, error)

	// FindByUsername looks a user up by username. With exact=false the
	// match is a case-insensitive substring search.
	FindByUsername(username string, exact bool) (*models.User, error)

	// FindByEmail looks a user up by email, exact or partial.
	FindByEmail(email string, exact bool) (*models.User, error)

	// FindByAnyIdentity returns a user matching any of the given
	// identity attributes. Empty arguments are ignored.
	FindByAnyIdentity(username, email, fullName, phone string) (*models.User, error)

	List(offset, limit int) ([]models.User, int64, error)
	Update(user *models.User) error

	// Delete removes the row (hard delete).
	Delete(id uint64) error
}

// RoomRepository defines the interface for room data access
type RoomRepository interface {
	Create(room *models.Room) error
	FindByID(id uint64) (*models.Room, error)
	FindByName(name string, exact bool) (*models.Room, error)
	FindByShortName(shortName string) (*models.Room, error)
	List() ([]models.Room, error)
	Update(room *models.Room) error
	Delete(id uint64) error
}

// CategoryRepository defines the interface for inventory category data access
type CategoryRepository interface {
	Create(category *models.InventoryCategory) error
	FindByID(id uint64) (*models.InventoryCategory, error)
	FindByName(name string, exact bool) (*models.InventoryCategory, error)
	FindByShortName(shortName string) (*models.InventoryCategory, error)
	List() ([]models.InventoryCategory, error)
	Update(category *models.InventoryCategory) error
	Delete(id uint64) error
}

// ConditionRepository defines the interface for inventory condition data access
type ConditionRepository interface {
	Create(condition *models.InventoryCondition) error
	FindByID(id uint64) (*models.InventoryCondition, error)
	FindByName(name string, exact bool) (*models.InventoryCondition, error)
	List() ([]models.InventoryCondition, error)
	Update(condition *models.InventoryCondition) error
	Delete(id uint64) error
}

// ItemRepository defines the interface for inventory item data access
type ItemRepository interface {
	// CreateWithNumber derives the next sequence number under prefix and
	// inserts the item in a single transaction. Concurrent creates under
	// the same prefix are resolved by the unique index on number plus a
	// bounded retry.
	CreateWithNumber(item *models.InventoryItem, prefix string) error

	// UpdateWithNumber re-derives the item number under a new prefix and
	// saves the item in a single transaction.
	UpdateWithNumber(item *models.InventoryItem, prefix string) error

	FindByID(id uint64, preload ...string) (*models.InventoryItem, error)
	FindByNumber(number string) (*models.InventoryItem, error)
	List(filter ItemFilter) ([]models.InventoryItem, int64, error)
	Update(item *models.InventoryItem) error
	Delete(id uint64) error
}

// ItemFilter holds filtering options for listing inventory items.
type ItemFilter struct {
	CategoryID     *uint64
	RoomID         *uint64
	ConditionID    *uint64
	AssignedUserID *uint64
	Offset         int
	Limit          int
}

// ConsumableRepository defines the interface for consumable data access
type ConsumableRepository interface {
	Create(consumable *models.Consumable) error
	FindByID(id uint64) (*models.Consumable, error)
	FindByName(name string, exact bool) (*models.Consumable, error)
	List() ([]models.Consumable, error)

	// ListLowStock returns consumables with quantity at or below their
	// minimum threshold.
	ListLowStock() ([]models.Consumable, error)

	Update(consumable *models.Consumable) error
	Delete(id uint64) error

	// IncreaseQuantity adds amount to the stored quantity.
	IncreaseQuantity(id uint64, amount int) error

	// DecreaseQuantity subtracts amount, clamping at zero.
	DecreaseQuantity(id uint64, amount int) error
}

// LogRepository defines the interface for audit log data access.
// Logs are append-only; there is no update.
type LogRepository interface {
	Create(log *models.Log) error
	FindByID(id uint64) (*models.Log, error)
	List(filter LogFilter) ([]models.Log, int64, error)
}

// LogFilter holds filtering options for listing logs.
type LogFilter struct {
	Type   *models.LogType
	UserID *uint64
	Offset int
	Limit  int
}
