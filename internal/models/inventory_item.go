package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID             uint64           `gorm:"primarykey" json:"id"`
	Number         string           `gorm:"type:varchar(50);uniqueIndex;not null" json:"number"`
	Name           string           `gorm:"type:varchar(100);not null" json:"name"`
	Description    string           `gorm:"type:text" json:"description"`
	CategoryID     uint64           `gorm:"not null" json:"category_id"`
	RoomID         *uint64          `json:"room_id"`
	ConditionID    uint64           `gorm:"not null" json:"condition_id"`
	AssignedUserID *uint64          `json:"assigned_user_id"`
	Photo          []byte           `json:"-"`
	PurchaseDate   *time.Time       `json:"purchase_date"`
	PurchasePrice  *decimal.Decimal `gorm:"type:decimal(10,2)" json:"purchase_price"`
	WarrantyUntil  *time.Time       `json:"warranty_until"`
	IsWrittenOff   bool             `gorm:"not null;default:false" json:"is_written_off"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at"`

	// Relations
	Category     InventoryCategory  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Room         *Room              `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Condition    InventoryCondition `gorm:"foreignKey:ConditionID" json:"condition,omitempty"`
	AssignedUser *User              `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
}
