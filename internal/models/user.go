package models

import "time"

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Email        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	FullName     string     `gorm:"type:varchar(100);not null" json:"full_name"`
	PhoneNumber  string     `gorm:"type:varchar(20);not null" json:"phone_number"`
	RegisteredAt time.Time  `gorm:"autoCreateTime" json:"registered_at"`
	DeletedAt    *time.Time `json:"-"`
	IsAdmin      bool       `gorm:"not null;default:false" json:"is_admin"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	Avatar       []byte     `json:"-"`

	// Relations
	AssignedItems []InventoryItem `gorm:"foreignKey:AssignedUserID" json:"-"`
	Logs          []Log           `gorm:"foreignKey:UserID" json:"-"`
}

// CanLogin reports whether the account may authenticate. Soft-deleted
// accounts keep their row but are locked out.
func (u *User) CanLogin() bool {
	return u.IsActive && u.DeletedAt == nil
}
