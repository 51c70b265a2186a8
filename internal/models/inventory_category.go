package models

type InventoryCategory struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	ShortName   string `gorm:"type:varchar(10);uniqueIndex;not null" json:"short_name"`
	Description string `gorm:"type:text" json:"description"`

	// Relations
	Items []InventoryItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}
