package models

type Room struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	Name      string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	ShortName string `gorm:"type:varchar(10);uniqueIndex;not null" json:"short_name"`

	// Relations
	Items []InventoryItem `gorm:"foreignKey:RoomID" json:"items,omitempty"`
}
