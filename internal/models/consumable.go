package models

type Consumable struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Quantity    int    `gorm:"not null;default:0" json:"quantity"`
	MinQuantity int    `gorm:"not null;default:1" json:"min_quantity"`
	Unit        string `gorm:"type:varchar(20);not null;default:'pcs'" json:"unit"`
}

// IsLowStock reports whether the quantity has fallen to or below the
// configured minimum threshold.
func (c *Consumable) IsLowStock() bool {
	return c.Quantity <= c.MinQuantity
}
