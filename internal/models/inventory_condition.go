package models

// Well-known condition names. ConditionWrittenOff marks the terminal
// condition assigned by the write-off transition.
const (
	ConditionNormal         = "NORMAL"
	ConditionRequiresRepair = "REQUIRES_REPAIR"
	ConditionWrittenOff     = "WRITTEN_OFF"
)

type InventoryCondition struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Relations
	Items []InventoryItem `gorm:"foreignKey:ConditionID" json:"items,omitempty"`
}
