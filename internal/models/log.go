package models

import "time"

type LogType int

const (
	LogInfo LogType = iota + 1
	LogWarning
	LogError
	LogCritical
)

// String returns the severity name used in API responses and reports.
func (t LogType) String() string {
	switch t {
	case LogInfo:
		return "info"
	case LogWarning:
		return "warning"
	case LogError:
		return "error"
	case LogCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Valid reports whether t is a known severity.
func (t LogType) Valid() bool {
	return t >= LogInfo && t <= LogCritical
}

// Log is an append-only audit record. Normal flow never updates or
// deletes rows.
type Log struct {
	ID                uint64    `gorm:"primarykey" json:"id"`
	Description       string    `gorm:"type:text;not null" json:"description"`
	Type              LogType   `gorm:"not null" json:"type"`
	CreatedAt         time.Time `json:"created_at"`
	RelatedEntityLink string    `gorm:"type:varchar(255)" json:"related_entity_link"`
	UserID            *uint64   `json:"user_id"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
