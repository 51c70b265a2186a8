package dto

import (
	"time"

	"github.com/orgstock/inventory-api/internal/models"
)

// ConsumableDTO represents a consumable in API responses
type ConsumableDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	Unit        string `json:"unit"`
	LowStock    bool   `json:"low_stock"`
}

// LogDTO represents an audit log entry in API responses
type LogDTO struct {
	ID                uint64    `json:"id"`
	Description       string    `json:"description"`
	Type              string    `json:"type"`
	CreatedAt         time.Time `json:"created_at"`
	RelatedEntityLink string    `json:"related_entity_link,omitempty"`
	UserID            *uint64   `json:"user_id,omitempty"`
	Username          string    `json:"username,omitempty"`
}

// ToConsumableDTO converts a consumable to DTO
func ToConsumableDTO(consumable models.Consumable) ConsumableDTO {
	return ConsumableDTO{
		ID:          consumable.ID,
		Name:        consumable.Name,
		Description: consumable.Description,
		Quantity:    consumable.Quantity,
		MinQuantity: consumable.MinQuantity,
		Unit:        consumable.Unit,
		LowStock:    consumable.IsLowStock(),
	}
}

// ToConsumableDTOs converts a slice of consumables to DTOs
func ToConsumableDTOs(consumables []models.Consumable) []ConsumableDTO {
	dtos := make([]ConsumableDTO, len(consumables))
	for i, consumable := range consumables {
		dtos[i] = ToConsumableDTO(consumable)
	}
	return dtos
}

// ToLogDTO converts a log entry to DTO
func ToLogDTO(log models.Log) LogDTO {
	dto := LogDTO{
		ID:                log.ID,
		Description:       log.Description,
		Type:              log.Type.String(),
		CreatedAt:         log.CreatedAt,
		RelatedEntityLink: log.RelatedEntityLink,
		UserID:            log.UserID,
	}
	if log.User != nil {
		dto.Username = log.User.Username
	}
	return dto
}

// ToLogDTOs converts a slice of log entries to DTOs
func ToLogDTOs(logs []models.Log) []LogDTO {
	dtos := make([]LogDTO, len(logs))
	for i, log := range logs {
		dtos[i] = ToLogDTO(log)
	}
	return dtos
}
