package dto

import (
	"encoding/base64"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orgstock/inventory-api/internal/models"
)

// RoomDTO represents a room in API responses
type RoomDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// CategoryDTO represents an inventory category in API responses
type CategoryDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"short_name"`
	Description string `json:"description,omitempty"`
}

// ConditionDTO represents an inventory condition in API responses
type ConditionDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ItemDTO represents a fully expanded inventory item
type ItemDTO struct {
	ID            uint64           `json:"id"`
	Number        string           `json:"number"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Category      CategoryDTO      `json:"category"`
	Room          *RoomDTO         `json:"room,omitempty"`
	Condition     ConditionDTO     `json:"condition"`
	AssignedUser  *UserDTO         `json:"assigned_user,omitempty"`
	Photo         string           `json:"photo,omitempty"`
	PurchaseDate  *time.Time       `json:"purchase_date,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	WarrantyUntil *time.Time       `json:"warranty_until,omitempty"`
	IsWrittenOff  bool             `json:"is_written_off"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
}

// ItemShortDTO is the compact item projection for list views
type ItemShortDTO struct {
	ID        uint64 `json:"id"`
	Number    string `json:"number"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Room      string `json:"room,omitempty"`
	Condition string `json:"condition"`
}

// ToRoomDTO converts a room to DTO
func ToRoomDTO(room models.Room) RoomDTO {
	return RoomDTO{
		ID:        room.ID,
		Name:      room.Name,
		ShortName: room.ShortName,
	}
}

// ToRoomDTOs converts a slice of rooms to DTOs
func ToRoomDTOs(rooms []models.Room) []RoomDTO {
	dtos := make([]RoomDTO, len(rooms))
	for i, room := range rooms {
		dtos[i] = ToRoomDTO(room)
	}
	return dtos
}

// ToCategoryDTO converts a category to DTO
func ToCategoryDTO(category models.InventoryCategory) CategoryDTO {
	return CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		ShortName:   category.ShortName,
		Description: category.Description,
	}
}

// ToCategoryDTOs converts a slice of categories to DTOs
func ToCategoryDTOs(categories []models.InventoryCategory) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = ToCategoryDTO(category)
	}
	return dtos
}

// ToConditionDTO converts a condition to DTO
func ToConditionDTO(condition models.InventoryCondition) ConditionDTO {
	return ConditionDTO{
		ID:          condition.ID,
		Name:        condition.Name,
		Description: condition.Description,
	}
}

// ToConditionDTOs converts a slice of conditions to DTOs
func ToConditionDTOs(conditions []models.InventoryCondition) []ConditionDTO {
	dtos := make([]ConditionDTO, len(conditions))
	for i, condition := range conditions {
		dtos[i] = ToConditionDTO(condition)
	}
	return dtos
}

// ToItemDTO converts an item with preloaded relations to DTO
func ToItemDTO(item models.InventoryItem) ItemDTO {
	dto := ItemDTO{
		ID:            item.ID,
		Number:        item.Number,
		Name:          item.Name,
		Description:   item.Description,
		Category:      ToCategoryDTO(item.Category),
		Condition:     ToConditionDTO(item.Condition),
		PurchaseDate:  item.PurchaseDate,
		PurchasePrice: item.PurchasePrice,
		WarrantyUntil: item.WarrantyUntil,
		IsWrittenOff:  item.IsWrittenOff,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	if item.Room != nil {
		room := ToRoomDTO(*item.Room)
		dto.Room = &room
	}
	if item.AssignedUser != nil {
		user := ToUserDTO(*item.AssignedUser)
		dto.AssignedUser = &user
	}
	if len(item.Photo) > 0 {
		dto.Photo = base64.StdEncoding.EncodeToString(item.Photo)
	}
	return dto
}

// ToItemDTOs converts a slice of items to DTOs
func ToItemDTOs(items []models.InventoryItem) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i, item := range items {
		dtos[i] = ToItemDTO(item)
	}
	return dtos
}

// ToItemShortDTO converts an item to the compact projection
func ToItemShortDTO(item models.InventoryItem) ItemShortDTO {
	dto := ItemShortDTO{
		ID:        item.ID,
		Number:    item.Number,
		Name:      item.Name,
		Category:  item.Category.Name,
		Condition: item.Condition.Name,
	}
	if item.Room != nil {
		dto.Room = item.Room.Name
	}
	return dto
}

// ToItemShortDTOs converts a slice of items to compact projections
func ToItemShortDTOs(items []models.InventoryItem) []ItemShortDTO {
	dtos := make([]ItemShortDTO, len(items))
	for i, item := range items {
		dtos[i] = ToItemShortDTO(item)
	}
	return dtos
}
