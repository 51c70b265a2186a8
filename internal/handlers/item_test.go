package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orgstock/inventory-api/internal/dto"
	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/services"
)

func (env handlerTestEnv) seedItemRefs(t *testing.T) (*models.InventoryCategory, *models.Room, *models.InventoryCondition) {
	t.Helper()

	category, err := env.categoryService.Create("Computers", "PC", "")
	require.NoError(t, err)
	room, err := env.roomService.Create("Server Room", "SR")
	require.NoError(t, err)
	condition, err := env.conditionService.Create(models.ConditionNormal, "")
	require.NoError(t, err)
	return category, room, condition
}

func TestItemHandler_Create(t *testing.T) {
	env := setupHandlerTestEnv(t)
	admin := env.createUser(t, "admin", true)
	category, room, condition := env.seedItemRefs(t)

	w := env.doJSON(t, http.MethodPost, "/api/inventory/items", map[string]any{
		"name":           "Laptop",
		"category_id":    category.ID,
		"room_id":        room.ID,
		"condition_id":   condition.ID,
		"purchase_date":  "2024-03-12",
		"purchase_price": "1249.90",
	}, env.authCookie(t, admin))

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ItemDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "PC-SR-000001", response.Number)
	require.Equal(t, "Laptop", response.Name)
	require.NotNil(t, response.Room)
	require.Equal(t, room.ID, response.Room.ID)
}

func TestItemHandler_Create_RequiresAdmin(t *testing.T) {
	env := setupHandlerTestEnv(t)
	user := env.createUser(t, "jsmith", false)
	category, room, condition := env.seedItemRefs(t)

	w := env.doJSON(t, http.MethodPost, "/api/inventory/items", map[string]any{
		"name":         "Laptop",
		"category_id":  category.ID,
		"room_id":      room.ID,
		"condition_id": condition.ID,
	}, env.authCookie(t, user))

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestItemHandler_Create_UnknownCategory(t *testing.T) {
	env := setupHandlerTestEnv(t)
	admin := env.createUser(t, "admin", true)
	_, _, condition := env.seedItemRefs(t)

	w := env.doJSON(t, http.MethodPost, "/api/inventory/items", map[string]any{
		"name":         "Laptop",
		"category_id":  999,
		"condition_id": condition.ID,
	}, env.authCookie(t, admin))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemHandler_List_ShortProjection(t *testing.T) {
	env := setupHandlerTestEnv(t)
	admin := env.createUser(t, "admin", true)
	category, room, condition := env.seedItemRefs(t)

	_, err := env.itemService.Create(services.CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)

	w := env.doJSON(t, http.MethodGet, "/api/inventory/items?short=true", nil, env.authCookie(t, admin))
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Items []dto.ItemShortDTO `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Items, 1)
	require.Equal(t, "PC-SR-000001", response.Items[0].Number)
	require.Equal(t, "Computers", response.Items[0].Category)
	require.Equal(t, "Server Room", response.Items[0].Room)
}

func TestItemHandler_List_FilterByRoom(t *testing.T) {
	env := setupHandlerTestEnv(t)
	admin := env.createUser(t, "admin", true)
	category, room, condition := env.seedItemRefs(t)
	other, err := env.roomService.Create("Warehouse", "WH")
	require.NoError(t, err)

	_, err = env.itemService.Create(services.CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)
	_, err = env.itemService.Create(services.CreateItemInput{
		Name:        "Shelf",
		CategoryID:  category.ID,
		RoomID:      &other.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/inventory/items?room_id=%d", other.ID)
	w := env.doJSON(t, http.MethodGet, path, nil, env.authCookie(t, admin))
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Items []dto.ItemDTO `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Items, 1)
	require.Equal(t, "Shelf", response.Items[0].Name)
}

func TestItemHandler_Update_ClearRoom(t *testing.T) {
	env := setupHandlerTestEnv(t)
	admin := env.createUser(t, "admin", true)
	category, room, condition := env.seedItemRefs(t)

	item, err := env.itemService.Create(services.CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/inventory/items/%d", item.ID)
	w := env.doJSON(t, http.MethodPatch, path, map[string]any{
		"clear_room": true,
	}, env.authCookie(t, admin))
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ItemDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Nil(t, response.Room)
	require.Equal(t, "PC-XX-000001", response.Number)
}

func TestItemHandler_WriteOff(t *testing.T) {
	env := setupHandlerTestEnv(t)
	admin := env.createUser(t, "admin", true)
	category, room, condition := env.seedItemRefs(t)
	_, err := env.conditionService.Create(models.ConditionWrittenOff, "")
	require.NoError(t, err)

	item, err := env.itemService.Create(services.CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/inventory/items/%d/write-off", item.ID)
	w := env.doJSON(t, http.MethodPost, path, nil, env.authCookie(t, admin))
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ItemDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.IsWrittenOff)
	require.Equal(t, models.ConditionWrittenOff, response.Condition.Name)
}

func TestItemHandler_Get_NotFound(t *testing.T) {
	env := setupHandlerTestEnv(t)
	user := env.createUser(t, "jsmith", false)

	w := env.doJSON(t, http.MethodGet, "/api/inventory/items/999", nil, env.authCookie(t, user))
	require.Equal(t, http.StatusNotFound, w.Code)
}
