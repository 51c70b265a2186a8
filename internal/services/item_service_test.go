package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orgstock/inventory-api/internal/models"
)

func TestItemService_Create_DerivesSequentialNumbers(t *testing.T) {
	env := setupTestEnv(t)
	category, room, condition := env.seedItemRefs(t)

	first, err := env.itemService.Create(CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "PC-SR-000001", first.Number)

	second, err := env.itemService.Create(CreateItemInput{
		Name:        "Desktop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "PC-SR-000002", second.Number)
}

func TestItemService_Create_RoomlessPrefix(t *testing.T) {
	env := setupTestEnv(t)
	category, _, condition := env.seedItemRefs(t)

	item, err := env.itemService.Create(CreateItemInput{
		Name:        "Spare Chair",
		CategoryID:  category.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "PC-XX-000001", item.Number)
}

func TestItemService_Create_UnknownReferences(t *testing.T) {
	env := setupTestEnv(t)
	category, room, condition := env.seedItemRefs(t)

	_, err := env.itemService.Create(CreateItemInput{
		Name:        "Laptop",
		CategoryID:  999,
		ConditionID: condition.ID,
	})
	require.ErrorIs(t, err, ErrCategoryNotFound)

	missing := uint64(999)
	_, err = env.itemService.Create(CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &missing,
		ConditionID: condition.ID,
	})
	require.ErrorIs(t, err, ErrRoomNotFound)

	_, err = env.itemService.Create(CreateItemInput{
		Name:           "Laptop",
		CategoryID:     category.ID,
		RoomID:         &room.ID,
		ConditionID:    condition.ID,
		AssignedUserID: &missing,
	})
	require.ErrorIs(t, err, ErrAssigneeNotFound)
}

func TestItemService_Update_RenumbersOnRoomChange(t *testing.T) {
	env := setupTestEnv(t)
	category, room, condition := env.seedItemRefs(t)

	other, err := env.roomService.Create("Warehouse", "WH")
	require.NoError(t, err)

	item, err := env.itemService.Create(CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "PC-SR-000001", item.Number)

	moved, err := env.itemService.Update(item.ID, UpdateItemInput{RoomID: &other.ID})
	require.NoError(t, err)
	require.Equal(t, "PC-WH-000001", moved.Number)
}

func TestItemService_Update_KeepsNumberWithoutLocationChange(t *testing.T) {
	env := setupTestEnv(t)
	category, room, condition := env.seedItemRefs(t)

	item, err := env.itemService.Create(CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)

	name := "Laptop (renamed)"
	updated, err := env.itemService.Update(item.ID, UpdateItemInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, item.Number, updated.Number)
	require.Equal(t, name, updated.Name)
}

func TestItemService_Update_ClearsRoomAndAssignee(t *testing.T) {
	env := setupTestEnv(t)
	category, room, condition := env.seedItemRefs(t)

	user, err := env.userService.Create(CreateUserInput{
		Username:    "jsmith",
		Password:    "supersecret",
		Email:       "jsmith@example.org",
		FullName:    "John Smith",
		PhoneNumber: "+1-555-0101",
	})
	require.NoError(t, err)

	item, err := env.itemService.Create(CreateItemInput{
		Name:           "Laptop",
		CategoryID:     category.ID,
		RoomID:         &room.ID,
		ConditionID:    condition.ID,
		AssignedUserID: &user.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "PC-SR-000001", item.Number)

	updated, err := env.itemService.Update(item.ID, UpdateItemInput{
		ClearRoom:         true,
		ClearAssignedUser: true,
	})
	require.NoError(t, err)
	require.Nil(t, updated.RoomID)
	require.Nil(t, updated.AssignedUserID)
	require.Equal(t, "PC-XX-000001", updated.Number)
}

func TestItemService_Update_ClearRoomOnRoomlessItemKeepsNumber(t *testing.T) {
	env := setupTestEnv(t)
	category, _, condition := env.seedItemRefs(t)

	item, err := env.itemService.Create(CreateItemInput{
		Name:        "Spare Chair",
		CategoryID:  category.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)

	updated, err := env.itemService.Update(item.ID, UpdateItemInput{ClearRoom: true})
	require.NoError(t, err)
	require.Nil(t, updated.RoomID)
	require.Equal(t, item.Number, updated.Number)
}

func TestItemService_WriteOff(t *testing.T) {
	env := setupTestEnv(t)
	category, room, condition := env.seedItemRefs(t)
	writtenOff, err := env.conditionService.Create(models.ConditionWrittenOff, "")
	require.NoError(t, err)

	item, err := env.itemService.Create(CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)

	retired, err := env.itemService.WriteOff(item.ID)
	require.NoError(t, err)
	require.True(t, retired.IsWrittenOff)
	require.Equal(t, writtenOff.ID, retired.ConditionID)

	// repeat calls are a no-op
	again, err := env.itemService.WriteOff(item.ID)
	require.NoError(t, err)
	require.True(t, again.IsWrittenOff)

	// written-off items cannot be patched
	name := "Laptop II"
	_, err = env.itemService.Update(item.ID, UpdateItemInput{Name: &name})
	require.ErrorIs(t, err, ErrItemWrittenOff)
}

func TestItemService_WriteOff_NoConfiguredState(t *testing.T) {
	env := setupTestEnv(t)
	category, room, condition := env.seedItemRefs(t)

	item, err := env.itemService.Create(CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)

	_, err = env.itemService.WriteOff(item.ID)
	require.ErrorIs(t, err, ErrNoWrittenOffState)
}

func TestItemService_ListByCondition(t *testing.T) {
	env := setupTestEnv(t)
	category, room, condition := env.seedItemRefs(t)
	repair, err := env.conditionService.Create(models.ConditionRequiresRepair, "")
	require.NoError(t, err)

	_, err = env.itemService.Create(CreateItemInput{
		Name:        "Working Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)
	broken, err := env.itemService.Create(CreateItemInput{
		Name:        "Broken Monitor",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: repair.ID,
	})
	require.NoError(t, err)

	items, err := env.itemService.ListByCondition(models.ConditionRequiresRepair)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, broken.ID, items[0].ID)
}

func TestItemService_Delete(t *testing.T) {
	env := setupTestEnv(t)
	category, room, condition := env.seedItemRefs(t)

	item, err := env.itemService.Create(CreateItemInput{
		Name:        "Laptop",
		CategoryID:  category.ID,
		RoomID:      &room.ID,
		ConditionID: condition.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.itemService.Delete(item.ID))

	_, err = env.itemService.GetByID(item.ID)
	require.ErrorIs(t, err, ErrItemNotFound)
}
