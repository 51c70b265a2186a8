package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsumableService_Create_Defaults(t *testing.T) {
	env := setupTestEnv(t)

	consumable, err := env.consumableService.Create(CreateConsumableInput{
		Name:     "A4 Paper",
		Quantity: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, consumable.MinQuantity)
	require.Equal(t, "pcs", consumable.Unit)
}

func TestConsumableService_Create_RejectsNegativeQuantities(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.consumableService.Create(CreateConsumableInput{
		Name:     "A4 Paper",
		Quantity: -1,
	})
	require.ErrorIs(t, err, ErrConsumableBadQuantity)
}

func TestConsumableService_IncreaseIsUnbounded(t *testing.T) {
	env := setupTestEnv(t)

	consumable, err := env.consumableService.Create(CreateConsumableInput{
		Name:     "Toner",
		Quantity: 1,
	})
	require.NoError(t, err)

	updated, err := env.consumableService.Increase(consumable.ID, 100000)
	require.NoError(t, err)
	require.Equal(t, 100001, updated.Quantity)
}

func TestConsumableService_DecreaseClampsAtZero(t *testing.T) {
	env := setupTestEnv(t)

	consumable, err := env.consumableService.Create(CreateConsumableInput{
		Name:     "Toner",
		Quantity: 3,
	})
	require.NoError(t, err)

	updated, err := env.consumableService.Decrease(consumable.ID, 10)
	require.NoError(t, err)
	require.Equal(t, 0, updated.Quantity)
}

func TestConsumableService_AdjustRejectsNonPositiveAmounts(t *testing.T) {
	env := setupTestEnv(t)

	consumable, err := env.consumableService.Create(CreateConsumableInput{
		Name:     "Toner",
		Quantity: 3,
	})
	require.NoError(t, err)

	_, err = env.consumableService.Increase(consumable.ID, 0)
	require.ErrorIs(t, err, ErrConsumableBadAdjustment)
	_, err = env.consumableService.Decrease(consumable.ID, -5)
	require.ErrorIs(t, err, ErrConsumableBadAdjustment)
}

func TestConsumableService_ListLowStock(t *testing.T) {
	env := setupTestEnv(t)

	five := 5
	low, err := env.consumableService.Create(CreateConsumableInput{
		Name:        "Ethernet Cable",
		Quantity:    2,
		MinQuantity: &five,
	})
	require.NoError(t, err)
	_, err = env.consumableService.Create(CreateConsumableInput{
		Name:        "A4 Paper",
		Quantity:    100,
		MinQuantity: &five,
	})
	require.NoError(t, err)

	consumables, err := env.consumableService.ListLowStock()
	require.NoError(t, err)
	require.Len(t, consumables, 1)
	require.Equal(t, low.ID, consumables[0].ID)
	require.True(t, consumables[0].IsLowStock())
}
