package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
)

func TestSeedService_Seed(t *testing.T) {
	env := setupTestEnv(t)

	require.NoError(t, env.seedService.Seed(false))

	// the well-known conditions exist
	for _, name := range []string{models.ConditionNormal, models.ConditionRequiresRepair, models.ConditionWrittenOff} {
		_, err := env.conditionService.GetByName(name, true)
		require.NoError(t, err, "condition %s", name)
	}

	// the admin account can log in
	admin, err := env.userService.Login("admin", "admin12345")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)

	// seeded items carry derived inventory numbers
	items, _, err := env.itemService.List(repository.ItemFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, items)
	for _, item := range items {
		require.Regexp(t, `^[A-Z]+-[A-Z]+-\d{6}$`, item.Number)
	}

	// at least one consumable is below its minimum
	low, err := env.consumableService.ListLowStock()
	require.NoError(t, err)
	require.NotEmpty(t, low)
}

func TestSeedService_Seed_RefusesExistingData(t *testing.T) {
	env := setupTestEnv(t)

	require.NoError(t, env.seedService.Seed(false))
	require.ErrorIs(t, env.seedService.Seed(false), ErrAlreadySeeded)
}

func TestSeedService_Seed_ForceReseeds(t *testing.T) {
	env := setupTestEnv(t)

	require.NoError(t, env.seedService.Seed(false))
	require.NoError(t, env.seedService.Seed(true))

	users, total, err := env.userService.List(0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(len(users)), total)

	// exactly one admin account after the reseed
	admins := 0
	for _, user := range users {
		if user.IsAdmin {
			admins++
		}
	}
	require.Equal(t, 1, admins)
}
