package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hunter-system/errors"
	"hunter-system/models"
)

func seedItems(t *testing.T, env *testEnv) []models.Item {
	t.Helper()
	ctx := context.Background()
	items := []models.Item{
		{ID: "i1", Name: "Iron Dagger", Rarity: models.RarityCommon, Type: models.ItemTypeWeapon},
		{ID: "i2", Name: "Shadow Cloak", Rarity: models.RarityEpic, Type: models.ItemTypeArmor},
		{ID: "i3", Name: "Healing Draught", Rarity: models.RarityCommon, Type: models.ItemTypeConsumable},
	}
	for i := range items {
		items[i].ObtainedAt = testStart.Add(time.Duration(i) * time.Minute)
		require.NoError(t, env.store.CreateItem(ctx, &items[i]))
	}
	return items
}

func TestItemService_List(t *testing.T) {
	env := newTestEnv(t, neverDrop())
	ctx := context.Background()
	seedItems(t, env)

	all, err := env.items.ListItems(ctx, ItemListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "i3", all[0].ID, "most recent first")

	common, err := env.items.ListItems(ctx, ItemListFilter{Rarity: "common"})
	require.NoError(t, err)
	assert.Len(t, common, 2)

	armor, err := env.items.ListItems(ctx, ItemListFilter{Type: "armor"})
	require.NoError(t, err)
	require.Len(t, armor, 1)
	assert.Equal(t, "Shadow Cloak", armor[0].Name)

	_, err = env.items.ListItems(ctx, ItemListFilter{Rarity: "shiny"})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidationFailed))
	_, err = env.items.ListItems(ctx, ItemListFilter{Type: "pet"})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidationFailed))
}

func TestItemService_GetAndDelete(t *testing.T) {
	env := newTestEnv(t, neverDrop())
	ctx := context.Background()
	seedItems(t, env)

	item, err := env.items.GetItem(ctx, "i2")
	require.NoError(t, err)
	assert.Equal(t, models.RarityEpic, item.Rarity)

	require.NoError(t, env.items.DeleteItem(ctx, "i2"))
	_, err = env.items.GetItem(ctx, "i2")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	err = env.items.DeleteItem(ctx, "i2")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestItemService_Stats(t *testing.T) {
	env := newTestEnv(t, neverDrop())
	seedItems(t, env)

	stats, err := env.items.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByRarity[models.RarityCommon])
	assert.Equal(t, 1, stats.ByRarity[models.RarityEpic])
	assert.Equal(t, 0, stats.ByRarity[models.RarityMythic])
	assert.Equal(t, 1, stats.ByType[models.ItemTypeWeapon])
	assert.Equal(t, 0, stats.ByType[models.ItemTypeAccessory])
}
