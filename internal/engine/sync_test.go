package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menu-service/internal/models"
)

func TestSyncSourceNotFound(t *testing.T) {
	store := newFakeStore("tgt")
	executor := NewExecutor(store, testLogger(), 2)

	_, err := executor.Sync("t1", "missing", []string{"tgt"}, models.SyncOptions{SyncItems: true})

	assert.ErrorIs(t, err, ErrOutletNotFound)
}

func TestSyncCreatesCategoriesAndItemsWithRemappedReferences(t *testing.T) {
	store := newFakeStore("src", "tgt")
	mains := store.seedCategory("src", "Mains", "mains", 1)
	store.seedItem("src", "Rice", 100, &mains.ID)
	executor := NewExecutor(store, testLogger(), 2)

	result, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{
		SyncCategories:         true,
		SyncItems:              true,
		PriceAdjustmentPercent: 10,
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Results, 1)

	target := result.Results[0]
	assert.Equal(t, models.TargetStatusSuccess, target.Status)
	assert.Equal(t, 1, target.CategoriesSynced)
	assert.Equal(t, 1, target.ItemsSynced)
	assert.Empty(t, target.Errors)

	category, ok := store.categoryByName("tgt", "Mains")
	require.True(t, ok)
	assert.Equal(t, "mains", category.Slug)
	assert.NotEqual(t, mains.ID, category.ID)

	item, ok := store.itemByName("tgt", "Rice")
	require.True(t, ok)
	assert.Equal(t, 110.0, item.Price)
	require.NotNil(t, item.CategoryID)
	assert.Equal(t, category.ID, *item.CategoryID)
	assert.Equal(t, "tgt", item.OutletID)
	assert.Equal(t, 0, item.ViewCount)
}

func TestSyncMapByNameReusesTargetCategory(t *testing.T) {
	store := newFakeStore("src", "tgt")
	mains := store.seedCategory("src", "Mains", "mains", 1)
	existing := store.seedCategory("tgt", "MAINS", "mains", 3)
	store.seedItem("src", "Rice", 100, &mains.ID)
	executor := NewExecutor(store, testLogger(), 1)

	result, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{
		SyncCategories: true,
		SyncItems:      true,
	})

	require.NoError(t, err)
	target := result.Results[0]
	assert.Equal(t, models.TargetStatusSuccess, target.Status)
	assert.Equal(t, 1, target.CategoriesSynced)
	// Reused, not duplicated
	assert.Len(t, store.categories["tgt"], 1)

	item, ok := store.itemByName("tgt", "Rice")
	require.True(t, ok)
	require.NotNil(t, item.CategoryID)
	assert.Equal(t, existing.ID, *item.CategoryID)
}

func TestSyncCreateNewCategoryHandlingSuffixesSlug(t *testing.T) {
	store := newFakeStore("src", "tgt")
	store.seedCategory("src", "Mains", "mains", 1)
	store.seedCategory("tgt", "Mains", "mains", 1)
	executor := NewExecutor(store, testLogger(), 1)

	result, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{
		SyncCategories:   true,
		CategoryHandling: models.CategoryHandlingCreateNew,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Results[0].CategoriesSynced)
	require.Len(t, store.categories["tgt"], 2)
	assert.Equal(t, "mains-1", store.categories["tgt"][1].Slug)
}

func TestSyncAddOnUpdateOverwritesExistingInPlace(t *testing.T) {
	store := newFakeStore("src", "tgt")
	store.seedAddOn("src", "Extra Cheese", 30)
	existing := store.seedAddOn("tgt", "Extra Cheese", 20)
	executor := NewExecutor(store, testLogger(), 1)

	result, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{
		SyncAddOns:        true,
		DuplicateStrategy: models.DuplicateUpdate,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Results[0].AddOnsSynced)
	require.Len(t, store.addOns["tgt"], 1)

	addOn := store.addOns["tgt"][0]
	assert.Equal(t, existing.ID, addOn.ID)
	assert.Equal(t, 30.0, addOn.Price)
}

func TestSyncSkipLeavesExistingItemUntouched(t *testing.T) {
	store := newFakeStore("src", "tgt")
	store.seedItem("src", "Rice", 100, nil)
	store.seedItem("tgt", "rice", 80, nil)
	executor := NewExecutor(store, testLogger(), 1)

	result, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{SyncItems: true})

	require.NoError(t, err)
	target := result.Results[0]
	assert.Equal(t, models.TargetStatusSuccess, target.Status)
	assert.Equal(t, 0, target.ItemsSynced)

	item, _ := store.itemByName("tgt", "rice")
	assert.Equal(t, 80.0, item.Price)
	assert.Len(t, store.items["tgt"], 1)
}

func TestSyncUpdateOverwritesExistingItemInPlace(t *testing.T) {
	store := newFakeStore("src", "tgt")
	store.seedItem("src", "Rice", 100, nil)
	existing := store.seedItem("tgt", "Rice", 80, nil)
	executor := NewExecutor(store, testLogger(), 1)

	result, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{
		SyncItems:         true,
		DuplicateStrategy: models.DuplicateUpdate,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Results[0].ItemsSynced)
	require.Len(t, store.items["tgt"], 1)

	item := store.items["tgt"][0]
	assert.Equal(t, existing.ID, item.ID)
	assert.Equal(t, 100.0, item.Price)
}

func TestSyncAddOnsRemapItemReferences(t *testing.T) {
	store := newFakeStore("src", "tgt")
	cheese := store.seedAddOn("src", "Extra Cheese", 20)
	store.seedItem("src", "Pizza", 250, nil)
	addOnIDs := models.StringArray{cheese.ID.String(), "dangling"}
	store.items["src"][0].AddOnIDs = &addOnIDs
	executor := NewExecutor(store, testLogger(), 1)

	result, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{
		SyncAddOns: true,
		SyncItems:  true,
	})

	require.NoError(t, err)
	target := result.Results[0]
	assert.Equal(t, 1, target.AddOnsSynced)
	assert.Equal(t, 1, target.ItemsSynced)

	synced, ok := store.itemByName("tgt", "Pizza")
	require.True(t, ok)
	require.NotNil(t, synced.AddOnIDs)
	require.Len(t, *synced.AddOnIDs, 1)

	targetAddOn := store.addOns["tgt"][0]
	assert.Equal(t, targetAddOn.ID.String(), (*synced.AddOnIDs)[0])
	assert.NotEqual(t, cheese.ID, targetAddOn.ID)
}

func TestSyncExistingAddOnSkippedButStillRemapped(t *testing.T) {
	store := newFakeStore("src", "tgt")
	cheese := store.seedAddOn("src", "Extra Cheese", 20)
	existing := store.seedAddOn("tgt", "extra cheese", 25)
	store.seedItem("src", "Pizza", 250, nil)
	addOnIDs := models.StringArray{cheese.ID.String()}
	store.items["src"][0].AddOnIDs = &addOnIDs
	executor := NewExecutor(store, testLogger(), 1)

	result, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{
		SyncAddOns: true,
		SyncItems:  true,
	})

	require.NoError(t, err)
	target := result.Results[0]
	assert.Equal(t, 0, target.AddOnsSynced)
	assert.Len(t, store.addOns["tgt"], 1)

	synced, _ := store.itemByName("tgt", "Pizza")
	require.NotNil(t, synced.AddOnIDs)
	assert.Equal(t, existing.ID.String(), (*synced.AddOnIDs)[0])
}

func TestSyncInactiveItemNeverAvailable(t *testing.T) {
	store := newFakeStore("src", "tgt")
	store.seedItem("src", "Rice", 100, nil)
	inactive := false
	store.items["src"][0].IsActive = &inactive
	executor := NewExecutor(store, testLogger(), 1)

	_, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{
		SyncItems:        true,
		AvailabilityMode: models.AvailabilityAllAvailable,
	})

	require.NoError(t, err)
	item, ok := store.itemByName("tgt", "Rice")
	require.True(t, ok)
	require.NotNil(t, item.IsAvailable)
	assert.False(t, *item.IsAvailable)
}

func TestSyncAvailabilityAllUnavailable(t *testing.T) {
	store := newFakeStore("src", "tgt")
	store.seedItem("src", "Rice", 100, nil)
	executor := NewExecutor(store, testLogger(), 1)

	_, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{
		SyncItems:        true,
		AvailabilityMode: models.AvailabilityAllUnavailable,
	})

	require.NoError(t, err)
	item, _ := store.itemByName("tgt", "Rice")
	require.NotNil(t, item.IsAvailable)
	assert.False(t, *item.IsAvailable)
}

func TestSyncMissingTargetFailsWithoutAffectingOthers(t *testing.T) {
	store := newFakeStore("src", "tgt")
	store.seedItem("src", "Rice", 100, nil)
	executor := NewExecutor(store, testLogger(), 4)

	result, err := executor.Sync("t1", "src", []string{"ghost", "tgt"}, models.SyncOptions{SyncItems: true})

	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Results, 2)

	// Results preserve input order
	ghost := result.Results[0]
	assert.Equal(t, "ghost", ghost.OutletID)
	assert.Equal(t, models.TargetStatusFailed, ghost.Status)
	require.Len(t, ghost.Errors, 1)
	assert.Equal(t, ErrOutletNotFound.Error(), ghost.Errors[0])

	ok := result.Results[1]
	assert.Equal(t, "tgt", ok.OutletID)
	assert.Equal(t, models.TargetStatusSuccess, ok.Status)
	assert.Equal(t, 1, ok.ItemsSynced)
}

func TestSyncPartialWhenSomeEntitiesFail(t *testing.T) {
	store := newFakeStore("src", "tgt")
	store.seedItem("src", "Rice", 100, nil)
	store.seedItem("src", "Curry", 50, nil)
	store.failItemNames["Rice"] = true
	executor := NewExecutor(store, testLogger(), 1)

	result, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{SyncItems: true})

	require.NoError(t, err)
	assert.False(t, result.Success)

	target := result.Results[0]
	assert.Equal(t, models.TargetStatusPartial, target.Status)
	assert.Equal(t, 1, target.ItemsSynced)
	require.Len(t, target.Errors, 1)
	assert.Contains(t, target.Errors[0], "Rice")
}

func TestSyncCombosAreSkippedWithMessage(t *testing.T) {
	store := newFakeStore("src", "tgt")
	combo := models.NewRegularCombo("t1", "src", "House Platter", models.RegularComboDetails{
		LineItems: []models.ComboLineItem{{Name: "Chef's Choice", Quantity: 1}},
	})
	store.combos["src"] = append(store.combos["src"], *combo)
	executor := NewExecutor(store, testLogger(), 1)

	result, err := executor.Sync("t1", "src", []string{"tgt"}, models.SyncOptions{SyncCombos: true})

	require.NoError(t, err)
	target := result.Results[0]
	assert.Equal(t, models.TargetStatusSuccess, target.Status)
	require.NotNil(t, target.Message)
	assert.Contains(t, *target.Message, "combos")
	assert.Empty(t, store.combos["tgt"])
}
