package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menu-service/internal/models"
)

func seedPreviewSource(store *fakeStore) {
	mains := store.seedCategory("src", "Mains", "mains", 1)
	store.seedCategory("src", "Desserts", "desserts", 2)
	store.seedItem("src", "Rice", 100, &mains.ID)
	store.seedItem("src", "Cake", 60, nil)
}

func TestPreviewSourceNotFound(t *testing.T) {
	store := newFakeStore("tgt")
	planner := NewPlanner(store, testLogger())

	_, err := planner.Preview("t1", "missing", []string{"tgt"}, models.SyncPreviewOptions{})

	assert.ErrorIs(t, err, ErrOutletNotFound)
}

func TestPreviewReportsConflictsByName(t *testing.T) {
	store := newFakeStore("src", "tgt")
	seedPreviewSource(store)
	store.seedCategory("tgt", "mains", "mains", 1) // case-insensitive match
	store.seedItem("tgt", "CAKE", 55, nil)
	planner := NewPlanner(store, testLogger())

	preview, err := planner.Preview("t1", "src", []string{"tgt"}, models.SyncPreviewOptions{DuplicateStrategy: models.DuplicateUpdate})

	require.NoError(t, err)
	assert.Equal(t, models.EntityCounts{Categories: 2, Items: 2}, preview.SourceSummary)
	require.Len(t, preview.Targets, 1)

	forecast := preview.Targets[0]
	assert.Equal(t, []string{"Mains"}, forecast.CategoryConflicts)
	assert.Equal(t, []string{"Cake"}, forecast.ItemConflicts)
	assert.Equal(t, models.KindForecast{Total: 2, Conflicts: 1, Creates: 1, Updates: 1}, forecast.Categories)
	assert.Equal(t, models.KindForecast{Total: 2, Conflicts: 1, Creates: 1, Updates: 1}, forecast.Items)
	assert.Nil(t, forecast.Error)
}

func TestPreviewSkipStrategyCreatesOnlyNonConflicting(t *testing.T) {
	store := newFakeStore("src", "tgt")
	seedPreviewSource(store)
	store.seedItem("tgt", "Rice", 90, nil)
	planner := NewPlanner(store, testLogger())

	preview, err := planner.Preview("t1", "src", []string{"tgt"}, models.SyncPreviewOptions{})

	require.NoError(t, err)
	forecast := preview.Targets[0]
	assert.Equal(t, models.KindForecast{Total: 2, Conflicts: 1, Creates: 1, Updates: 0}, forecast.Items)
	assert.Equal(t, models.KindForecast{Total: 2, Conflicts: 0, Creates: 2, Updates: 0}, forecast.Categories)
}

func TestPreviewCreateStrategyIgnoresConflicts(t *testing.T) {
	store := newFakeStore("src", "tgt")
	seedPreviewSource(store)
	store.seedItem("tgt", "Rice", 90, nil)
	planner := NewPlanner(store, testLogger())

	preview, err := planner.Preview("t1", "src", []string{"tgt"}, models.SyncPreviewOptions{DuplicateStrategy: models.DuplicateCreate})

	require.NoError(t, err)
	forecast := preview.Targets[0]
	assert.Equal(t, 1, forecast.Items.Conflicts)
	assert.Equal(t, 2, forecast.Items.Creates)
	assert.Equal(t, 0, forecast.Items.Updates)
}

func TestPreviewMissingTargetFailsInBand(t *testing.T) {
	store := newFakeStore("src", "tgt")
	seedPreviewSource(store)
	planner := NewPlanner(store, testLogger())

	preview, err := planner.Preview("t1", "src", []string{"ghost", "tgt"}, models.SyncPreviewOptions{})

	require.NoError(t, err)
	require.Len(t, preview.Targets, 2)

	assert.Equal(t, "ghost", preview.Targets[0].OutletID)
	require.NotNil(t, preview.Targets[0].Error)
	assert.Equal(t, ErrOutletNotFound.Error(), *preview.Targets[0].Error)

	assert.Equal(t, "tgt", preview.Targets[1].OutletID)
	assert.Nil(t, preview.Targets[1].Error)
	assert.Equal(t, 2, preview.Targets[1].Items.Creates)
}
