package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menu-service/internal/models"
)

func TestExportOutletNotFound(t *testing.T) {
	store := newFakeStore()
	exporter := NewExporter(store)

	_, err := exporter.Export("t1", "missing")

	assert.ErrorIs(t, err, ErrOutletNotFound)
}

func TestExportOrdersByDisplayOrderThenName(t *testing.T) {
	store := newFakeStore("out1")
	store.seedCategory("out1", "Desserts", "desserts", 2)
	store.seedCategory("out1", "Mains", "mains", 1)
	store.seedCategory("out1", "Beverages", "beverages", 2)
	exporter := NewExporter(store)

	snapshot, err := exporter.Export("t1", "out1")

	require.NoError(t, err)
	require.Len(t, snapshot.Categories, 3)
	assert.Equal(t, "Mains", snapshot.Categories[0].Name)
	assert.Equal(t, "Beverages", snapshot.Categories[1].Name)
	assert.Equal(t, "Desserts", snapshot.Categories[2].Name)
}

func TestExportDenormalizesReferences(t *testing.T) {
	store := newFakeStore("out1")
	category := store.seedCategory("out1", "Mains", "mains", 1)
	addOn := store.seedAddOn("out1", "Extra Cheese", 20)
	store.seedItem("out1", "Rice", 100, &category.ID)

	addOnIDs := models.StringArray{addOn.ID.String(), "not-a-known-addon"}
	store.items["out1"][0].AddOnIDs = &addOnIDs

	exporter := NewExporter(store)
	snapshot, err := exporter.Export("t1", "out1")

	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)

	snap := snapshot.Items[0]
	require.NotNil(t, snap.CategoryName)
	assert.Equal(t, "Mains", *snap.CategoryName)
	// Unresolvable add-on references are dropped, not exported as ids
	assert.Equal(t, []string{"Extra Cheese"}, snap.AddOnNames)
	assert.Equal(t, 100.0, snap.Price)
	assert.True(t, snap.IsActive)
	assert.True(t, snap.IsAvailable)
}

func TestExportComboShapes(t *testing.T) {
	store := newFakeStore("out1")
	rice := store.seedItem("out1", "Rice", 100, nil)
	curry := store.seedItem("out1", "Curry", 50, nil)

	offer := models.NewOfferCombo("t1", "out1", "Lunch Special", models.OfferComboDetails{
		Items: []models.ComboItemRef{
			{FoodItemID: rice.ID.String(), Quantity: 1},
			{FoodItemID: curry.ID.String(), Quantity: 2},
			{FoodItemID: "dangling-ref", Quantity: 1},
		},
		DiscountPercent: 10,
	})
	offer.OriginalPrice = 200
	offer.Price = 180
	store.combos["out1"] = append(store.combos["out1"], *offer)

	regular := models.NewRegularCombo("t1", "out1", "House Platter", models.RegularComboDetails{
		LineItems: []models.ComboLineItem{{Name: "Chef's Choice", Quantity: 3}},
	})
	regular.Price = 150
	store.combos["out1"] = append(store.combos["out1"], *regular)

	exporter := NewExporter(store)
	snapshot, err := exporter.Export("t1", "out1")

	require.NoError(t, err)
	require.Len(t, snapshot.Combos, 2)

	offerSnap := snapshot.Combos[0]
	assert.Equal(t, models.ComboTypeOffer, offerSnap.Type)
	require.NotNil(t, offerSnap.DiscountPercent)
	assert.Equal(t, 10.0, *offerSnap.DiscountPercent)
	// Item references become names; the dangling one is dropped
	require.Len(t, offerSnap.Items, 2)
	assert.Equal(t, "Rice", offerSnap.Items[0].Name)
	assert.Equal(t, "Curry", offerSnap.Items[1].Name)
	assert.Equal(t, 2, offerSnap.Items[1].Quantity)

	regularSnap := snapshot.Combos[1]
	assert.Equal(t, models.ComboTypeRegular, regularSnap.Type)
	require.Len(t, regularSnap.LineItems, 1)
	assert.Equal(t, "Chef's Choice", regularSnap.LineItems[0].Name)
}
