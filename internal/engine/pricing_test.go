package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"menu-service/internal/models"
)

func pricesOf(prices map[string]float64) PriceLookup {
	return func(id string) (float64, bool) {
		price, ok := prices[id]
		return price, ok
	}
}

func TestPriceComboSumsQuantities(t *testing.T) {
	lookup := pricesOf(map[string]float64{"a": 100, "b": 25.5})

	pricing := PriceCombo(lookup, []models.ComboItemRef{
		{FoodItemID: "a", Quantity: 1},
		{FoodItemID: "b", Quantity: 2},
	}, 10)

	assert.Equal(t, 151.0, pricing.OriginalPrice)
	assert.Equal(t, 135.9, pricing.DiscountedPrice)
}

func TestPriceComboUnresolvedRefContributesNothing(t *testing.T) {
	lookup := pricesOf(map[string]float64{"a": 40})

	pricing := PriceCombo(lookup, []models.ComboItemRef{
		{FoodItemID: "a", Quantity: 1},
		{FoodItemID: "missing", Quantity: 3},
	}, 0)

	assert.Equal(t, 40.0, pricing.OriginalPrice)
	assert.Equal(t, 40.0, pricing.DiscountedPrice)
}

func TestPriceComboQuantityBelowOneCountsAsOne(t *testing.T) {
	lookup := pricesOf(map[string]float64{"a": 30})

	pricing := PriceCombo(lookup, []models.ComboItemRef{
		{FoodItemID: "a", Quantity: 0},
	}, 0)

	assert.Equal(t, 30.0, pricing.OriginalPrice)
}

func TestPriceComboClampsDiscount(t *testing.T) {
	lookup := pricesOf(map[string]float64{"a": 80})
	refs := []models.ComboItemRef{{FoodItemID: "a", Quantity: 1}}

	over := PriceCombo(lookup, refs, 150)
	assert.Equal(t, 80.0, over.OriginalPrice)
	assert.Equal(t, 0.0, over.DiscountedPrice)

	under := PriceCombo(lookup, refs, -25)
	assert.Equal(t, 80.0, under.DiscountedPrice)
}

func TestPriceComboEmptyRefs(t *testing.T) {
	pricing := PriceCombo(pricesOf(nil), nil, 50)

	assert.Equal(t, 0.0, pricing.OriginalPrice)
	assert.Equal(t, 0.0, pricing.DiscountedPrice)
}

func TestEffectiveComboPrice(t *testing.T) {
	pricing := ComboPricing{OriginalPrice: 200, DiscountedPrice: 160}

	assert.Equal(t, 160.0, EffectiveComboPrice(pricing, nil))

	manual := 149.999
	assert.Equal(t, 150.0, EffectiveComboPrice(pricing, &manual))
}
