package engine

import "menu-service/internal/models"

// ComboPricing is the derived price pair for an offer combo
type ComboPricing struct {
	OriginalPrice   float64 `json:"originalPrice"`
	DiscountedPrice float64 `json:"discountedPrice"`
}

// PriceLookup resolves a food item id to its current price. The second
// return reports whether the reference resolved.
type PriceLookup func(foodItemID string) (float64, bool)

// PriceCombo computes an offer combo's original and discounted price.
// Unresolved item references contribute 0 to the original price rather
// than failing the computation; callers that want to reject combos with
// dangling references check resolution before calling. The discount
// percent is clamped to [0,100] and the discounted price floored at 0.
func PriceCombo(lookup PriceLookup, items []models.ComboItemRef, discountPercent float64) ComboPricing {
	var original float64
	for _, ref := range items {
		price, ok := lookup(ref.FoodItemID)
		if !ok {
			continue
		}
		qty := ref.Quantity
		if qty < 1 {
			qty = 1
		}
		original += price * float64(qty)
	}
	original = round2(original)

	if discountPercent < 0 {
		discountPercent = 0
	} else if discountPercent > 100 {
		discountPercent = 100
	}
	discounted := round2(original * (1 - discountPercent/100))
	if discounted < 0 {
		discounted = 0
	}

	return ComboPricing{OriginalPrice: original, DiscountedPrice: discounted}
}

// EffectiveComboPrice applies the manual-override rule: when a manual
// price is supplied it becomes the combo's effective price, while the
// derived original price is kept for display.
func EffectiveComboPrice(pricing ComboPricing, manualPrice *float64) float64 {
	if manualPrice != nil {
		return round2(*manualPrice)
	}
	return pricing.DiscountedPrice
}
