package engine

import (
	"sort"
	"time"

	"menu-service/internal/models"
)

// Exporter produces a denormalized, portable snapshot of one outlet's
// menu graph. Category and add-on references are inlined as names so
// the snapshot needs no foreign-key resolution to read.
type Exporter struct {
	store Store
}

// NewExporter creates an export serializer over the given store
func NewExporter(store Store) *Exporter {
	return &Exporter{store: store}
}

// Export reads the outlet's full menu and serializes it. This is a pure
// read; the only precondition is that the outlet exists.
func (ex *Exporter) Export(tenantID, outletID string) (*models.MenuSnapshot, error) {
	exists, err := ex.store.OutletExists(tenantID, outletID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOutletNotFound
	}

	categories, err := ex.store.ListCategories(tenantID, outletID)
	if err != nil {
		return nil, err
	}
	items, err := ex.store.ListItems(tenantID, outletID)
	if err != nil {
		return nil, err
	}
	addOns, err := ex.store.ListAddOns(tenantID, outletID)
	if err != nil {
		return nil, err
	}
	combos, err := ex.store.ListCombos(tenantID, outletID)
	if err != nil {
		return nil, err
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].DisplayOrder != categories[j].DisplayOrder {
			return categories[i].DisplayOrder < categories[j].DisplayOrder
		}
		return categories[i].Name < categories[j].Name
	})
	sort.Slice(items, func(i, j int) bool {
		if items[i].DisplayOrder != items[j].DisplayOrder {
			return items[i].DisplayOrder < items[j].DisplayOrder
		}
		return items[i].Name < items[j].Name
	})
	sort.Slice(addOns, func(i, j int) bool {
		if addOns[i].DisplayOrder != addOns[j].DisplayOrder {
			return addOns[i].DisplayOrder < addOns[j].DisplayOrder
		}
		return addOns[i].Name < addOns[j].Name
	})

	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID.String()] = c.Name
	}
	addOnNames := make(map[string]string, len(addOns))
	for _, a := range addOns {
		addOnNames[a.ID.String()] = a.Name
	}
	itemNames := make(map[string]string, len(items))
	for _, it := range items {
		itemNames[it.ID.String()] = it.Name
	}

	snapshot := &models.MenuSnapshot{
		OutletID:   outletID,
		Categories: make([]models.CategorySnapshot, 0, len(categories)),
		Items:      make([]models.ItemSnapshot, 0, len(items)),
		AddOns:     make([]models.AddOnSnapshot, 0, len(addOns)),
		Combos:     make([]models.ComboSnapshot, 0, len(combos)),
		ExportedAt: time.Now().UTC(),
	}

	for _, c := range categories {
		snapshot.Categories = append(snapshot.Categories, models.CategorySnapshot{
			Name:         c.Name,
			Description:  c.Description,
			ImageURL:     c.ImageURL,
			DisplayOrder: c.DisplayOrder,
			IsActive:     boolValue(c.IsActive, true),
		})
	}

	for _, it := range items {
		snap := models.ItemSnapshot{
			Name:         it.Name,
			Description:  it.Description,
			ItemType:     it.ItemType,
			DietType:     it.DietType,
			Price:        it.Price,
			PriceMode:    it.PriceMode,
			TaxPercent:   it.TaxPercent,
			DisplayOrder: it.DisplayOrder,
			IsActive:     boolValue(it.IsActive, true),
			IsAvailable:  boolValue(it.IsAvailable, true),
		}
		if it.CategoryID != nil {
			if name, ok := categoryNames[it.CategoryID.String()]; ok {
				snap.CategoryName = &name
			}
		}
		if it.AddOnIDs != nil {
			for _, id := range *it.AddOnIDs {
				if name, ok := addOnNames[id]; ok {
					snap.AddOnNames = append(snap.AddOnNames, name)
				}
			}
		}
		if it.Variants != nil {
			snap.Variants = *it.Variants
		}
		snapshot.Items = append(snapshot.Items, snap)
	}

	for _, a := range addOns {
		snapshot.AddOns = append(snapshot.AddOns, models.AddOnSnapshot{
			Name:         a.Name,
			Price:        a.Price,
			CategoryTag:  a.CategoryTag,
			DisplayOrder: a.DisplayOrder,
			IsActive:     boolValue(a.IsActive, true),
		})
	}

	for _, cb := range combos {
		snap := models.ComboSnapshot{
			Name:          cb.Name,
			Description:   cb.Description,
			Type:          cb.Type,
			OriginalPrice: cb.OriginalPrice,
			Price:         cb.Price,
			IsActive:      boolValue(cb.IsActive, true),
		}
		switch cb.Type {
		case models.ComboTypeOffer:
			if cb.Offer != nil {
				discount := cb.Offer.DiscountPercent
				snap.DiscountPercent = &discount
				for _, ref := range cb.Offer.Items {
					name, ok := itemNames[ref.FoodItemID]
					if !ok {
						continue
					}
					snap.Items = append(snap.Items, models.ComboSnapshotLine{
						Name:     name,
						Quantity: ref.Quantity,
					})
				}
			}
		case models.ComboTypeRegular:
			if cb.Regular != nil {
				snap.LineItems = cb.Regular.LineItems
			}
		}
		snapshot.Combos = append(snapshot.Combos, snap)
	}

	return snapshot, nil
}

func boolValue(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
