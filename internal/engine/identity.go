package engine

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"menu-service/internal/models"
)

// itemKey identifies a food item within an outlet. Two items with the
// same name but different prices are distinct on purpose: they may be
// genuinely different priced offerings that were never modeled as
// variants, and merging them would lose one.
type itemKey struct {
	name       string
	priceCents int64
}

func newItemKey(name string, price float64) itemKey {
	return itemKey{
		name:       strings.ToLower(strings.TrimSpace(name)),
		priceCents: int64(math.Round(price * 100)),
	}
}

// categoryKey identifies a category by its outlet-scoped slug, so
// cosmetic name differences that slugify identically resolve to the
// same category.
type categoryKey struct {
	slug string
}

func newCategoryKey(name string) categoryKey {
	return categoryKey{slug: Slugify(name)}
}

// addOnKey identifies an add-on by lower-cased name
type addOnKey struct {
	name string
}

func newAddOnKey(name string) addOnKey {
	return addOnKey{name: strings.ToLower(strings.TrimSpace(name))}
}

// Index is a pre-loaded working set of one outlet's menu entities.
// Pipelines load it once to avoid per-record queries and register
// entities they create so later records in the same batch see them.
// Registration works the same in dry-run mode, which is what keeps
// dry-run decisions identical to live ones.
type Index struct {
	OutletID string

	itemsByKey       map[itemKey]uuid.UUID
	itemsByName      map[string]uuid.UUID
	itemsByID        map[string]models.FoodItem
	categoriesByKey  map[categoryKey]uuid.UUID
	categoriesByName map[string]uuid.UUID
	categoryIDs      map[string]bool
	addOnsByKey      map[addOnKey]models.AddOn
	slugs            map[string]bool
	maxCategoryOrder int
}

// BuildIndex loads an outlet's categories, items and add-ons into an Index.
func BuildIndex(store Store, tenantID, outletID string) (*Index, error) {
	idx := &Index{
		OutletID:         outletID,
		itemsByKey:       make(map[itemKey]uuid.UUID),
		itemsByName:      make(map[string]uuid.UUID),
		itemsByID:        make(map[string]models.FoodItem),
		categoriesByKey:  make(map[categoryKey]uuid.UUID),
		categoriesByName: make(map[string]uuid.UUID),
		categoryIDs:      make(map[string]bool),
		addOnsByKey:      make(map[addOnKey]models.AddOn),
		slugs:            make(map[string]bool),
	}

	categories, err := store.ListCategories(tenantID, outletID)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		idx.RegisterCategory(&categories[i])
	}

	items, err := store.ListItems(tenantID, outletID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		idx.RegisterItem(&items[i])
	}

	addOns, err := store.ListAddOns(tenantID, outletID)
	if err != nil {
		return nil, err
	}
	for i := range addOns {
		idx.RegisterAddOn(&addOns[i])
	}

	return idx, nil
}

// ResolveItem finds an existing item by (name, price) key
func (idx *Index) ResolveItem(name string, price float64) (uuid.UUID, bool) {
	id, ok := idx.itemsByKey[newItemKey(name, price)]
	return id, ok
}

// ResolveItemByName finds an existing item by name alone, the collision
// key used for cross-outlet duplicate detection.
func (idx *Index) ResolveItemByName(name string) (uuid.UUID, bool) {
	id, ok := idx.itemsByName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// ItemByID returns the indexed item for an id, when present
func (idx *Index) ItemByID(id string) (models.FoodItem, bool) {
	item, ok := idx.itemsByID[id]
	return item, ok
}

// ResolveCategory finds an existing category whose slug matches the
// slug derived from name.
func (idx *Index) ResolveCategory(name string) (uuid.UUID, bool) {
	id, ok := idx.categoriesByKey[newCategoryKey(name)]
	return id, ok
}

// ResolveCategoryByName finds an existing category by case-insensitive name
func (idx *Index) ResolveCategoryByName(name string) (uuid.UUID, bool) {
	id, ok := idx.categoriesByName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// HasCategory reports whether a category id belongs to the outlet
func (idx *Index) HasCategory(id string) bool {
	return idx.categoryIDs[id]
}

// ResolveAddOn finds an existing add-on by lower-cased name
func (idx *Index) ResolveAddOn(name string) (models.AddOn, bool) {
	addOn, ok := idx.addOnsByKey[newAddOnKey(name)]
	return addOn, ok
}

// RegisterItem adds an item to the working set
func (idx *Index) RegisterItem(item *models.FoodItem) {
	idx.itemsByKey[newItemKey(item.Name, item.Price)] = item.ID
	lower := strings.ToLower(strings.TrimSpace(item.Name))
	if _, exists := idx.itemsByName[lower]; !exists {
		idx.itemsByName[lower] = item.ID
	}
	idx.itemsByID[item.ID.String()] = *item
}

// RegisterCategory adds a category to the working set and claims its slug
func (idx *Index) RegisterCategory(category *models.Category) {
	idx.categoriesByKey[categoryKey{slug: category.Slug}] = category.ID
	idx.categoriesByName[strings.ToLower(strings.TrimSpace(category.Name))] = category.ID
	idx.categoryIDs[category.ID.String()] = true
	idx.slugs[category.Slug] = true
	if category.DisplayOrder > idx.maxCategoryOrder {
		idx.maxCategoryOrder = category.DisplayOrder
	}
}

// RegisterAddOn adds an add-on to the working set
func (idx *Index) RegisterAddOn(addOn *models.AddOn) {
	idx.addOnsByKey[newAddOnKey(addOn.Name)] = *addOn
}

// NewSlug claims an outlet-unique slug for a display name
func (idx *Index) NewSlug(name string) string {
	return UniqueSlug(idx.slugs, name)
}

// NextCategoryOrder returns the next auto-incremented display order
func (idx *Index) NextCategoryOrder() int {
	idx.maxCategoryOrder++
	return idx.maxCategoryOrder
}

// round2 rounds a price to two decimals
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
