package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"menu-service/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeStore is an in-memory Store for engine tests. Entities are keyed
// by outlet; the tenant id is accepted but not used for isolation since
// each test works within one tenant.
type fakeStore struct {
	mu sync.Mutex

	outlets    map[string]bool
	categories map[string][]models.Category
	items      map[string][]models.FoodItem
	addOns     map[string][]models.AddOn
	combos     map[string][]models.Combo

	writes int

	// failItemNames makes CreateItem fail for specific item names
	failItemNames map[string]bool
}

func newFakeStore(outletIDs ...string) *fakeStore {
	s := &fakeStore{
		outlets:       make(map[string]bool),
		categories:    make(map[string][]models.Category),
		items:         make(map[string][]models.FoodItem),
		addOns:        make(map[string][]models.AddOn),
		combos:        make(map[string][]models.Combo),
		failItemNames: make(map[string]bool),
	}
	for _, id := range outletIDs {
		s.outlets[id] = true
	}
	return s
}

func (s *fakeStore) OutletExists(tenantID, outletID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outlets[outletID], nil
}

func (s *fakeStore) ListCategories(tenantID, outletID string) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.categories[outletID]...), nil
}

func (s *fakeStore) CreateCategory(tenantID string, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.categories[category.OutletID] = append(s.categories[category.OutletID], *category)
	return nil
}

func (s *fakeStore) UpdateCategory(tenantID string, id uuid.UUID, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	list := s.categories[category.OutletID]
	for i := range list {
		if list[i].ID == id {
			list[i] = *category
			return nil
		}
	}
	return fmt.Errorf("category %s not found", id)
}

func (s *fakeStore) ListItems(tenantID, outletID string) ([]models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FoodItem(nil), s.items[outletID]...), nil
}

func (s *fakeStore) CreateItem(tenantID string, item *models.FoodItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failItemNames[item.Name] {
		return fmt.Errorf("storage rejected item %q", item.Name)
	}
	s.writes++
	s.items[item.OutletID] = append(s.items[item.OutletID], *item)
	return nil
}

func (s *fakeStore) UpdateItem(tenantID string, id uuid.UUID, item *models.FoodItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	list := s.items[item.OutletID]
	for i := range list {
		if list[i].ID == id {
			list[i] = *item
			return nil
		}
	}
	return fmt.Errorf("item %s not found", id)
}

func (s *fakeStore) ListAddOns(tenantID, outletID string) ([]models.AddOn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AddOn(nil), s.addOns[outletID]...), nil
}

func (s *fakeStore) CreateAddOn(tenantID string, addOn *models.AddOn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.addOns[addOn.OutletID] = append(s.addOns[addOn.OutletID], *addOn)
	return nil
}

func (s *fakeStore) UpdateAddOn(tenantID string, id uuid.UUID, addOn *models.AddOn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	list := s.addOns[addOn.OutletID]
	for i := range list {
		if list[i].ID == id {
			list[i] = *addOn
			return nil
		}
	}
	return fmt.Errorf("add-on %s not found", id)
}

func (s *fakeStore) ListCombos(tenantID, outletID string) ([]models.Combo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Combo(nil), s.combos[outletID]...), nil
}

func (s *fakeStore) CreateCombo(tenantID string, combo *models.Combo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.combos[combo.OutletID] = append(s.combos[combo.OutletID], *combo)
	return nil
}

// Seed helpers

func (s *fakeStore) seedCategory(outletID, name, slug string, displayOrder int) models.Category {
	active := true
	category := models.Category{
		ID:           uuid.New(),
		TenantID:     "t1",
		OutletID:     outletID,
		Name:         name,
		Slug:         slug,
		DisplayOrder: displayOrder,
		IsActive:     &active,
	}
	s.categories[outletID] = append(s.categories[outletID], category)
	return category
}

func (s *fakeStore) seedItem(outletID, name string, price float64, categoryID *uuid.UUID) models.FoodItem {
	active := true
	available := true
	item := models.FoodItem{
		ID:          uuid.New(),
		TenantID:    "t1",
		OutletID:    outletID,
		CategoryID:  categoryID,
		Name:        name,
		ItemType:    models.ItemTypeFood,
		DietType:    models.DietTypeVeg,
		Price:       price,
		PriceMode:   models.PriceModeFixed,
		IsActive:    &active,
		IsAvailable: &available,
	}
	s.items[outletID] = append(s.items[outletID], item)
	return item
}

func (s *fakeStore) seedAddOn(outletID, name string, price float64) models.AddOn {
	active := true
	addOn := models.AddOn{
		ID:       uuid.New(),
		TenantID: "t1",
		OutletID: outletID,
		Name:     name,
		Price:    price,
		IsActive: &active,
	}
	s.addOns[outletID] = append(s.addOns[outletID], addOn)
	return addOn
}

func (s *fakeStore) itemByName(outletID, name string) (models.FoodItem, bool) {
	for _, item := range s.items[outletID] {
		if item.Name == name {
			return item, true
		}
	}
	return models.FoodItem{}, false
}

func (s *fakeStore) categoryByName(outletID, name string) (models.Category, bool) {
	for _, category := range s.categories[outletID] {
		if category.Name == name {
			return category, true
		}
	}
	return models.Category{}, false
}
