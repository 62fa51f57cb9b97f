package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"menu-service/internal/models"
)

// fakeMenuStore is an in-memory MenuStore for handler tests
type fakeMenuStore struct {
	outlets map[string]bool
	items   map[string]models.FoodItem
	combos  map[string]models.Combo
}

func newFakeMenuStore(outletIDs ...string) *fakeMenuStore {
	s := &fakeMenuStore{
		outlets: make(map[string]bool),
		items:   make(map[string]models.FoodItem),
		combos:  make(map[string]models.Combo),
	}
	for _, id := range outletIDs {
		s.outlets[id] = true
	}
	return s
}

func (s *fakeMenuStore) addItem(outletID, name string, price float64) models.FoodItem {
	item := models.FoodItem{
		ID:       uuid.New(),
		TenantID: "t1",
		OutletID: outletID,
		Name:     name,
		Price:    price,
	}
	s.items[item.ID.String()] = item
	return item
}

func (s *fakeMenuStore) addCombo(combo *models.Combo) models.Combo {
	if combo.ID == uuid.Nil {
		combo.ID = uuid.New()
	}
	s.combos[combo.ID.String()] = *combo
	return *combo
}

func (s *fakeMenuStore) CreateOutlet(tenantID string, outlet *models.Outlet) error { return nil }

func (s *fakeMenuStore) GetOutlets(tenantID string, page, limit int) ([]models.Outlet, int64, error) {
	return []models.Outlet{}, 0, nil
}

func (s *fakeMenuStore) GetOutletByID(tenantID string, outletID uuid.UUID) (*models.Outlet, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeMenuStore) UpdateOutlet(tenantID string, outletID uuid.UUID, updates *models.Outlet) error {
	return nil
}

func (s *fakeMenuStore) DeleteOutlet(tenantID string, outletID uuid.UUID) error { return nil }

func (s *fakeMenuStore) OutletExists(tenantID, outletID string) (bool, error) {
	return s.outlets[outletID], nil
}

func (s *fakeMenuStore) ListCategories(tenantID, outletID string) ([]models.Category, error) {
	return nil, nil
}

func (s *fakeMenuStore) GetCategoryByID(tenantID string, categoryID uuid.UUID) (*models.Category, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeMenuStore) CreateCategory(tenantID string, category *models.Category) error { return nil }

func (s *fakeMenuStore) UpdateCategory(tenantID string, categoryID uuid.UUID, updates *models.Category) error {
	return nil
}

func (s *fakeMenuStore) DeleteCategory(tenantID string, categoryID uuid.UUID, outletID string) error {
	return nil
}

func (s *fakeMenuStore) CountItemsByCategory(tenantID string, categoryID uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *fakeMenuStore) GetItems(tenantID, outletID string, categoryID *string, search *string, page, limit int) ([]models.FoodItem, int64, error) {
	return nil, 0, nil
}

func (s *fakeMenuStore) GetItemByID(tenantID string, itemID uuid.UUID) (*models.FoodItem, error) {
	item, ok := s.items[itemID.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (s *fakeMenuStore) GetItemsByIDs(tenantID string, itemIDs []uuid.UUID) ([]models.FoodItem, error) {
	found := make([]models.FoodItem, 0, len(itemIDs))
	for _, id := range itemIDs {
		if item, ok := s.items[id.String()]; ok {
			found = append(found, item)
		}
	}
	return found, nil
}

func (s *fakeMenuStore) CreateItem(tenantID string, item *models.FoodItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.items[item.ID.String()] = *item
	return nil
}

func (s *fakeMenuStore) UpdateItem(tenantID string, itemID uuid.UUID, updates *models.FoodItem) error {
	s.items[itemID.String()] = *updates
	return nil
}

func (s *fakeMenuStore) DeleteItem(tenantID string, itemID uuid.UUID, outletID string) error {
	delete(s.items, itemID.String())
	return nil
}

func (s *fakeMenuStore) IncrementItemViewCount(tenantID string, itemID uuid.UUID) error { return nil }

func (s *fakeMenuStore) ListAddOns(tenantID, outletID string) ([]models.AddOn, error) {
	return nil, nil
}

func (s *fakeMenuStore) GetAddOnByID(tenantID string, addOnID uuid.UUID) (*models.AddOn, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeMenuStore) CreateAddOn(tenantID string, addOn *models.AddOn) error { return nil }

func (s *fakeMenuStore) UpdateAddOn(tenantID string, addOnID uuid.UUID, updates *models.AddOn) error {
	return nil
}

func (s *fakeMenuStore) DeleteAddOn(tenantID string, addOnID uuid.UUID, outletID string) error {
	return nil
}

func (s *fakeMenuStore) ListCombos(tenantID, outletID string) ([]models.Combo, error) {
	return nil, nil
}

func (s *fakeMenuStore) GetComboByID(tenantID string, comboID uuid.UUID) (*models.Combo, error) {
	combo, ok := s.combos[comboID.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &combo, nil
}

func (s *fakeMenuStore) CreateCombo(tenantID string, combo *models.Combo) error {
	if combo.ID == uuid.Nil {
		combo.ID = uuid.New()
	}
	s.combos[combo.ID.String()] = *combo
	return nil
}

func (s *fakeMenuStore) UpdateCombo(tenantID string, comboID uuid.UUID, updates *models.Combo) error {
	s.combos[comboID.String()] = *updates
	return nil
}

func (s *fakeMenuStore) DeleteCombo(tenantID string, comboID uuid.UUID, outletID string) error {
	delete(s.combos, comboID.String())
	return nil
}

func menuTestRouter(h *MenuHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("tenant_id", "t1")
		c.Set("user_id", "u1")
	})
	router.GET("/outlets", h.GetOutlets)
	router.POST("/outlets/:outletId/combos", h.CreateCombo)
	router.PUT("/outlets/:outletId/combos/:comboId", h.UpdateCombo)
	return router
}

func putJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateComboRederivesOfferPricing(t *testing.T) {
	store := newFakeMenuStore("out1")
	rice := store.addItem("out1", "Rice", 100)
	curry := store.addItem("out1", "Curry", 50)

	existing := store.addCombo(models.NewOfferCombo("t1", "out1", "Lunch Special", models.OfferComboDetails{
		Items:           []models.ComboItemRef{{FoodItemID: rice.ID.String(), Quantity: 1}},
		DiscountPercent: 0,
	}))

	handler := NewMenuHandler(store, nil, 20, 100)
	router := menuTestRouter(handler)

	req := models.CreateComboRequest{
		Name: "Lunch Special",
		Type: models.ComboTypeOffer,
		Items: []models.ComboItemRef{
			{FoodItemID: rice.ID.String(), Quantity: 1},
			{FoodItemID: curry.ID.String(), Quantity: 2},
		},
		DiscountPercent: 10,
	}
	w := putJSON(router, "/outlets/out1/combos/"+existing.ID.String(), req)

	assert.Equal(t, http.StatusOK, w.Code)

	updated := store.combos[existing.ID.String()]
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, models.ComboTypeOffer, updated.Type)
	assert.Equal(t, 200.0, updated.OriginalPrice)
	assert.Equal(t, 180.0, updated.Price)
	require.NotNil(t, updated.Offer)
	assert.Len(t, updated.Offer.Items, 2)
}

func TestUpdateComboRejectsForeignItem(t *testing.T) {
	store := newFakeMenuStore("out1", "out2")
	foreign := store.addItem("out2", "Rice", 100)
	existing := store.addCombo(models.NewRegularCombo("t1", "out1", "House Platter", models.RegularComboDetails{
		LineItems: []models.ComboLineItem{{Name: "Chef's Choice", Quantity: 1}},
	}))

	handler := NewMenuHandler(store, nil, 20, 100)
	router := menuTestRouter(handler)

	req := models.CreateComboRequest{
		Name:  "House Platter",
		Type:  models.ComboTypeOffer,
		Items: []models.ComboItemRef{{FoodItemID: foreign.ID.String(), Quantity: 1}},
	}
	w := putJSON(router, "/outlets/out1/combos/"+existing.ID.String(), req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ITEM_NOT_FOUND")

	// The stored combo is untouched
	unchanged := store.combos[existing.ID.String()]
	assert.Equal(t, models.ComboTypeRegular, unchanged.Type)
}

func TestUpdateComboSwitchesVariant(t *testing.T) {
	store := newFakeMenuStore("out1")
	rice := store.addItem("out1", "Rice", 100)
	existing := store.addCombo(models.NewOfferCombo("t1", "out1", "Rice Deal", models.OfferComboDetails{
		Items: []models.ComboItemRef{{FoodItemID: rice.ID.String(), Quantity: 1}},
	}))

	handler := NewMenuHandler(store, nil, 20, 100)
	router := menuTestRouter(handler)

	price := 120.0
	req := models.CreateComboRequest{
		Name:      "Rice Deal",
		Type:      models.ComboTypeRegular,
		LineItems: []models.ComboLineItem{{Name: "Rice with sides", Quantity: 1}},
		Price:     &price,
	}
	w := putJSON(router, "/outlets/out1/combos/"+existing.ID.String(), req)

	assert.Equal(t, http.StatusOK, w.Code)

	updated := store.combos[existing.ID.String()]
	assert.Equal(t, models.ComboTypeRegular, updated.Type)
	assert.Nil(t, updated.Offer)
	require.NotNil(t, updated.Regular)
	assert.Equal(t, 120.0, updated.Price)
}

func TestUpdateComboNotFound(t *testing.T) {
	store := newFakeMenuStore("out1")
	handler := NewMenuHandler(store, nil, 20, 100)
	router := menuTestRouter(handler)

	price := 50.0
	req := models.CreateComboRequest{
		Name:      "Ghost",
		Type:      models.ComboTypeRegular,
		LineItems: []models.ComboLineItem{{Name: "Nothing", Quantity: 1}},
		Price:     &price,
	}
	w := putJSON(router, "/outlets/out1/combos/"+uuid.NewString(), req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "COMBO_NOT_FOUND")
}

func TestPaginationBoundsComeFromConfig(t *testing.T) {
	store := newFakeMenuStore()
	handler := NewMenuHandler(store, nil, 10, 50)
	router := menuTestRouter(handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/outlets", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"limit":10`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/outlets?limit=500", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"limit":50`)
}
