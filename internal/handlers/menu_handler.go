package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"menu-service/internal/engine"
	"menu-service/internal/events"
	"menu-service/internal/models"
)

// MenuStore is the repository surface the CRUD handlers consume.
// *repository.MenuRepository implements it; tests substitute a fake.
type MenuStore interface {
	CreateOutlet(tenantID string, outlet *models.Outlet) error
	GetOutlets(tenantID string, page, limit int) ([]models.Outlet, int64, error)
	GetOutletByID(tenantID string, outletID uuid.UUID) (*models.Outlet, error)
	UpdateOutlet(tenantID string, outletID uuid.UUID, updates *models.Outlet) error
	DeleteOutlet(tenantID string, outletID uuid.UUID) error
	OutletExists(tenantID, outletID string) (bool, error)

	ListCategories(tenantID, outletID string) ([]models.Category, error)
	GetCategoryByID(tenantID string, categoryID uuid.UUID) (*models.Category, error)
	CreateCategory(tenantID string, category *models.Category) error
	UpdateCategory(tenantID string, categoryID uuid.UUID, updates *models.Category) error
	DeleteCategory(tenantID string, categoryID uuid.UUID, outletID string) error
	CountItemsByCategory(tenantID string, categoryID uuid.UUID) (int64, error)

	GetItems(tenantID, outletID string, categoryID *string, search *string, page, limit int) ([]models.FoodItem, int64, error)
	GetItemByID(tenantID string, itemID uuid.UUID) (*models.FoodItem, error)
	GetItemsByIDs(tenantID string, itemIDs []uuid.UUID) ([]models.FoodItem, error)
	CreateItem(tenantID string, item *models.FoodItem) error
	UpdateItem(tenantID string, itemID uuid.UUID, updates *models.FoodItem) error
	DeleteItem(tenantID string, itemID uuid.UUID, outletID string) error
	IncrementItemViewCount(tenantID string, itemID uuid.UUID) error

	ListAddOns(tenantID, outletID string) ([]models.AddOn, error)
	GetAddOnByID(tenantID string, addOnID uuid.UUID) (*models.AddOn, error)
	CreateAddOn(tenantID string, addOn *models.AddOn) error
	UpdateAddOn(tenantID string, addOnID uuid.UUID, updates *models.AddOn) error
	DeleteAddOn(tenantID string, addOnID uuid.UUID, outletID string) error

	ListCombos(tenantID, outletID string) ([]models.Combo, error)
	GetComboByID(tenantID string, comboID uuid.UUID) (*models.Combo, error)
	CreateCombo(tenantID string, combo *models.Combo) error
	UpdateCombo(tenantID string, comboID uuid.UUID, updates *models.Combo) error
	DeleteCombo(tenantID string, comboID uuid.UUID, outletID string) error
}

// MenuHandler serves the CRUD surface of the menu graph: outlets,
// categories, food items, add-ons and combos.
type MenuHandler struct {
	repo            MenuStore
	publisher       *events.Publisher
	defaultPageSize int
	maxPageSize     int
}

func NewMenuHandler(repo MenuStore, publisher *events.Publisher, defaultPageSize, maxPageSize int) *MenuHandler {
	if defaultPageSize < 1 {
		defaultPageSize = 20
	}
	if maxPageSize < defaultPageSize {
		maxPageSize = defaultPageSize
	}
	return &MenuHandler{
		repo:            repo,
		publisher:       publisher,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    code,
			Message: message,
		},
	})
}

// tenantID extracts the tenant set by the tenant middleware
func tenantID(c *gin.Context) string {
	id, _ := c.Get("tenant_id")
	if s, ok := id.(string); ok {
		return s
	}
	return ""
}

// actorID extracts the acting user set by the auth middleware
func actorID(c *gin.Context) string {
	id, _ := c.Get("user_id")
	if s, ok := id.(string); ok {
		return s
	}
	return ""
}

// paginationParams reads page/limit query params, bounded by the
// configured page sizes.
func (h *MenuHandler) paginationParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = h.defaultPageSize
	}
	if limit > h.maxPageSize {
		limit = h.maxPageSize
	}
	return page, limit
}

func buildPagination(page, limit int, total int64) models.PaginationInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return models.PaginationInfo{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// requireOutlet validates the outlet path param against the tenant.
// Returns the outlet id and false when the request was already answered.
func (h *MenuHandler) requireOutlet(c *gin.Context) (string, bool) {
	outletID := c.Param("outletId")
	exists, err := h.repo.OutletExists(tenantID(c), outletID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to check outlet")
		return "", false
	}
	if !exists {
		respondError(c, http.StatusNotFound, "OUTLET_NOT_FOUND", "Outlet not found")
		return "", false
	}
	return outletID, true
}

func stringPtr(s string) *string {
	return &s
}

// Outlet Endpoints

// CreateOutlet creates a new outlet
// POST /api/v1/outlets
func (h *MenuHandler) CreateOutlet(c *gin.Context) {
	var req models.CreateOutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	active := true
	outlet := &models.Outlet{
		Name:     req.Name,
		BrandID:  req.BrandID,
		Address:  req.Address,
		IsActive: &active,
	}
	if err := h.repo.CreateOutlet(tenantID(c), outlet); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create outlet")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: outlet})
}

// GetOutlets lists outlets with pagination
// GET /api/v1/outlets
func (h *MenuHandler) GetOutlets(c *gin.Context) {
	page, limit := h.paginationParams(c)

	outlets, total, err := h.repo.GetOutlets(tenantID(c), page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list outlets")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       outlets,
		"pagination": buildPagination(page, limit, total),
	})
}

// GetOutlet retrieves a single outlet
// GET /api/v1/outlets/:outletId
func (h *MenuHandler) GetOutlet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("outletId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid outlet ID")
		return
	}

	outlet, err := h.repo.GetOutletByID(tenantID(c), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "OUTLET_NOT_FOUND", "Outlet not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to fetch outlet")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: outlet})
}

// UpdateOutlet updates an outlet
// PUT /api/v1/outlets/:outletId
func (h *MenuHandler) UpdateOutlet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("outletId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid outlet ID")
		return
	}

	var req models.CreateOutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updates := &models.Outlet{
		Name:    req.Name,
		BrandID: req.BrandID,
		Address: req.Address,
	}
	if err := h.repo.UpdateOutlet(tenantID(c), id, updates); err != nil {
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update outlet")
		return
	}

	outlet, err := h.repo.GetOutletByID(tenantID(c), id)
	if err != nil {
		respondError(c, http.StatusNotFound, "OUTLET_NOT_FOUND", "Outlet not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: outlet})
}

// DeleteOutlet soft deletes an outlet
// DELETE /api/v1/outlets/:outletId
func (h *MenuHandler) DeleteOutlet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("outletId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid outlet ID")
		return
	}

	if err := h.repo.DeleteOutlet(tenantID(c), id); err != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete outlet")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: stringPtr("Outlet deleted")})
}

// Category Endpoints

// GetCategories lists an outlet's categories
// GET /api/v1/outlets/:outletId/categories
func (h *MenuHandler) GetCategories(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	categories, err := h.repo.ListCategories(tenantID(c), outletID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: categories})
}

// CreateCategory creates a category with an outlet-unique slug
// POST /api/v1/outlets/:outletId/categories
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	existing, err := h.repo.ListCategories(tenantID(c), outletID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load categories")
		return
	}
	taken := make(map[string]bool, len(existing))
	maxOrder := 0
	for _, cat := range existing {
		taken[cat.Slug] = true
		if cat.DisplayOrder > maxOrder {
			maxOrder = cat.DisplayOrder
		}
	}

	displayOrder := maxOrder + 1
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}

	active := true
	category := &models.Category{
		OutletID:     outletID,
		Name:         req.Name,
		Slug:         engine.UniqueSlug(taken, req.Name),
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: displayOrder,
		IsActive:     &active,
	}
	if err := h.repo.CreateCategory(tenantID(c), category); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: category})
}

// GetCategory retrieves a single category
// GET /api/v1/outlets/:outletId/categories/:categoryId
func (h *MenuHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
		return
	}

	category, err := h.repo.GetCategoryByID(tenantID(c), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to fetch category")
		return
	}
	if category.OutletID != c.Param("outletId") {
		respondError(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: category})
}

// UpdateCategory updates a category. The slug is stable across renames
// so external references keep working.
// PUT /api/v1/outlets/:outletId/categories/:categoryId
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	category, err := h.repo.GetCategoryByID(tenantID(c), id)
	if err != nil || category.OutletID != c.Param("outletId") {
		respondError(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.ImageURL != nil {
		category.ImageURL = req.ImageURL
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		category.IsActive = req.IsActive
	}

	if err := h.repo.UpdateCategory(tenantID(c), id, category); err != nil {
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: category})
}

// DeleteCategory deletes a category unless items still reference it
// DELETE /api/v1/outlets/:outletId/categories/:categoryId
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
		return
	}

	count, err := h.repo.CountItemsByCategory(tenantID(c), id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to check category usage")
		return
	}
	if count > 0 {
		respondError(c, http.StatusConflict, "CATEGORY_IN_USE",
			"Category still has items; move or delete them first")
		return
	}

	if err := h.repo.DeleteCategory(tenantID(c), id, outletID); err != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: stringPtr("Category deleted")})
}

// Food Item Endpoints

// GetFoodItems lists items with filters and pagination
// GET /api/v1/outlets/:outletId/items
func (h *MenuHandler) GetFoodItems(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	page, limit := h.paginationParams(c)
	var categoryID, search *string
	if v := c.Query("categoryId"); v != "" {
		categoryID = &v
	}
	if v := c.Query("search"); v != "" {
		search = &v
	}

	items, total, err := h.repo.GetItems(tenantID(c), outletID, categoryID, search, page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       items,
		"pagination": buildPagination(page, limit, total),
	})
}

// CreateFoodItem creates a food item
// POST /api/v1/outlets/:outletId/items
func (h *MenuHandler) CreateFoodItem(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	var req models.CreateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Price < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be non-negative")
		return
	}

	categoryID, ok := h.resolveItemCategory(c, outletID, req.CategoryID)
	if !ok {
		return
	}

	item := h.itemFromCreateRequest(outletID, &req, categoryID)
	if err := h.repo.CreateItem(tenantID(c), item); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create item")
		return
	}

	if h.publisher != nil {
		_ = h.publisher.PublishItemCreated(c.Request.Context(), tenantID(c), outletID, item.ID.String(), item.Name, actorID(c))
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: item})
}

// GetFoodItem retrieves a single item and bumps its view counter
// GET /api/v1/outlets/:outletId/items/:itemId
func (h *MenuHandler) GetFoodItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	item, err := h.repo.GetItemByID(tenantID(c), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to fetch item")
		return
	}
	if item.OutletID != c.Param("outletId") {
		respondError(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found")
		return
	}

	_ = h.repo.IncrementItemViewCount(tenantID(c), id)

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: item})
}

// UpdateFoodItem applies a partial update. An inactive item is never
// left available.
// PUT /api/v1/outlets/:outletId/items/:itemId
func (h *MenuHandler) UpdateFoodItem(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	var req models.UpdateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Price != nil && *req.Price < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be non-negative")
		return
	}

	item, err := h.repo.GetItemByID(tenantID(c), id)
	if err != nil || item.OutletID != outletID {
		respondError(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found")
		return
	}

	if req.CategoryID != nil {
		categoryID, ok := h.resolveItemCategory(c, outletID, req.CategoryID)
		if !ok {
			return
		}
		item.CategoryID = categoryID
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.ItemType != nil {
		item.ItemType = *req.ItemType
	}
	if req.DietType != nil {
		item.DietType = *req.DietType
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.PriceMode != nil {
		item.PriceMode = *req.PriceMode
	}
	if req.TaxPercent != nil {
		item.TaxPercent = *req.TaxPercent
	}
	if req.AddOnIDs != nil {
		addOns := models.StringArray(req.AddOnIDs)
		item.AddOnIDs = &addOns
	}
	if req.Variants != nil {
		variants := req.Variants
		item.Variants = &variants
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		item.IsActive = req.IsActive
	}
	if req.IsAvailable != nil {
		item.IsAvailable = req.IsAvailable
	}
	if item.IsActive != nil && !*item.IsActive {
		unavailable := false
		item.IsAvailable = &unavailable
	}

	if err := h.repo.UpdateItem(tenantID(c), id, item); err != nil {
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update item")
		return
	}

	if h.publisher != nil {
		_ = h.publisher.PublishItemUpdated(c.Request.Context(), tenantID(c), outletID, item.ID.String(), item.Name, actorID(c))
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: item})
}

// DeleteFoodItem soft deletes an item
// DELETE /api/v1/outlets/:outletId/items/:itemId
func (h *MenuHandler) DeleteFoodItem(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	if err := h.repo.DeleteItem(tenantID(c), id, outletID); err != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete item")
		return
	}

	if h.publisher != nil {
		_ = h.publisher.PublishItemDeleted(c.Request.Context(), tenantID(c), outletID, id.String(), actorID(c))
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: stringPtr("Item deleted")})
}

// resolveItemCategory validates an optional category reference against
// the outlet. Returns ok=false after answering the request on error.
func (h *MenuHandler) resolveItemCategory(c *gin.Context, outletID string, ref *string) (*uuid.UUID, bool) {
	if ref == nil || *ref == "" {
		return nil, true
	}
	id, err := uuid.Parse(*ref)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
		return nil, false
	}
	category, err := h.repo.GetCategoryByID(tenantID(c), id)
	if err != nil || category.OutletID != outletID {
		respondError(c, http.StatusBadRequest, "CATEGORY_NOT_FOUND", "Category does not belong to this outlet")
		return nil, false
	}
	return &id, true
}

func (h *MenuHandler) itemFromCreateRequest(outletID string, req *models.CreateFoodItemRequest, categoryID *uuid.UUID) *models.FoodItem {
	itemType := models.ItemTypeFood
	if req.ItemType != nil {
		itemType = *req.ItemType
	}
	dietType := models.DietTypeVeg
	if req.DietType != nil {
		dietType = *req.DietType
	}
	priceMode := models.PriceModeFixed
	if req.PriceMode != nil {
		priceMode = *req.PriceMode
	}
	taxPercent := 0.0
	if req.TaxPercent != nil {
		taxPercent = *req.TaxPercent
	}
	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}

	active := true
	available := true
	item := &models.FoodItem{
		OutletID:     outletID,
		CategoryID:   categoryID,
		Name:         req.Name,
		Description:  req.Description,
		ItemType:     itemType,
		DietType:     dietType,
		Price:        req.Price,
		PriceMode:    priceMode,
		TaxPercent:   taxPercent,
		IsActive:     &active,
		IsAvailable:  &available,
		ImageURL:     req.ImageURL,
		DisplayOrder: displayOrder,
	}
	if len(req.AddOnIDs) > 0 {
		addOns := models.StringArray(req.AddOnIDs)
		item.AddOnIDs = &addOns
	}
	if len(req.Variants) > 0 {
		variants := req.Variants
		item.Variants = &variants
	}
	return item
}

// Add-On Endpoints

// GetAddOns lists an outlet's add-ons
// GET /api/v1/outlets/:outletId/addons
func (h *MenuHandler) GetAddOns(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	addOns, err := h.repo.ListAddOns(tenantID(c), outletID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list add-ons")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: addOns})
}

// CreateAddOn creates an add-on
// POST /api/v1/outlets/:outletId/addons
func (h *MenuHandler) CreateAddOn(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	var req models.CreateAddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Price < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be non-negative")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}
	addOn := &models.AddOn{
		OutletID:     outletID,
		Name:         req.Name,
		Price:        req.Price,
		CategoryTag:  req.CategoryTag,
		IsActive:     &active,
		DisplayOrder: displayOrder,
	}
	if err := h.repo.CreateAddOn(tenantID(c), addOn); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create add-on")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: addOn})
}

// UpdateAddOn updates an add-on
// PUT /api/v1/outlets/:outletId/addons/:addonId
func (h *MenuHandler) UpdateAddOn(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("addonId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid add-on ID")
		return
	}

	var req models.UpdateAddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Price != nil && *req.Price < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be non-negative")
		return
	}

	addOn, err := h.repo.GetAddOnByID(tenantID(c), id)
	if err != nil || addOn.OutletID != outletID {
		respondError(c, http.StatusNotFound, "ADDON_NOT_FOUND", "Add-on not found")
		return
	}

	if req.Name != nil {
		addOn.Name = *req.Name
	}
	if req.Price != nil {
		addOn.Price = *req.Price
	}
	if req.CategoryTag != nil {
		addOn.CategoryTag = req.CategoryTag
	}
	if req.DisplayOrder != nil {
		addOn.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		addOn.IsActive = req.IsActive
	}

	if err := h.repo.UpdateAddOn(tenantID(c), id, addOn); err != nil {
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update add-on")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: addOn})
}

// DeleteAddOn soft deletes an add-on
// DELETE /api/v1/outlets/:outletId/addons/:addonId
func (h *MenuHandler) DeleteAddOn(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("addonId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid add-on ID")
		return
	}

	if err := h.repo.DeleteAddOn(tenantID(c), id, outletID); err != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete add-on")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: stringPtr("Add-on deleted")})
}

// Combo Endpoints

// GetCombos lists an outlet's combos
// GET /api/v1/outlets/:outletId/combos
func (h *MenuHandler) GetCombos(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	combos, err := h.repo.ListCombos(tenantID(c), outletID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list combos")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: combos})
}

// CreateCombo creates a combo of either variant. Offer combos must
// reference items of the same outlet; their pricing is derived from the
// referenced items with the discount applied.
// POST /api/v1/outlets/:outletId/combos
func (h *MenuHandler) CreateCombo(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	var req models.CreateComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	combo, ok := h.comboFromRequest(c, outletID, &req)
	if !ok {
		return
	}
	active := true
	combo.IsActive = &active

	if err := h.repo.CreateCombo(tenantID(c), combo); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create combo")
		return
	}

	if h.publisher != nil {
		_ = h.publisher.PublishComboCreated(c.Request.Context(), tenantID(c), outletID, combo.ID.String(), combo.Name, actorID(c))
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: combo})
}

// UpdateCombo replaces a combo's payload. Offer pricing is re-derived
// from the referenced items, exactly as on create.
// PUT /api/v1/outlets/:outletId/combos/:comboId
func (h *MenuHandler) UpdateCombo(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("comboId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid combo ID")
		return
	}

	var req models.CreateComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	existing, err := h.repo.GetComboByID(tenantID(c), id)
	if err != nil || existing.OutletID != outletID {
		respondError(c, http.StatusNotFound, "COMBO_NOT_FOUND", "Combo not found")
		return
	}

	combo, ok := h.comboFromRequest(c, outletID, &req)
	if !ok {
		return
	}
	combo.ID = existing.ID
	combo.IsActive = existing.IsActive
	combo.CreatedAt = existing.CreatedAt

	if err := h.repo.UpdateCombo(tenantID(c), id, combo); err != nil {
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update combo")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: combo})
}

// comboFromRequest validates the request and builds the combo of the
// requested variant, deriving offer pricing through the price
// calculator. Returns ok=false after answering the request on error.
func (h *MenuHandler) comboFromRequest(c *gin.Context, outletID string, req *models.CreateComboRequest) (*models.Combo, bool) {
	var combo *models.Combo
	switch req.Type {
	case models.ComboTypeOffer:
		var ok bool
		combo, ok = h.buildOfferCombo(c, outletID, req)
		if !ok {
			return nil, false
		}
	case models.ComboTypeRegular:
		if len(req.LineItems) == 0 {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Regular combos require line items")
			return nil, false
		}
		if req.Price == nil || *req.Price < 0 {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Regular combos require a non-negative price")
			return nil, false
		}
		combo = models.NewRegularCombo(tenantID(c), outletID, req.Name, models.RegularComboDetails{
			LineItems: req.LineItems,
		})
		combo.OriginalPrice = *req.Price
		combo.Price = *req.Price
	default:
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Combo type must be OFFER or REGULAR")
		return nil, false
	}

	combo.Description = req.Description
	return combo, true
}

func (h *MenuHandler) buildOfferCombo(c *gin.Context, outletID string, req *models.CreateComboRequest) (*models.Combo, bool) {
	if len(req.Items) == 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Offer combos require item references")
		return nil, false
	}

	itemIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, ref := range req.Items {
		id, err := uuid.Parse(ref.FoodItemID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid food item ID in combo")
			return nil, false
		}
		itemIDs = append(itemIDs, id)
	}

	items, err := h.repo.GetItemsByIDs(tenantID(c), itemIDs)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to resolve combo items")
		return nil, false
	}
	prices := make(map[string]float64, len(items))
	for _, item := range items {
		if item.OutletID != outletID {
			continue
		}
		prices[item.ID.String()] = item.Price
	}
	for _, ref := range req.Items {
		if _, ok := prices[ref.FoodItemID]; !ok {
			respondError(c, http.StatusBadRequest, "ITEM_NOT_FOUND",
				"Combo references an item that does not belong to this outlet")
			return nil, false
		}
	}

	pricing := engine.PriceCombo(func(id string) (float64, bool) {
		price, ok := prices[id]
		return price, ok
	}, req.Items, req.DiscountPercent)

	combo := models.NewOfferCombo(tenantID(c), outletID, req.Name, models.OfferComboDetails{
		Items:           req.Items,
		DiscountPercent: req.DiscountPercent,
		ManualPrice:     req.ManualPrice,
	})
	combo.OriginalPrice = pricing.OriginalPrice
	combo.Price = engine.EffectiveComboPrice(pricing, req.ManualPrice)
	return combo, true
}

// GetCombo retrieves a single combo
// GET /api/v1/outlets/:outletId/combos/:comboId
func (h *MenuHandler) GetCombo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("comboId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid combo ID")
		return
	}

	combo, err := h.repo.GetComboByID(tenantID(c), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "COMBO_NOT_FOUND", "Combo not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to fetch combo")
		return
	}
	if combo.OutletID != c.Param("outletId") {
		respondError(c, http.StatusNotFound, "COMBO_NOT_FOUND", "Combo not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: combo})
}

// DeleteCombo soft deletes a combo
// DELETE /api/v1/outlets/:outletId/combos/:comboId
func (h *MenuHandler) DeleteCombo(c *gin.Context) {
	outletID, ok := h.requireOutlet(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("comboId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid combo ID")
		return
	}

	if err := h.repo.DeleteCombo(tenantID(c), id, outletID); err != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete combo")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: stringPtr("Combo deleted")})
}
