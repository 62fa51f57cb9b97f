package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"menu-service/internal/models"
)

// Cache TTL constants
const (
	EntityCacheTTL   = 5 * time.Minute  // Single entity cache
	ListCacheTTL     = 2 * time.Minute  // List cache (shorter due to frequent changes)
	CategoryCacheTTL = 30 * time.Minute // Categories rarely change
)

// MenuRepository persists the menu graph in Postgres with a Redis
// read-through cache on the hot category and item lookups. Every method
// scopes its query by tenant id; outlet-scoped methods add the outlet.
type MenuRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewMenuRepository(db *gorm.DB, redis *redis.Client) *MenuRepository {
	return &MenuRepository{
		db:    db,
		redis: redis,
	}
}

// cacheGet loads a cached JSON value into dest, reporting a hit
func (r *MenuRepository) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.redis == nil {
		return false
	}
	val, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

// cacheSet stores a JSON value; cache failures are ignored
func (r *MenuRepository) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if r.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	r.redis.Set(ctx, key, data, ttl)
}

// invalidatePattern removes all cache keys matching a glob pattern
func (r *MenuRepository) invalidatePattern(ctx context.Context, pattern string) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, pattern, 100).Iterator()
	keys := make([]string, 0, 16)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}

// invalidateOutletCaches invalidates all menu caches for one outlet
func (r *MenuRepository) invalidateOutletCaches(tenantID, outletID string) {
	r.invalidatePattern(context.Background(), fmt.Sprintf("menu:*:%s:%s*", tenantID, outletID))
}

// Outlet Operations

// CreateOutlet creates a new outlet
func (r *MenuRepository) CreateOutlet(tenantID string, outlet *models.Outlet) error {
	outlet.TenantID = tenantID
	if outlet.ID == uuid.Nil {
		outlet.ID = uuid.New()
	}
	outlet.CreatedAt = time.Now()
	outlet.UpdatedAt = time.Now()
	return r.db.Create(outlet).Error
}

// GetOutlets retrieves outlets with pagination
func (r *MenuRepository) GetOutlets(tenantID string, page, limit int) ([]models.Outlet, int64, error) {
	var outlets []models.Outlet
	var total int64

	query := r.db.Model(&models.Outlet{}).Where("tenant_id = ?", tenantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&outlets).Error; err != nil {
		return nil, 0, err
	}
	return outlets, total, nil
}

// GetOutletByID retrieves an outlet by ID
func (r *MenuRepository) GetOutletByID(tenantID string, outletID uuid.UUID) (*models.Outlet, error) {
	var outlet models.Outlet
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, outletID).First(&outlet).Error; err != nil {
		return nil, err
	}
	return &outlet, nil
}

// UpdateOutlet updates an outlet
func (r *MenuRepository) UpdateOutlet(tenantID string, outletID uuid.UUID, updates *models.Outlet) error {
	updates.UpdatedAt = time.Now()
	return r.db.Model(&models.Outlet{}).
		Where("tenant_id = ? AND id = ?", tenantID, outletID).
		Updates(updates).Error
}

// DeleteOutlet soft deletes an outlet
func (r *MenuRepository) DeleteOutlet(tenantID string, outletID uuid.UUID) error {
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, outletID).
		Delete(&models.Outlet{}).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, outletID.String())
	}
	return err
}

// OutletExists reports whether an outlet belongs to the tenant
func (r *MenuRepository) OutletExists(tenantID, outletID string) (bool, error) {
	id, err := uuid.Parse(outletID)
	if err != nil {
		return false, nil
	}
	var count int64
	err = r.db.Model(&models.Outlet{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error
	return count > 0, err
}

// Category Operations

// ListCategories retrieves all categories of an outlet with caching
func (r *MenuRepository) ListCategories(tenantID, outletID string) ([]models.Category, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("menu:categories:%s:%s", tenantID, outletID)

	var categories []models.Category
	if r.cacheGet(ctx, cacheKey, &categories) {
		return categories, nil
	}

	err := r.db.Where("tenant_id = ? AND outlet_id = ?", tenantID, outletID).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, cacheKey, categories, CategoryCacheTTL)
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (r *MenuRepository) GetCategoryByID(tenantID string, categoryID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, categoryID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a new category
func (r *MenuRepository) CreateCategory(tenantID string, category *models.Category) error {
	category.TenantID = tenantID
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	err := r.db.Create(category).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, category.OutletID)
	}
	return err
}

// UpdateCategory updates a category
func (r *MenuRepository) UpdateCategory(tenantID string, categoryID uuid.UUID, updates *models.Category) error {
	updates.UpdatedAt = time.Now()
	err := r.db.Model(&models.Category{}).
		Where("tenant_id = ? AND id = ?", tenantID, categoryID).
		Updates(updates).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, updates.OutletID)
	}
	return err
}

// DeleteCategory soft deletes a category
func (r *MenuRepository) DeleteCategory(tenantID string, categoryID uuid.UUID, outletID string) error {
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, categoryID).
		Delete(&models.Category{}).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, outletID)
	}
	return err
}

// CountItemsByCategory returns how many items reference a category,
// used to block deletion of a category that is still in use.
func (r *MenuRepository) CountItemsByCategory(tenantID string, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.FoodItem{}).
		Where("tenant_id = ? AND category_id = ?", tenantID, categoryID).
		Count(&count).Error
	return count, err
}

// Food Item Operations

// ListItems retrieves all food items of an outlet
func (r *MenuRepository) ListItems(tenantID, outletID string) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := r.db.Where("tenant_id = ? AND outlet_id = ?", tenantID, outletID).
		Order("display_order ASC, name ASC").
		Find(&items).Error
	return items, err
}

// GetItems retrieves food items with filters and pagination
func (r *MenuRepository) GetItems(tenantID, outletID string, categoryID *string, search *string, page, limit int) ([]models.FoodItem, int64, error) {
	var items []models.FoodItem
	var total int64

	query := r.db.Model(&models.FoodItem{}).
		Where("tenant_id = ? AND outlet_id = ?", tenantID, outletID)
	if categoryID != nil && *categoryID != "" {
		query = query.Where("category_id = ?", *categoryID)
	}
	if search != nil && *search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+*search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("display_order ASC, name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetItemByID retrieves a food item by ID with caching
func (r *MenuRepository) GetItemByID(tenantID string, itemID uuid.UUID) (*models.FoodItem, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("menu:item:%s:%s", tenantID, itemID.String())

	var item models.FoodItem
	if r.cacheGet(ctx, cacheKey, &item) {
		return &item, nil
	}

	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, itemID).First(&item).Error; err != nil {
		return nil, err
	}

	r.cacheSet(ctx, cacheKey, item, EntityCacheTTL)
	return &item, nil
}

// GetItemsByIDs retrieves multiple food items in a single query
func (r *MenuRepository) GetItemsByIDs(tenantID string, itemIDs []uuid.UUID) ([]models.FoodItem, error) {
	if len(itemIDs) == 0 {
		return []models.FoodItem{}, nil
	}
	var items []models.FoodItem
	err := r.db.Where("tenant_id = ? AND id IN ?", tenantID, itemIDs).Find(&items).Error
	return items, err
}

// CreateItem creates a new food item
func (r *MenuRepository) CreateItem(tenantID string, item *models.FoodItem) error {
	item.TenantID = tenantID
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	err := r.db.Create(item).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, item.OutletID)
	}
	return err
}

// UpdateItem updates a food item and invalidates its caches
func (r *MenuRepository) UpdateItem(tenantID string, itemID uuid.UUID, updates *models.FoodItem) error {
	updates.UpdatedAt = time.Now()
	err := r.db.Model(&models.FoodItem{}).
		Where("tenant_id = ? AND id = ?", tenantID, itemID).
		Updates(updates).Error
	if err == nil {
		ctx := context.Background()
		if r.redis != nil {
			r.redis.Del(ctx, fmt.Sprintf("menu:item:%s:%s", tenantID, itemID.String()))
		}
		r.invalidateOutletCaches(tenantID, updates.OutletID)
	}
	return err
}

// DeleteItem soft deletes a food item
func (r *MenuRepository) DeleteItem(tenantID string, itemID uuid.UUID, outletID string) error {
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, itemID).
		Delete(&models.FoodItem{}).Error
	if err == nil {
		if r.redis != nil {
			r.redis.Del(context.Background(), fmt.Sprintf("menu:item:%s:%s", tenantID, itemID.String()))
		}
		r.invalidateOutletCaches(tenantID, outletID)
	}
	return err
}

// IncrementItemViewCount bumps the view counter without touching updated_at
func (r *MenuRepository) IncrementItemViewCount(tenantID string, itemID uuid.UUID) error {
	return r.db.Model(&models.FoodItem{}).
		Where("tenant_id = ? AND id = ?", tenantID, itemID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Add-On Operations

// ListAddOns retrieves all add-ons of an outlet
func (r *MenuRepository) ListAddOns(tenantID, outletID string) ([]models.AddOn, error) {
	var addOns []models.AddOn
	err := r.db.Where("tenant_id = ? AND outlet_id = ?", tenantID, outletID).
		Order("display_order ASC, name ASC").
		Find(&addOns).Error
	return addOns, err
}

// GetAddOnByID retrieves an add-on by ID
func (r *MenuRepository) GetAddOnByID(tenantID string, addOnID uuid.UUID) (*models.AddOn, error) {
	var addOn models.AddOn
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, addOnID).First(&addOn).Error; err != nil {
		return nil, err
	}
	return &addOn, nil
}

// CreateAddOn creates a new add-on
func (r *MenuRepository) CreateAddOn(tenantID string, addOn *models.AddOn) error {
	addOn.TenantID = tenantID
	if addOn.ID == uuid.Nil {
		addOn.ID = uuid.New()
	}
	addOn.CreatedAt = time.Now()
	addOn.UpdatedAt = time.Now()

	err := r.db.Create(addOn).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, addOn.OutletID)
	}
	return err
}

// UpdateAddOn updates an add-on
func (r *MenuRepository) UpdateAddOn(tenantID string, addOnID uuid.UUID, updates *models.AddOn) error {
	updates.UpdatedAt = time.Now()
	err := r.db.Model(&models.AddOn{}).
		Where("tenant_id = ? AND id = ?", tenantID, addOnID).
		Updates(updates).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, updates.OutletID)
	}
	return err
}

// DeleteAddOn soft deletes an add-on
func (r *MenuRepository) DeleteAddOn(tenantID string, addOnID uuid.UUID, outletID string) error {
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, addOnID).
		Delete(&models.AddOn{}).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, outletID)
	}
	return err
}

// Combo Operations

// ListCombos retrieves all combos of an outlet
func (r *MenuRepository) ListCombos(tenantID, outletID string) ([]models.Combo, error) {
	var combos []models.Combo
	err := r.db.Where("tenant_id = ? AND outlet_id = ?", tenantID, outletID).
		Order("name ASC").
		Find(&combos).Error
	return combos, err
}

// GetComboByID retrieves a combo by ID
func (r *MenuRepository) GetComboByID(tenantID string, comboID uuid.UUID) (*models.Combo, error) {
	var combo models.Combo
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, comboID).First(&combo).Error; err != nil {
		return nil, err
	}
	return &combo, nil
}

// CreateCombo creates a new combo
func (r *MenuRepository) CreateCombo(tenantID string, combo *models.Combo) error {
	combo.TenantID = tenantID
	if combo.ID == uuid.Nil {
		combo.ID = uuid.New()
	}
	combo.CreatedAt = time.Now()
	combo.UpdatedAt = time.Now()

	err := r.db.Create(combo).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, combo.OutletID)
	}
	return err
}

// UpdateCombo updates a combo
func (r *MenuRepository) UpdateCombo(tenantID string, comboID uuid.UUID, updates *models.Combo) error {
	updates.UpdatedAt = time.Now()
	err := r.db.Model(&models.Combo{}).
		Where("tenant_id = ? AND id = ?", tenantID, comboID).
		Updates(updates).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, updates.OutletID)
	}
	return err
}

// DeleteCombo soft deletes a combo
func (r *MenuRepository) DeleteCombo(tenantID string, comboID uuid.UUID, outletID string) error {
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, comboID).
		Delete(&models.Combo{}).Error
	if err == nil {
		r.invalidateOutletCaches(tenantID, outletID)
	}
	return err
}
