package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemType classifies a food item
type ItemType string

const (
	ItemTypeFood     ItemType = "FOOD"
	ItemTypeBeverage ItemType = "BEVERAGE"
)

// DietType classifies the dietary category of a food item
type DietType string

const (
	DietTypeVeg    DietType = "VEG"
	DietTypeNonVeg DietType = "NON_VEG"
)

// PriceMode distinguishes fixed-price items from variable-priced ones.
// When the mode is not FIXED the price column is informational only.
type PriceMode string

const (
	PriceModeFixed    PriceMode = "FIXED"
	PriceModeVariable PriceMode = "VARIABLE"
)

// ComboType is the tag of the Combo variant. An OFFER combo references
// existing food items and derives its price; a REGULAR combo carries
// free-text line items with a directly-set price. A combo never holds
// the other variant's payload.
type ComboType string

const (
	ComboTypeOffer   ComboType = "OFFER"
	ComboTypeRegular ComboType = "REGULAR"
)

// JSON type for PostgreSQL JSONB (object/map)
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// StringArray type for PostgreSQL JSONB (array of strings)
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = make(StringArray, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// ItemVariant is a size/price variant of a food item
type ItemVariant struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ItemVariantList is stored as JSONB on the food item row
type ItemVariantList []ItemVariant

func (v ItemVariantList) Value() (driver.Value, error) {
	return json.Marshal(v)
}

func (v *ItemVariantList) Scan(value interface{}) error {
	if value == nil {
		*v = make(ItemVariantList, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, v)
}

// Outlet represents a single storefront. Outlets are the scoping
// boundary for all menu entities; the brand is ownership context only.
type Outlet struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID  string          `json:"tenantId" gorm:"column:tenant_id;not null;index"`
	BrandID   *string         `json:"brandId,omitempty" gorm:"column:brand_id;index"`
	Name      string          `json:"name" gorm:"not null"`
	Address   *string         `json:"address,omitempty"`
	IsActive  *bool           `json:"isActive" gorm:"column:is_active;default:true"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// Category represents a menu category within an outlet
type Category struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID     string          `json:"tenantId" gorm:"column:tenant_id;not null;index:idx_categories_tenant_outlet"`
	OutletID     string          `json:"outletId" gorm:"column:outlet_id;not null;index:idx_categories_tenant_outlet;index:idx_categories_outlet_slug,unique"`
	Name         string          `json:"name" gorm:"not null"`
	Slug         string          `json:"slug" gorm:"not null;index:idx_categories_outlet_slug,unique"`
	Description  *string         `json:"description,omitempty"`
	ImageURL     *string         `json:"imageUrl,omitempty" gorm:"column:image_url"`
	DisplayOrder int             `json:"displayOrder" gorm:"column:display_order;not null;default:0"`
	IsActive     *bool           `json:"isActive" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// FoodItem represents a single sellable menu item.
// IsActive is the publishing flag, IsAvailable the real-time stock flag;
// an item is never available while inactive.
type FoodItem struct {
	ID           uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID     string           `json:"tenantId" gorm:"column:tenant_id;not null;index:idx_items_tenant_outlet"`
	OutletID     string           `json:"outletId" gorm:"column:outlet_id;not null;index:idx_items_tenant_outlet"`
	CategoryID   *uuid.UUID       `json:"categoryId,omitempty" gorm:"column:category_id;type:uuid;index"`
	Name         string           `json:"name" gorm:"not null"`
	Description  *string          `json:"description,omitempty"`
	ItemType     ItemType         `json:"itemType" gorm:"column:item_type;not null;default:'FOOD'"`
	DietType     DietType         `json:"dietType" gorm:"column:diet_type;not null;default:'VEG'"`
	Price        float64          `json:"price" gorm:"not null;default:0"`
	PriceMode    PriceMode        `json:"priceMode" gorm:"column:price_mode;not null;default:'FIXED'"`
	TaxPercent   float64          `json:"taxPercent" gorm:"column:tax_percent;not null;default:0"`
	IsActive     *bool            `json:"isActive" gorm:"column:is_active;default:true"`
	IsAvailable  *bool            `json:"isAvailable" gorm:"column:is_available;default:true"`
	AddOnIDs     *StringArray     `json:"addOnIds,omitempty" gorm:"column:add_on_ids;type:jsonb"`
	Variants     *ItemVariantList `json:"variants,omitempty" gorm:"type:jsonb"`
	ImageURL     *string          `json:"imageUrl,omitempty" gorm:"column:image_url"`
	DisplayOrder int              `json:"displayOrder" gorm:"column:display_order;not null;default:0"`
	ViewCount    int              `json:"viewCount" gorm:"column:view_count;not null;default:0"`
	OrderCount   int              `json:"orderCount" gorm:"column:order_count;not null;default:0"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	DeletedAt    *gorm.DeletedAt  `json:"deletedAt,omitempty" gorm:"index"`
}

// AddOn represents an optional extra attachable to food items
type AddOn struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID     string          `json:"tenantId" gorm:"column:tenant_id;not null;index:idx_addons_tenant_outlet"`
	OutletID     string          `json:"outletId" gorm:"column:outlet_id;not null;index:idx_addons_tenant_outlet"`
	Name         string          `json:"name" gorm:"not null"`
	Price        float64         `json:"price" gorm:"not null;default:0"`
	CategoryTag  *string         `json:"categoryTag,omitempty" gorm:"column:category_tag"`
	IsActive     *bool           `json:"isActive" gorm:"column:is_active;default:true"`
	DisplayOrder int             `json:"displayOrder" gorm:"column:display_order;not null;default:0"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// ComboItemRef is one referenced food item line in an offer combo
type ComboItemRef struct {
	FoodItemID string `json:"foodItemId"`
	Quantity   int    `json:"quantity"`
}

// ComboLineItem is one free-text line in a regular combo
type ComboLineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OfferComboDetails is the payload of an OFFER combo
type OfferComboDetails struct {
	Items           []ComboItemRef `json:"items"`
	DiscountPercent float64        `json:"discountPercent"`
	ManualPrice     *float64       `json:"manualPrice,omitempty"`
}

func (d OfferComboDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *OfferComboDetails) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, d)
}

// RegularComboDetails is the payload of a REGULAR combo
type RegularComboDetails struct {
	LineItems []ComboLineItem `json:"lineItems"`
}

func (d RegularComboDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *RegularComboDetails) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, d)
}

// Combo represents a bundled menu offering. Type is the variant tag;
// exactly one of Offer/Regular is populated, matching the tag.
type Combo struct {
	ID            uuid.UUID            `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID      string               `json:"tenantId" gorm:"column:tenant_id;not null;index:idx_combos_tenant_outlet"`
	OutletID      string               `json:"outletId" gorm:"column:outlet_id;not null;index:idx_combos_tenant_outlet"`
	Name          string               `json:"name" gorm:"not null"`
	Description   *string              `json:"description,omitempty"`
	Type          ComboType            `json:"type" gorm:"not null"`
	Offer         *OfferComboDetails   `json:"offer,omitempty" gorm:"type:jsonb"`
	Regular       *RegularComboDetails `json:"regular,omitempty" gorm:"type:jsonb"`
	OriginalPrice float64              `json:"originalPrice" gorm:"column:original_price;not null;default:0"`
	Price         float64              `json:"price" gorm:"not null;default:0"`
	IsActive      *bool                `json:"isActive" gorm:"column:is_active;default:true"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	DeletedAt     *gorm.DeletedAt      `json:"deletedAt,omitempty" gorm:"index"`
}

// NewOfferCombo builds an OFFER combo, leaving the REGULAR payload empty.
func NewOfferCombo(tenantID, outletID, name string, details OfferComboDetails) *Combo {
	return &Combo{
		TenantID: tenantID,
		OutletID: outletID,
		Name:     name,
		Type:     ComboTypeOffer,
		Offer:    &details,
	}
}

// NewRegularCombo builds a REGULAR combo, leaving the OFFER payload empty.
func NewRegularCombo(tenantID, outletID, name string, details RegularComboDetails) *Combo {
	return &Combo{
		TenantID: tenantID,
		OutletID: outletID,
		Name:     name,
		Type:     ComboTypeRegular,
		Regular:  &details,
	}
}

// TableName returns the table name for the Outlet model
func (Outlet) TableName() string {
	return "outlets"
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// TableName returns the table name for the FoodItem model
func (FoodItem) TableName() string {
	return "food_items"
}

// TableName returns the table name for the AddOn model
func (AddOn) TableName() string {
	return "add_ons"
}

// TableName returns the table name for the Combo model
func (Combo) TableName() string {
	return "combos"
}
