package models

// CreateOutletRequest represents a request to create an outlet
type CreateOutletRequest struct {
	Name    string  `json:"name" binding:"required"`
	BrandID *string `json:"brandId,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// CreateFoodItemRequest represents a request to create a food item
type CreateFoodItemRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  *string         `json:"description,omitempty"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	ItemType     *ItemType       `json:"itemType,omitempty"`
	DietType     *DietType       `json:"dietType,omitempty"`
	Price        float64         `json:"price"`
	PriceMode    *PriceMode      `json:"priceMode,omitempty"`
	TaxPercent   *float64        `json:"taxPercent,omitempty"`
	AddOnIDs     []string        `json:"addOnIds,omitempty"`
	Variants     ItemVariantList `json:"variants,omitempty"`
	ImageURL     *string         `json:"imageUrl,omitempty"`
	DisplayOrder *int            `json:"displayOrder,omitempty"`
}

// UpdateFoodItemRequest represents a request to update a food item
type UpdateFoodItemRequest struct {
	Name         *string         `json:"name,omitempty"`
	Description  *string         `json:"description,omitempty"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	ItemType     *ItemType       `json:"itemType,omitempty"`
	DietType     *DietType       `json:"dietType,omitempty"`
	Price        *float64        `json:"price,omitempty"`
	PriceMode    *PriceMode      `json:"priceMode,omitempty"`
	TaxPercent   *float64        `json:"taxPercent,omitempty"`
	AddOnIDs     []string        `json:"addOnIds,omitempty"`
	Variants     ItemVariantList `json:"variants,omitempty"`
	ImageURL     *string         `json:"imageUrl,omitempty"`
	DisplayOrder *int            `json:"displayOrder,omitempty"`
	IsActive     *bool           `json:"isActive,omitempty"`
	IsAvailable  *bool           `json:"isAvailable,omitempty"`
}

// CreateAddOnRequest represents a request to create an add-on
type CreateAddOnRequest struct {
	Name         string   `json:"name" binding:"required"`
	Price        float64  `json:"price"`
	CategoryTag  *string  `json:"categoryTag,omitempty"`
	DisplayOrder *int     `json:"displayOrder,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// UpdateAddOnRequest represents a request to update an add-on
type UpdateAddOnRequest struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	CategoryTag  *string  `json:"categoryTag,omitempty"`
	DisplayOrder *int     `json:"displayOrder,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// CreateComboRequest represents a request to create a combo.
// Offer combos reference food items and derive pricing; regular combos
// carry custom line items with a directly-set price.
type CreateComboRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     *string         `json:"description,omitempty"`
	Type            ComboType       `json:"type" binding:"required"`
	Items           []ComboItemRef  `json:"items,omitempty"`
	DiscountPercent float64         `json:"discountPercent,omitempty"`
	ManualPrice     *float64        `json:"manualPrice,omitempty"`
	LineItems       []ComboLineItem `json:"lineItems,omitempty"`
	Price           *float64        `json:"price,omitempty"`
}

// PaginationInfo carries list paging metadata
type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}
