package models

import "time"

// CategorySnapshot is a portable category with no internal identifiers
type CategorySnapshot struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	DisplayOrder int     `json:"displayOrder"`
	IsActive     bool    `json:"isActive"`
}

// ItemSnapshot is a portable food item; the category and add-on
// references are denormalized to names so the snapshot reads standalone.
type ItemSnapshot struct {
	Name         string          `json:"name"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Description  *string         `json:"description,omitempty"`
	ItemType     ItemType        `json:"itemType"`
	DietType     DietType        `json:"dietType"`
	Price        float64         `json:"price"`
	PriceMode    PriceMode       `json:"priceMode"`
	TaxPercent   float64         `json:"taxPercent"`
	AddOnNames   []string        `json:"addOnNames,omitempty"`
	Variants     ItemVariantList `json:"variants,omitempty"`
	DisplayOrder int             `json:"displayOrder"`
	IsActive     bool            `json:"isActive"`
	IsAvailable  bool            `json:"isAvailable"`
}

// AddOnSnapshot is a portable add-on
type AddOnSnapshot struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CategoryTag  *string `json:"categoryTag,omitempty"`
	DisplayOrder int     `json:"displayOrder"`
	IsActive     bool    `json:"isActive"`
}

// ComboSnapshotLine is one constituent of an exported offer combo,
// referenced by item name rather than id.
type ComboSnapshotLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ComboSnapshot is a portable combo matching its type discriminator
type ComboSnapshot struct {
	Name            string              `json:"name"`
	Description     *string             `json:"description,omitempty"`
	Type            ComboType           `json:"type"`
	Items           []ComboSnapshotLine `json:"items,omitempty"`
	LineItems       []ComboLineItem     `json:"lineItems,omitempty"`
	DiscountPercent *float64            `json:"discountPercent,omitempty"`
	OriginalPrice   float64             `json:"originalPrice"`
	Price           float64             `json:"price"`
	IsActive        bool                `json:"isActive"`
}

// MenuSnapshot is the full denormalized export of one outlet's menu
type MenuSnapshot struct {
	OutletID   string             `json:"outletId"`
	Categories []CategorySnapshot `json:"categories"`
	Items      []ItemSnapshot     `json:"items"`
	AddOns     []AddOnSnapshot    `json:"addons"`
	Combos     []ComboSnapshot    `json:"combos"`
	ExportedAt time.Time          `json:"exportedAt"`
}
