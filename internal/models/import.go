package models

// DuplicateStrategy is the policy applied when an incoming record
// collides by key with an existing entity.
type DuplicateStrategy string

const (
	DuplicateSkip   DuplicateStrategy = "skip"
	DuplicateUpdate DuplicateStrategy = "update"
	DuplicateCreate DuplicateStrategy = "create"
)

// RowStatus is the outcome assigned to one import record
type RowStatus string

const (
	RowStatusCreated RowStatus = "created"
	RowStatusUpdated RowStatus = "updated"
	RowStatusSkipped RowStatus = "skipped"
	RowStatusFailed  RowStatus = "failed"
)

// ImportOptions controls a single import run
type ImportOptions struct {
	DryRun                  bool              `json:"dryRun"`
	CreateMissingCategories bool              `json:"createMissingCategories"`
	OnDuplicate             DuplicateStrategy `json:"onDuplicate"`
}

// ImportComboItemRef is a food item reference inside an imported combo.
// Name is used for best-effort degradation when the id does not resolve.
type ImportComboItemRef struct {
	FoodItemID string `json:"foodItemId"`
	Name       string `json:"name,omitempty"`
	Quantity   int    `json:"quantity"`
}

// ImportComboSpec carries the combo portion of an import record
type ImportComboSpec struct {
	Items           []ImportComboItemRef `json:"items,omitempty"`
	LineItems       []ComboLineItem      `json:"lineItems,omitempty"`
	DiscountPercent float64              `json:"discountPercent,omitempty"`
	ManualPrice     *float64             `json:"manualPrice,omitempty"`
}

// ImportRecord is one heterogeneous unit of an import batch: either a
// plain food item or a combo, discriminated by IsCombo.
type ImportRecord struct {
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Price        float64         `json:"price"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
	ItemType     *ItemType       `json:"itemType,omitempty"`
	DietType     *DietType       `json:"dietType,omitempty"`
	PriceMode    *PriceMode      `json:"priceMode,omitempty"`
	TaxPercent   *float64        `json:"taxPercent,omitempty"`
	AddOnIDs     []string        `json:"addOnIds,omitempty"`
	Variants     ItemVariantList `json:"variants,omitempty"`
	DisplayOrder *int            `json:"displayOrder,omitempty"`
	IsCombo      bool            `json:"isCombo,omitempty"`
	Combo        *ImportComboSpec `json:"combo,omitempty"`
}

// ImportMenuRequest is the caller-facing JSON import payload
type ImportMenuRequest struct {
	Records []ImportRecord `json:"records" binding:"required,min=1"`
	Options ImportOptions  `json:"options"`
}

// ImportRowError describes the failure of one record
type ImportRowError struct {
	Index   int    `json:"index"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// RowResult is the per-record outcome ledger entry
type RowResult struct {
	Index    int       `json:"index"`
	Name     string    `json:"name,omitempty"`
	Status   RowStatus `json:"status"`
	EntityID *string   `json:"entityId,omitempty"`
	Error    *string   `json:"error,omitempty"`
}

// ImportSummary aggregates an import run. Per-record failures are
// reported here in-band; the operation itself still succeeds.
type ImportSummary struct {
	TotalRecords int              `json:"totalRecords"`
	Created      int              `json:"created"`
	Updated      int              `json:"updated"`
	Skipped      int              `json:"skipped"`
	Failed       int              `json:"failed"`
	DryRun       bool             `json:"dryRun"`
	Errors       []ImportRowError `json:"errors"`
	Results      []RowResult      `json:"results"`
	ProcessingMs int64            `json:"processingMs"`
}

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity  string                 `json:"entity"`
	Version string                 `json:"version"`
	Columns []ImportTemplateColumn `json:"columns"`
}

// MenuImportColumns returns the column definitions for menu import
func MenuImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "name", Description: "Item name", Required: true, Type: "string", Example: "Masala Chai"},
		{Name: "price", Description: "Item price", Required: true, Type: "number", Example: "20"},
		{Name: "categoryId", Description: "Category UUID (use this OR categoryName)", Required: false, Type: "uuid", Example: ""},
		{Name: "categoryName", Description: "Category name - auto-creates when createMissingCategories is set", Required: false, Type: "string", Example: "Beverages"},
		{Name: "description", Description: "Item description", Required: false, Type: "string", Example: ""},
		{Name: "itemType", Description: "FOOD or BEVERAGE", Required: false, Type: "string", Example: "BEVERAGE"},
		{Name: "dietType", Description: "VEG or NON_VEG", Required: false, Type: "string", Example: "VEG"},
		{Name: "priceMode", Description: "FIXED or VARIABLE", Required: false, Type: "string", Example: "FIXED"},
		{Name: "taxPercent", Description: "Tax percentage", Required: false, Type: "number", Example: "5"},
		{Name: "displayOrder", Description: "Display position", Required: false, Type: "number", Example: ""},
	}
}

// MenuImportTemplate returns the template definition for menu items
func MenuImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "menu-items",
		Version: "1.0",
		Columns: MenuImportColumns(),
	}
}
