package models

// CategoryHandling controls whether a same-named category in a target
// outlet is reused or always freshly created.
type CategoryHandling string

const (
	CategoryHandlingMapByName CategoryHandling = "map_by_name"
	CategoryHandlingCreateNew CategoryHandling = "create_new"
)

// AvailabilityMode controls the availability flag of synced items
type AvailabilityMode string

const (
	AvailabilityPreserve       AvailabilityMode = "preserve"
	AvailabilityAllAvailable   AvailabilityMode = "all_available"
	AvailabilityAllUnavailable AvailabilityMode = "all_unavailable"
)

// TargetStatus is the overall outcome for one target outlet
type TargetStatus string

const (
	TargetStatusSuccess TargetStatus = "success"
	TargetStatusPartial TargetStatus = "partial"
	TargetStatusFailed  TargetStatus = "failed"
)

// SyncOptions controls a cross-outlet sync run
type SyncOptions struct {
	SyncCategories         bool              `json:"syncCategories"`
	SyncAddOns             bool              `json:"syncAddons"`
	SyncItems              bool              `json:"syncItems"`
	SyncCombos             bool              `json:"syncCombos"`
	DuplicateStrategy      DuplicateStrategy `json:"duplicateStrategy"`
	CategoryHandling       CategoryHandling  `json:"categoryHandling"`
	PriceAdjustmentPercent float64           `json:"priceAdjustmentPercent,omitempty"`
	AvailabilityMode       AvailabilityMode  `json:"availabilityMode,omitempty"`
}

// SyncRequest is the caller-facing sync execute payload
type SyncRequest struct {
	SourceOutletID  string      `json:"sourceOutletId" binding:"required"`
	TargetOutletIDs []string    `json:"targetOutletIds" binding:"required,min=1"`
	Options         SyncOptions `json:"options"`
}

// TargetSyncResult is the independent outcome for one target outlet
type TargetSyncResult struct {
	OutletID         string       `json:"outletId"`
	Status           TargetStatus `json:"status"`
	CategoriesSynced int          `json:"categoriesSynced"`
	AddOnsSynced     int          `json:"addonsSynced"`
	ItemsSynced      int          `json:"itemsSynced"`
	Errors           []string     `json:"errors,omitempty"`
	Message          *string      `json:"message,omitempty"`
}

// SyncResult is the job-level outcome. Success is true only when every
// target finished without errors.
type SyncResult struct {
	Success     bool               `json:"success"`
	Results     []TargetSyncResult `json:"results"`
	TotalTimeMs int64              `json:"totalTimeMs"`
}

// SyncPreviewOptions are the policy knobs the preview shares with the executor
type SyncPreviewOptions struct {
	DuplicateStrategy DuplicateStrategy `json:"duplicateStrategy"`
	CategoryHandling  CategoryHandling  `json:"categoryHandling"`
}

// SyncPreviewRequest is the caller-facing preview payload
type SyncPreviewRequest struct {
	SourceOutletID  string             `json:"sourceOutletId" binding:"required"`
	TargetOutletIDs []string           `json:"targetOutletIds" binding:"required,min=1"`
	Options         SyncPreviewOptions `json:"options"`
}

// EntityCounts summarizes the source outlet's menu graph
type EntityCounts struct {
	Categories int `json:"categories"`
	Items      int `json:"items"`
	AddOns     int `json:"addons"`
	Combos     int `json:"combos"`
}

// KindForecast estimates creates/updates for one entity kind in one target
type KindForecast struct {
	Total     int `json:"total"`
	Conflicts int `json:"conflicts"`
	Creates   int `json:"creates"`
	Updates   int `json:"updates"`
}

// TargetForecast is the non-mutating conflict forecast for one target
type TargetForecast struct {
	OutletID          string       `json:"outletId"`
	CategoryConflicts []string     `json:"categoryConflicts"`
	ItemConflicts     []string     `json:"itemConflicts"`
	Categories        KindForecast `json:"categories"`
	Items             KindForecast `json:"items"`
	Error             *string      `json:"error,omitempty"`
}

// SyncPreview is the full forecast for a planned sync
type SyncPreview struct {
	SourceOutletID string           `json:"sourceOutletId"`
	SourceSummary  EntityCounts     `json:"sourceSummary"`
	Targets        []TargetForecast `json:"perTarget"`
}
