package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"menu-service/internal/models"
)

// Importer ingests a batch of heterogeneous menu records (plain items
// or combos) into one outlet. Every record is processed behind its own
// failure boundary; a bad record is reported in the ledger and never
// aborts the batch.
type Importer struct {
	store Store
	log   *logrus.Entry
}

// NewImporter creates an import pipeline over the given store
func NewImporter(store Store, logger *logrus.Logger) *Importer {
	return &Importer{
		store: store,
		log:   logger.WithField("component", "menu-importer"),
	}
}

// Run processes records in input order and returns the outcome summary.
// With DryRun set, all decisions (including category auto-creation
// bookkeeping) are computed against the working set but nothing is
// written; created entities get synthetic ids so the ledger keeps the
// same shape as a live run.
func (im *Importer) Run(tenantID, outletID string, records []models.ImportRecord, opts models.ImportOptions) (*models.ImportSummary, error) {
	start := time.Now()

	if opts.OnDuplicate == "" {
		opts.OnDuplicate = models.DuplicateSkip
	}

	exists, err := im.store.OutletExists(tenantID, outletID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOutletNotFound
	}

	idx, err := BuildIndex(im.store, tenantID, outletID)
	if err != nil {
		return nil, err
	}

	summary := &models.ImportSummary{
		TotalRecords: len(records),
		DryRun:       opts.DryRun,
		Errors:       make([]models.ImportRowError, 0),
		Results:      make([]models.RowResult, 0, len(records)),
	}

	for i, rec := range records {
		status, entityID, recErr := im.processRecord(tenantID, outletID, idx, rec, opts)

		result := models.RowResult{
			Index:    i,
			Name:     rec.Name,
			Status:   status,
			EntityID: entityID,
		}
		switch status {
		case models.RowStatusCreated:
			summary.Created++
		case models.RowStatusUpdated:
			summary.Updated++
		case models.RowStatusSkipped:
			summary.Skipped++
		case models.RowStatusFailed:
			summary.Failed++
			msg := recErr.Error()
			result.Error = &msg
			summary.Errors = append(summary.Errors, models.ImportRowError{
				Index:   i,
				Name:    rec.Name,
				Message: msg,
			})
		}
		summary.Results = append(summary.Results, result)
	}

	summary.ProcessingMs = time.Since(start).Milliseconds()

	im.log.WithFields(logrus.Fields{
		"tenantId": tenantID,
		"outletId": outletID,
		"records":  summary.TotalRecords,
		"created":  summary.Created,
		"updated":  summary.Updated,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
		"dryRun":   opts.DryRun,
	}).Info("Menu import completed")

	return summary, nil
}

// processRecord is the per-record failure boundary. Panics are
// converted into a failed status for this record only.
func (im *Importer) processRecord(tenantID, outletID string, idx *Index, rec models.ImportRecord, opts models.ImportOptions) (status models.RowStatus, entityID *string, err error) {
	defer func() {
		if r := recover(); r != nil {
			status = models.RowStatusFailed
			entityID = nil
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	if rec.IsCombo {
		return im.importCombo(tenantID, outletID, idx, rec, opts)
	}
	return im.importItem(tenantID, outletID, idx, rec, opts)
}

func (im *Importer) importCombo(tenantID, outletID string, idx *Index, rec models.ImportRecord, opts models.ImportOptions) (models.RowStatus, *string, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return models.RowStatusFailed, nil, fmt.Errorf("combo name is required")
	}
	if rec.Price < 0 {
		return models.RowStatusFailed, nil, fmt.Errorf("combo price must be non-negative")
	}
	if rec.Combo == nil {
		return models.RowStatusFailed, nil, fmt.Errorf("combo details are required")
	}

	allResolved := len(rec.Combo.Items) > 0
	for _, ref := range rec.Combo.Items {
		if _, ok := idx.ItemByID(ref.FoodItemID); !ok {
			allResolved = false
			break
		}
	}

	var combo *models.Combo
	if allResolved {
		refs := make([]models.ComboItemRef, 0, len(rec.Combo.Items))
		for _, ref := range rec.Combo.Items {
			refs = append(refs, models.ComboItemRef{FoodItemID: ref.FoodItemID, Quantity: ref.Quantity})
		}
		pricing := PriceCombo(func(id string) (float64, bool) {
			item, ok := idx.ItemByID(id)
			if !ok {
				return 0, false
			}
			return item.Price, true
		}, refs, rec.Combo.DiscountPercent)

		combo = models.NewOfferCombo(tenantID, outletID, rec.Name, models.OfferComboDetails{
			Items:           refs,
			DiscountPercent: rec.Combo.DiscountPercent,
			ManualPrice:     rec.Combo.ManualPrice,
		})
		combo.OriginalPrice = pricing.OriginalPrice
		combo.Price = EffectiveComboPrice(pricing, rec.Combo.ManualPrice)
	} else {
		// Degrade to a regular combo: use supplied custom lines, or
		// best-effort convert the item references into lines.
		lines := rec.Combo.LineItems
		if len(lines) == 0 {
			for _, ref := range rec.Combo.Items {
				name := ref.Name
				if item, ok := idx.ItemByID(ref.FoodItemID); ok {
					name = item.Name
				}
				if strings.TrimSpace(name) == "" {
					continue
				}
				qty := ref.Quantity
				if qty < 1 {
					qty = 1
				}
				lines = append(lines, models.ComboLineItem{Name: name, Quantity: qty})
			}
		}
		if len(lines) == 0 {
			return models.RowStatusFailed, nil, fmt.Errorf("combo has no resolvable items or custom line items")
		}

		combo = models.NewRegularCombo(tenantID, outletID, rec.Name, models.RegularComboDetails{LineItems: lines})
		combo.OriginalPrice = round2(rec.Price)
		combo.Price = round2(rec.Price)
	}

	combo.ID = uuid.New()
	combo.Description = rec.Description

	if !opts.DryRun {
		if err := im.store.CreateCombo(tenantID, combo); err != nil {
			return models.RowStatusFailed, nil, err
		}
	}

	id := combo.ID.String()
	return models.RowStatusCreated, &id, nil
}

func (im *Importer) importItem(tenantID, outletID string, idx *Index, rec models.ImportRecord, opts models.ImportOptions) (models.RowStatus, *string, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return models.RowStatusFailed, nil, fmt.Errorf("item name is required")
	}
	if rec.Price < 0 {
		return models.RowStatusFailed, nil, fmt.Errorf("item price must be non-negative")
	}

	categoryID, err := im.resolveCategory(tenantID, outletID, idx, rec, opts)
	if err != nil {
		return models.RowStatusFailed, nil, err
	}

	if existingID, found := idx.ResolveItem(rec.Name, rec.Price); found {
		switch opts.OnDuplicate {
		case models.DuplicateSkip:
			id := existingID.String()
			return models.RowStatusSkipped, &id, nil
		case models.DuplicateUpdate:
			item := im.itemFromRecord(tenantID, outletID, rec, categoryID)
			item.ID = existingID
			if !opts.DryRun {
				if err := im.store.UpdateItem(tenantID, existingID, item); err != nil {
					return models.RowStatusFailed, nil, err
				}
			}
			idx.RegisterItem(item)
			id := existingID.String()
			return models.RowStatusUpdated, &id, nil
		}
		// create policy falls through: duplicate on purpose
	}

	item := im.itemFromRecord(tenantID, outletID, rec, categoryID)
	item.ID = uuid.New()
	if !opts.DryRun {
		if err := im.store.CreateItem(tenantID, item); err != nil {
			return models.RowStatusFailed, nil, err
		}
	}
	idx.RegisterItem(item)

	id := item.ID.String()
	return models.RowStatusCreated, &id, nil
}

// resolveCategory resolves the record's category reference by id or
// name, auto-creating a missing named category when the options allow.
// A record with no category reference stays uncategorized.
func (im *Importer) resolveCategory(tenantID, outletID string, idx *Index, rec models.ImportRecord, opts models.ImportOptions) (*uuid.UUID, error) {
	if rec.CategoryID != nil && *rec.CategoryID != "" {
		id, err := uuid.Parse(*rec.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category id %q", *rec.CategoryID)
		}
		if !idx.HasCategory(id.String()) {
			return nil, fmt.Errorf("category %s does not belong to this outlet", id)
		}
		return &id, nil
	}

	if rec.CategoryName == nil || strings.TrimSpace(*rec.CategoryName) == "" {
		return nil, nil
	}
	name := strings.TrimSpace(*rec.CategoryName)

	if id, ok := idx.ResolveCategoryByName(name); ok {
		return &id, nil
	}
	// Fall back to the slug key so cosmetic name differences still
	// resolve to the same category.
	if id, ok := idx.ResolveCategory(name); ok {
		return &id, nil
	}

	if !opts.CreateMissingCategories {
		return nil, fmt.Errorf("category %q not found", name)
	}

	active := true
	category := &models.Category{
		ID:           uuid.New(),
		TenantID:     tenantID,
		OutletID:     outletID,
		Name:         name,
		Slug:         idx.NewSlug(name),
		DisplayOrder: idx.NextCategoryOrder(),
		IsActive:     &active,
	}
	if !opts.DryRun {
		if err := im.store.CreateCategory(tenantID, category); err != nil {
			return nil, err
		}
	}
	idx.RegisterCategory(category)
	return &category.ID, nil
}

func (im *Importer) itemFromRecord(tenantID, outletID string, rec models.ImportRecord, categoryID *uuid.UUID) *models.FoodItem {
	itemType := models.ItemTypeFood
	if rec.ItemType != nil {
		itemType = *rec.ItemType
	}
	dietType := models.DietTypeVeg
	if rec.DietType != nil {
		dietType = *rec.DietType
	}
	priceMode := models.PriceModeFixed
	if rec.PriceMode != nil {
		priceMode = *rec.PriceMode
	}
	taxPercent := 0.0
	if rec.TaxPercent != nil {
		taxPercent = *rec.TaxPercent
	}
	displayOrder := 0
	if rec.DisplayOrder != nil {
		displayOrder = *rec.DisplayOrder
	}

	active := true
	available := true
	item := &models.FoodItem{
		TenantID:     tenantID,
		OutletID:     outletID,
		CategoryID:   categoryID,
		Name:         strings.TrimSpace(rec.Name),
		Description:  rec.Description,
		ItemType:     itemType,
		DietType:     dietType,
		Price:        round2(rec.Price),
		PriceMode:    priceMode,
		TaxPercent:   taxPercent,
		IsActive:     &active,
		IsAvailable:  &available,
		DisplayOrder: displayOrder,
	}
	if len(rec.AddOnIDs) > 0 {
		addOns := models.StringArray(rec.AddOnIDs)
		item.AddOnIDs = &addOns
	}
	if len(rec.Variants) > 0 {
		variants := rec.Variants
		item.Variants = &variants
	}
	return item
}
