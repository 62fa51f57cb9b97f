package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"menu-service/internal/models"
)

// Executor propagates one source outlet's menu to N target outlets.
// Targets are independent: each gets its own remapping table, its own
// failure boundary and its own outcome record, and they may be
// processed concurrently because nothing is shared between them.
type Executor struct {
	store   Store
	log     *logrus.Entry
	workers int
}

// NewExecutor creates a sync executor. workers bounds how many targets
// are processed concurrently; values below 1 fall back to 1.
func NewExecutor(store Store, logger *logrus.Logger, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		store:   store,
		log:     logger.WithField("component", "sync-executor"),
		workers: workers,
	}
}

// sourceSnapshot is the source outlet's menu, read once per job
type sourceSnapshot struct {
	categories []models.Category
	addOns     []models.AddOn
	items      []models.FoodItem
}

// remapTable maps source entity ids to target entity ids for one
// target outlet. It lives for one sync execution and is never persisted.
// Food items are not remapped because combos are not propagated.
type remapTable struct {
	categories map[string]uuid.UUID
	addOns     map[string]uuid.UUID
}

func newRemapTable() *remapTable {
	return &remapTable{
		categories: make(map[string]uuid.UUID),
		addOns:     make(map[string]uuid.UUID),
	}
}

// Sync executes the propagation. Per target, entity kinds are processed
// in dependency order: categories and add-ons build their remap tables
// before items resolve references through them. Results preserve the
// input order of targetOutletIDs.
func (e *Executor) Sync(tenantID, sourceOutletID string, targetOutletIDs []string, opts models.SyncOptions) (*models.SyncResult, error) {
	start := time.Now()

	if opts.DuplicateStrategy == "" {
		opts.DuplicateStrategy = models.DuplicateSkip
	}
	if opts.CategoryHandling == "" {
		opts.CategoryHandling = models.CategoryHandlingMapByName
	}
	if opts.AvailabilityMode == "" {
		opts.AvailabilityMode = models.AvailabilityPreserve
	}

	exists, err := e.store.OutletExists(tenantID, sourceOutletID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOutletNotFound
	}

	src := &sourceSnapshot{}
	if src.categories, err = e.store.ListCategories(tenantID, sourceOutletID); err != nil {
		return nil, err
	}
	if src.addOns, err = e.store.ListAddOns(tenantID, sourceOutletID); err != nil {
		return nil, err
	}
	if src.items, err = e.store.ListItems(tenantID, sourceOutletID); err != nil {
		return nil, err
	}

	results := make([]models.TargetSyncResult, len(targetOutletIDs))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup

	for i, targetID := range targetOutletIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(slot int, target string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[slot] = e.syncTargetSafe(tenantID, src, target, opts)
		}(i, targetID)
	}
	wg.Wait()

	result := &models.SyncResult{
		Success:     true,
		Results:     results,
		TotalTimeMs: time.Since(start).Milliseconds(),
	}
	for _, r := range results {
		if r.Status != models.TargetStatusSuccess {
			result.Success = false
		}
	}

	e.log.WithFields(logrus.Fields{
		"tenantId": tenantID,
		"sourceId": sourceOutletID,
		"targets":  len(targetOutletIDs),
		"success":  result.Success,
		"timeMs":   result.TotalTimeMs,
	}).Info("Menu sync completed")

	return result, nil
}

// syncTargetSafe is the per-target failure boundary: an unexpected
// panic becomes a failed result for that target only.
func (e *Executor) syncTargetSafe(tenantID string, src *sourceSnapshot, targetID string, opts models.SyncOptions) (result models.TargetSyncResult) {
	defer func() {
		if r := recover(); r != nil {
			result = models.TargetSyncResult{
				OutletID: targetID,
				Status:   models.TargetStatusFailed,
				Errors:   []string{fmt.Sprintf("unexpected failure: %v", r)},
			}
		}
	}()
	return e.syncTarget(tenantID, src, targetID, opts)
}

func (e *Executor) syncTarget(tenantID string, src *sourceSnapshot, targetID string, opts models.SyncOptions) models.TargetSyncResult {
	res := models.TargetSyncResult{
		OutletID: targetID,
		Errors:   make([]string, 0),
	}

	exists, err := e.store.OutletExists(tenantID, targetID)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		res.Status = models.TargetStatusFailed
		return res
	}
	if !exists {
		res.Errors = append(res.Errors, ErrOutletNotFound.Error())
		res.Status = models.TargetStatusFailed
		return res
	}

	target, err := BuildIndex(e.store, tenantID, targetID)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		res.Status = models.TargetStatusFailed
		return res
	}

	remap := newRemapTable()

	if opts.SyncCategories {
		e.syncCategories(tenantID, src, target, remap, opts, &res)
	}
	if opts.SyncAddOns {
		e.syncAddOns(tenantID, src, target, remap, opts, &res)
	}
	if opts.SyncItems {
		e.syncItems(tenantID, src, target, remap, opts, &res)
	}
	if opts.SyncCombos {
		// Offer combos need a food item remap table that this executor
		// does not build, so combos stay local to their outlet.
		msg := "combos are not propagated across outlets and were skipped"
		res.Message = &msg
	}

	synced := res.CategoriesSynced + res.AddOnsSynced + res.ItemsSynced
	switch {
	case len(res.Errors) == 0:
		res.Status = models.TargetStatusSuccess
	case synced > 0:
		res.Status = models.TargetStatusPartial
	default:
		res.Status = models.TargetStatusFailed
	}
	return res
}

func (e *Executor) syncCategories(tenantID string, src *sourceSnapshot, target *Index, remap *remapTable, opts models.SyncOptions, res *models.TargetSyncResult) {
	for _, srcCat := range src.categories {
		if opts.CategoryHandling == models.CategoryHandlingMapByName {
			if existingID, ok := target.ResolveCategoryByName(srcCat.Name); ok {
				// Reuse without writing; the mapping alone satisfies
				// the items that reference this category.
				remap.categories[srcCat.ID.String()] = existingID
				res.CategoriesSynced++
				continue
			}
		}

		newCat := models.Category{
			ID:           uuid.New(),
			TenantID:     tenantID,
			OutletID:     res.OutletID,
			Name:         srcCat.Name,
			Slug:         target.NewSlug(srcCat.Name),
			Description:  srcCat.Description,
			ImageURL:     srcCat.ImageURL,
			DisplayOrder: srcCat.DisplayOrder,
			IsActive:     srcCat.IsActive,
		}
		if err := e.store.CreateCategory(tenantID, &newCat); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("category %q: %v", srcCat.Name, err))
			continue
		}
		remap.categories[srcCat.ID.String()] = newCat.ID
		target.RegisterCategory(&newCat)
		res.CategoriesSynced++
	}
}

func (e *Executor) syncAddOns(tenantID string, src *sourceSnapshot, target *Index, remap *remapTable, opts models.SyncOptions, res *models.TargetSyncResult) {
	for _, srcAddOn := range src.addOns {
		existing, found := target.ResolveAddOn(srcAddOn.Name)

		if found && opts.DuplicateStrategy == models.DuplicateSkip {
			remap.addOns[srcAddOn.ID.String()] = existing.ID
			continue
		}

		if found && opts.DuplicateStrategy == models.DuplicateUpdate {
			updated := existing
			updated.Price = srcAddOn.Price
			updated.CategoryTag = srcAddOn.CategoryTag
			updated.IsActive = srcAddOn.IsActive
			if err := e.store.UpdateAddOn(tenantID, existing.ID, &updated); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("add-on %q: %v", srcAddOn.Name, err))
				continue
			}
			remap.addOns[srcAddOn.ID.String()] = existing.ID
			target.RegisterAddOn(&updated)
			res.AddOnsSynced++
			continue
		}

		newAddOn := models.AddOn{
			ID:           uuid.New(),
			TenantID:     tenantID,
			OutletID:     res.OutletID,
			Name:         srcAddOn.Name,
			Price:        srcAddOn.Price,
			CategoryTag:  srcAddOn.CategoryTag,
			IsActive:     srcAddOn.IsActive,
			DisplayOrder: srcAddOn.DisplayOrder,
		}
		if err := e.store.CreateAddOn(tenantID, &newAddOn); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("add-on %q: %v", srcAddOn.Name, err))
			continue
		}
		remap.addOns[srcAddOn.ID.String()] = newAddOn.ID
		if !found {
			target.RegisterAddOn(&newAddOn)
		}
		res.AddOnsSynced++
	}
}

func (e *Executor) syncItems(tenantID string, src *sourceSnapshot, target *Index, remap *remapTable, opts models.SyncOptions, res *models.TargetSyncResult) {
	for _, srcItem := range src.items {
		existingID, found := target.ResolveItemByName(srcItem.Name)

		if found && opts.DuplicateStrategy == models.DuplicateSkip {
			// Left untouched and not counted.
			continue
		}

		mapped := e.mapItem(tenantID, &srcItem, remap, opts, res.OutletID)

		if found && opts.DuplicateStrategy == models.DuplicateUpdate {
			mapped.ID = existingID
			if err := e.store.UpdateItem(tenantID, existingID, mapped); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("item %q: %v", srcItem.Name, err))
				continue
			}
			target.RegisterItem(mapped)
			res.ItemsSynced++
			continue
		}

		mapped.ID = uuid.New()
		if err := e.store.CreateItem(tenantID, mapped); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("item %q: %v", srcItem.Name, err))
			continue
		}
		target.RegisterItem(mapped)
		res.ItemsSynced++
	}
}

// mapItem rewrites a source item for a target outlet: references are
// remapped (category omitted and unresolved add-ons dropped rather than
// failing the item), the price adjustment applied, and availability
// resolved per mode. Available is never left true on an inactive item.
func (e *Executor) mapItem(tenantID string, srcItem *models.FoodItem, remap *remapTable, opts models.SyncOptions, targetID string) *models.FoodItem {
	item := *srcItem
	item.TenantID = tenantID
	item.OutletID = targetID
	item.CategoryID = nil
	item.AddOnIDs = nil
	item.ViewCount = 0
	item.OrderCount = 0

	if srcItem.CategoryID != nil {
		if mappedID, ok := remap.categories[srcItem.CategoryID.String()]; ok {
			item.CategoryID = &mappedID
		}
	}

	if srcItem.AddOnIDs != nil {
		mapped := make(models.StringArray, 0, len(*srcItem.AddOnIDs))
		for _, id := range *srcItem.AddOnIDs {
			if mappedID, ok := remap.addOns[id]; ok {
				mapped = append(mapped, mappedID.String())
			}
		}
		if len(mapped) > 0 {
			item.AddOnIDs = &mapped
		}
	}

	if opts.PriceAdjustmentPercent != 0 {
		item.Price = round2(srcItem.Price * (1 + opts.PriceAdjustmentPercent/100))
		if item.Variants != nil {
			variants := make(models.ItemVariantList, len(*srcItem.Variants))
			for i, v := range *srcItem.Variants {
				variants[i] = models.ItemVariant{
					Name:  v.Name,
					Price: round2(v.Price * (1 + opts.PriceAdjustmentPercent/100)),
				}
			}
			item.Variants = &variants
		}
	}

	available := boolValue(srcItem.IsAvailable, true)
	switch opts.AvailabilityMode {
	case models.AvailabilityAllAvailable:
		available = true
	case models.AvailabilityAllUnavailable:
		available = false
	}
	if !boolValue(srcItem.IsActive, true) {
		available = false
	}
	item.IsAvailable = &available

	return &item
}
