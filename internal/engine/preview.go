package engine

import (
	"strings"

	"github.com/sirupsen/logrus"
	"menu-service/internal/models"
)

// Planner computes a non-mutating forecast of a cross-outlet sync: for
// each target it reports the name collisions against the source and the
// estimated creates/updates under the requested policy. Safe to call
// repeatedly; it reserves nothing.
type Planner struct {
	store Store
	log   *logrus.Entry
}

// NewPlanner creates a sync preview planner over the given store
func NewPlanner(store Store, logger *logrus.Logger) *Planner {
	return &Planner{
		store: store,
		log:   logger.WithField("component", "sync-planner"),
	}
}

// Preview forecasts a sync from one source outlet to the given targets.
// Collisions are matched by name for both categories and items; the
// price component of the live duplicate key is deliberately left out of
// the preview's collision key. A failing target is reported in its own
// forecast entry and does not affect the others.
func (p *Planner) Preview(tenantID, sourceOutletID string, targetOutletIDs []string, opts models.SyncPreviewOptions) (*models.SyncPreview, error) {
	if opts.DuplicateStrategy == "" {
		opts.DuplicateStrategy = models.DuplicateSkip
	}

	exists, err := p.store.OutletExists(tenantID, sourceOutletID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOutletNotFound
	}

	srcCategories, err := p.store.ListCategories(tenantID, sourceOutletID)
	if err != nil {
		return nil, err
	}
	srcItems, err := p.store.ListItems(tenantID, sourceOutletID)
	if err != nil {
		return nil, err
	}
	srcAddOns, err := p.store.ListAddOns(tenantID, sourceOutletID)
	if err != nil {
		return nil, err
	}
	srcCombos, err := p.store.ListCombos(tenantID, sourceOutletID)
	if err != nil {
		return nil, err
	}

	preview := &models.SyncPreview{
		SourceOutletID: sourceOutletID,
		SourceSummary: models.EntityCounts{
			Categories: len(srcCategories),
			Items:      len(srcItems),
			AddOns:     len(srcAddOns),
			Combos:     len(srcCombos),
		},
		Targets: make([]models.TargetForecast, 0, len(targetOutletIDs)),
	}

	for _, targetID := range targetOutletIDs {
		preview.Targets = append(preview.Targets, p.forecastTarget(tenantID, targetID, srcCategories, srcItems, opts))
	}

	return preview, nil
}

func (p *Planner) forecastTarget(tenantID, targetID string, srcCategories []models.Category, srcItems []models.FoodItem, opts models.SyncPreviewOptions) models.TargetForecast {
	forecast := models.TargetForecast{
		OutletID:          targetID,
		CategoryConflicts: make([]string, 0),
		ItemConflicts:     make([]string, 0),
	}

	fail := func(err error) models.TargetForecast {
		msg := err.Error()
		forecast.Error = &msg
		return forecast
	}

	exists, err := p.store.OutletExists(tenantID, targetID)
	if err != nil {
		return fail(err)
	}
	if !exists {
		return fail(ErrOutletNotFound)
	}

	tgtCategories, err := p.store.ListCategories(tenantID, targetID)
	if err != nil {
		return fail(err)
	}
	tgtItems, err := p.store.ListItems(tenantID, targetID)
	if err != nil {
		return fail(err)
	}

	tgtCategoryNames := make(map[string]bool, len(tgtCategories))
	for _, c := range tgtCategories {
		tgtCategoryNames[strings.ToLower(strings.TrimSpace(c.Name))] = true
	}
	tgtItemNames := make(map[string]bool, len(tgtItems))
	for _, it := range tgtItems {
		tgtItemNames[strings.ToLower(strings.TrimSpace(it.Name))] = true
	}

	for _, c := range srcCategories {
		if tgtCategoryNames[strings.ToLower(strings.TrimSpace(c.Name))] {
			forecast.CategoryConflicts = append(forecast.CategoryConflicts, c.Name)
		}
	}
	for _, it := range srcItems {
		if tgtItemNames[strings.ToLower(strings.TrimSpace(it.Name))] {
			forecast.ItemConflicts = append(forecast.ItemConflicts, it.Name)
		}
	}

	forecast.Categories = estimateKind(len(srcCategories), len(forecast.CategoryConflicts), opts.DuplicateStrategy)
	forecast.Items = estimateKind(len(srcItems), len(forecast.ItemConflicts), opts.DuplicateStrategy)
	return forecast
}

// estimateKind turns collision counts into create/update estimates for
// one entity kind under the given duplicate policy.
func estimateKind(total, conflicts int, strategy models.DuplicateStrategy) models.KindForecast {
	forecast := models.KindForecast{Total: total, Conflicts: conflicts}
	switch strategy {
	case models.DuplicateUpdate:
		forecast.Creates = total - conflicts
		forecast.Updates = conflicts
	case models.DuplicateCreate:
		forecast.Creates = total
	default: // skip
		forecast.Creates = total - conflicts
	}
	return forecast
}
