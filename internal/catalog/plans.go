package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/catalog/internal/models"
	"github.com/mmynk/catalog/internal/storage"
	"github.com/mmynk/catalog/internal/validation"
)

const (
	msgCategoryNotFound = "Unable to locate category."
	msgChildExists      = "A record with this id already exists in the category."
)

func planFromFields(categoryID int64, f models.Fields) *models.Plan {
	plan := &models.Plan{
		CategoryID: categoryID,
		Name:       f.Get(models.FieldPlanName),
		Tier1: models.Tier{
			Term: f.Get(models.FieldTier1Term),
			Cost: validation.ParseCost(f.Get(models.FieldTier1Cost)),
			SKU:  f.Get(models.FieldTier1SKU),
		},
	}
	if f.Has(models.FieldMinCost) {
		v := validation.ParseCost(f.Get(models.FieldMinCost))
		plan.MinCost = &v
	}
	if f.Has(models.FieldMaxCost) {
		v := validation.ParseCost(f.Get(models.FieldMaxCost))
		plan.MaxCost = &v
	}
	if f.Has(models.FieldTier2Term) {
		plan.Tier2 = &models.Tier{
			Term: f.Get(models.FieldTier2Term),
			Cost: validation.ParseCost(f.Get(models.FieldTier2Cost)),
			SKU:  f.Get(models.FieldTier2SKU),
		}
	}
	return plan
}

// requireCategory fails with NotFound when the category does not exist.
func (s *Service) requireCategory(ctx context.Context, categoryID int64) error {
	if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
		return storeError(err, msgCategoryNotFound, msgCategoryExists)
	}
	return nil
}

// ListPlans returns the plans of a category ordered by ID.
func (s *Service) ListPlans(ctx context.Context, categoryID int64) ([]*models.Plan, error) {
	if err := s.requireCategory(ctx, categoryID); err != nil {
		return nil, s.fail(ctx, TitlePlanEntry, err)
	}
	plans, err := s.store.ListPlans(ctx, categoryID)
	if err != nil {
		return nil, s.fail(ctx, TitlePlanEntry, storeError(err, msgCategoryNotFound, msgChildExists))
	}
	return plans, nil
}

// GetPlan returns one plan.
func (s *Service) GetPlan(ctx context.Context, categoryID, id int64) (*models.Plan, error) {
	plan, err := s.store.GetPlan(ctx, categoryID, id)
	if err != nil {
		return nil, s.fail(ctx, TitlePlanEntry, storeError(err, msgRecordNotFound, msgChildExists))
	}
	return plan, nil
}

// CreatePlan validates fields and creates a plan under categoryID, returning
// the plan with its allocated ID.
func (s *Service) CreatePlan(ctx context.Context, categoryID int64, fields models.Fields) (*models.Plan, error) {
	if err := validation.PlanAdd(fields); err != nil {
		return nil, s.fail(ctx, TitlePlanEntry, err)
	}

	plan := planFromFields(categoryID, fields)
	if err := s.store.CreatePlan(ctx, plan); err != nil {
		return nil, s.fail(ctx, TitlePlanEntry, storeError(err, msgCategoryNotFound, msgChildExists))
	}

	slog.Info("Created plan", "category_id", categoryID, "plan_id", plan.ID)
	return plan, nil
}

var tier2Fields = []string{models.FieldTier2Term, models.FieldTier2Cost, models.FieldTier2SKU}

// touchesTier2 reports whether patch sets or clears any second-tier field.
func touchesTier2(patch *models.Patch) bool {
	for _, field := range tier2Fields {
		if _, _, ok := patch.Value(field); ok {
			return true
		}
	}
	return false
}

// mergedTier2 returns which second-tier fields the plan will hold once patch
// is applied to stored. Clearing the term also drops a cost or sku the patch
// does not set.
func mergedTier2(stored *models.Plan, patch *models.Patch) validation.Tier2Fields {
	has := func(field string, current bool) bool {
		value, cleared, ok := patch.Value(field)
		switch {
		case !ok:
			return current
		case cleared:
			return false
		default:
			return value != ""
		}
	}

	var current validation.Tier2Fields
	if stored.Tier2 != nil {
		current = validation.Tier2Fields{Term: true, Cost: true, SKU: stored.Tier2.SKU != ""}
	}

	merged := validation.Tier2Fields{Term: has(models.FieldTier2Term, current.Term)}
	if _, cleared, _ := patch.Value(models.FieldTier2Term); cleared {
		current.Cost, current.SKU = false, false
	}
	merged.Cost = has(models.FieldTier2Cost, current.Cost)
	merged.SKU = has(models.FieldTier2SKU, current.SKU)
	return merged
}

// UpdatePlan applies patch to one plan and returns the rows affected. An
// empty patch returns 0 without a write. Clearing the tier 2 term clears the
// whole second tier; any other patch must leave tier 2 complete or absent.
func (s *Service) UpdatePlan(ctx context.Context, categoryID, id int64, patch *models.Patch) (int64, error) {
	if err := validation.Patch(patch, validation.PlanFields); err != nil {
		return 0, s.fail(ctx, TitlePlanEntry, err)
	}

	if touchesTier2(patch) {
		stored, err := s.store.GetPlan(ctx, categoryID, id)
		if errors.Is(err, storage.ErrNotFound) {
			return 0, nil
		}
		if err != nil {
			return 0, s.fail(ctx, TitlePlanEntry, storeError(err, msgRecordNotFound, msgChildExists))
		}
		if err := validation.Tier2(mergedTier2(stored, patch)); err != nil {
			return 0, s.fail(ctx, TitlePlanEntry, err)
		}
	}

	changes := changesFromPatch(patch, validation.PlanFields)
	if v, ok := changes[models.FieldTier2Term]; ok && v == nil {
		changes[models.FieldTier2Cost] = nil
		changes[models.FieldTier2SKU] = nil
	}

	n, err := s.store.UpdatePlan(ctx, categoryID, id, changes)
	if err != nil {
		return 0, s.fail(ctx, TitlePlanEntry, storeError(err, msgRecordNotFound, msgChildExists))
	}
	slog.Debug("Updated plan", "category_id", categoryID, "plan_id", id, "rows", n)
	return n, nil
}

// DeletePlan removes one plan. Deleting a missing plan returns 0.
func (s *Service) DeletePlan(ctx context.Context, categoryID, id int64) (int64, error) {
	n, err := s.store.DeletePlan(ctx, categoryID, id)
	if err != nil {
		return 0, s.fail(ctx, TitlePlanEntry, storeError(err, msgRecordNotFound, msgChildExists))
	}
	slog.Info("Deleted plan", "category_id", categoryID, "plan_id", id, "rows", n)
	return n, nil
}
