package catalog

import (
	"context"
	"log/slog"

	"github.com/mmynk/catalog/internal/models"
	"github.com/mmynk/catalog/internal/validation"
)

// ListAddons returns the addons of a category ordered by ID.
func (s *Service) ListAddons(ctx context.Context, categoryID int64) ([]*models.Addon, error) {
	if err := s.requireCategory(ctx, categoryID); err != nil {
		return nil, s.fail(ctx, TitleAddonEntry, err)
	}
	addons, err := s.store.ListAddons(ctx, categoryID)
	if err != nil {
		return nil, s.fail(ctx, TitleAddonEntry, storeError(err, msgCategoryNotFound, msgChildExists))
	}
	return addons, nil
}

// GetAddon returns one addon.
func (s *Service) GetAddon(ctx context.Context, categoryID, id int64) (*models.Addon, error) {
	addon, err := s.store.GetAddon(ctx, categoryID, id)
	if err != nil {
		return nil, s.fail(ctx, TitleAddonEntry, storeError(err, msgRecordNotFound, msgChildExists))
	}
	return addon, nil
}

// CreateAddon validates fields and creates an addon under categoryID.
func (s *Service) CreateAddon(ctx context.Context, categoryID int64, fields models.Fields) (*models.Addon, error) {
	if err := validation.AddonAdd(fields); err != nil {
		return nil, s.fail(ctx, TitleAddonEntry, err)
	}

	addon := &models.Addon{
		CategoryID: categoryID,
		Title:      fields.Get(models.FieldAddonTitle),
		Cost:       validation.ParseCost(fields.Get(models.FieldAddonCost)),
		SKU:        fields.Get(models.FieldAddonSKU),
	}
	if err := s.store.CreateAddon(ctx, addon); err != nil {
		return nil, s.fail(ctx, TitleAddonEntry, storeError(err, msgCategoryNotFound, msgChildExists))
	}

	slog.Info("Created addon", "category_id", categoryID, "addon_id", addon.ID)
	return addon, nil
}

// UpdateAddon applies patch to one addon and returns the rows affected.
func (s *Service) UpdateAddon(ctx context.Context, categoryID, id int64, patch *models.Patch) (int64, error) {
	if err := validation.Patch(patch, validation.AddonFields); err != nil {
		return 0, s.fail(ctx, TitleAddonEntry, err)
	}

	n, err := s.store.UpdateAddon(ctx, categoryID, id, changesFromPatch(patch, validation.AddonFields))
	if err != nil {
		return 0, s.fail(ctx, TitleAddonEntry, storeError(err, msgRecordNotFound, msgChildExists))
	}
	slog.Debug("Updated addon", "category_id", categoryID, "addon_id", id, "rows", n)
	return n, nil
}

// DeleteAddon removes one addon. Deleting a missing addon returns 0.
func (s *Service) DeleteAddon(ctx context.Context, categoryID, id int64) (int64, error) {
	n, err := s.store.DeleteAddon(ctx, categoryID, id)
	if err != nil {
		return 0, s.fail(ctx, TitleAddonEntry, storeError(err, msgRecordNotFound, msgChildExists))
	}
	slog.Info("Deleted addon", "category_id", categoryID, "addon_id", id, "rows", n)
	return n, nil
}
