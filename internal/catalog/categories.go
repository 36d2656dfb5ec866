package catalog

import (
	"context"
	"log/slog"
	"strconv"

	apperrors "github.com/mmynk/catalog/internal/errors"
	"github.com/mmynk/catalog/internal/models"
	"github.com/mmynk/catalog/internal/validation"
)

const msgCategoryExists = "Category exists in database."

func (s *Service) nameTaken(ctx context.Context) validation.NameTakenFunc {
	return func(name string, excludeID int64) (bool, error) {
		taken, err := s.store.CategoryNameExists(ctx, name, excludeID)
		if err != nil {
			return false, storeError(err, msgRecordNotFound, msgCategoryExists)
		}
		return taken, nil
	}
}

// categoryTitle picks the report title: storage failures are database errors,
// everything else is an entry error.
func categoryTitle(err error) string {
	if apperrors.IsStorageError(err) {
		return TitleCategoryDatabase
	}
	return TitleCategoryEntry
}

// ListCategories returns every category ordered by ID.
func (s *Service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, s.fail(ctx, TitleCategoryDatabase, storeError(err, msgRecordNotFound, msgCategoryExists))
	}
	return categories, nil
}

// GetCategory returns one category.
func (s *Service) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		err = storeError(err, msgRecordNotFound, msgCategoryExists)
		return nil, s.fail(ctx, categoryTitle(err), err)
	}
	return category, nil
}

// CreateCategory validates fields and inserts a new category.
func (s *Service) CreateCategory(ctx context.Context, fields models.Fields) (*models.Category, error) {
	if err := validation.CategoryAdd(fields, s.nameTaken(ctx)); err != nil {
		return nil, s.fail(ctx, categoryTitle(err), err)
	}

	enabled, _ := strconv.ParseBool(fields.Get(models.FieldSurchargeEnabled))
	category := &models.Category{
		Name:             fields.Get(models.FieldCategoryName),
		SurchargeEnabled: enabled,
		SurchargePercent: validation.ParseCost(fields.Get(models.FieldSurchargePercent)),
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		err = storeError(err, msgRecordNotFound, msgCategoryExists)
		return nil, s.fail(ctx, categoryTitle(err), err)
	}

	slog.Info("Created category", "category_id", category.ID, "name", category.Name)
	return category, nil
}

// UpdateCategory validates fields and applies them to the category named by
// the "id" field. The name is always rewritten; the surcharge fields only
// when present. It fails with NotFound when no row was affected.
func (s *Service) UpdateCategory(ctx context.Context, fields models.Fields) (int64, error) {
	if err := validation.CategoryUpdate(fields, s.nameTaken(ctx)); err != nil {
		return 0, s.fail(ctx, categoryTitle(err), err)
	}
	id, _ := strconv.ParseInt(fields.Get(models.FieldCategoryID), 10, 64)

	changes := changesFromPatch(models.PatchFromFields(fields), validation.CategoryFields)
	n, err := s.store.UpdateCategory(ctx, id, changes)
	if err != nil {
		err = storeError(err, msgRecordNotFound, msgCategoryExists)
		return 0, s.fail(ctx, categoryTitle(err), err)
	}
	if n == 0 {
		return 0, s.fail(ctx, TitleCategoryEntry, apperrors.NewNotFoundError(msgRecordNotFound))
	}

	slog.Info("Updated category", "category_id", id, "fields", len(changes))
	return n, nil
}
