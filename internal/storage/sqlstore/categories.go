package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/catalog/internal/models"
	"github.com/mmynk/catalog/internal/storage"
)

type categoryRow struct {
	ID               int64   `db:"id"`
	Name             string  `db:"name"`
	SurchargeEnabled bool    `db:"surcharge_enabled"`
	SurchargePercent float64 `db:"surcharge_percent"`
}

func (r categoryRow) toModel() *models.Category {
	return &models.Category{
		ID:               r.ID,
		Name:             r.Name,
		SurchargeEnabled: r.SurchargeEnabled,
		SurchargePercent: r.SurchargePercent,
	}
}

var categoryTable = table{
	name: "categories",
	columns: map[string]string{
		models.FieldCategoryName:     "name",
		models.FieldSurchargeEnabled: "surcharge_enabled",
		models.FieldSurchargePercent: "surcharge_percent",
	},
}

const categoryColumns = "id, name, surcharge_enabled, surcharge_percent"

// ListCategories returns all categories ordered by ID.
func (s *Store) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var rows []categoryRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT "+categoryColumns+" FROM categories ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*models.Category, len(rows))
	for i, r := range rows {
		categories[i] = r.toModel()
	}
	return categories, nil
}

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var row categoryRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind("SELECT "+categoryColumns+" FROM categories WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return row.toModel(), nil
}

// CreateCategory inserts a category and sets its engine-assigned ID.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	err := s.db.QueryRowxContext(ctx,
		s.db.Rebind(`INSERT INTO categories (name, surcharge_enabled, surcharge_percent)
			VALUES (?, ?, ?) RETURNING id`),
		category.Name, category.SurchargeEnabled, category.SurchargePercent,
	).Scan(&category.ID)
	if err != nil {
		return wrapWriteError("insert category", err)
	}
	return nil
}

// UpdateCategory applies a partial update to one category.
func (s *Store) UpdateCategory(ctx context.Context, id int64, changes storage.Changes) (int64, error) {
	return s.update(ctx, categoryTable, changes, "id = ?", id)
}

// CategoryNameExists reports whether another category already uses name.
func (s *Store) CategoryNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		s.db.Rebind("SELECT EXISTS (SELECT 1 FROM categories WHERE name = ? AND id <> ?)"),
		name, excludeID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return exists, nil
}
