package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mmynk/catalog/internal/models"
	"github.com/mmynk/catalog/internal/storage"
)

type addonRow struct {
	CategoryID int64   `db:"category_id"`
	ID         int64   `db:"id"`
	Title      string  `db:"title"`
	Cost       float64 `db:"cost"`
	SKU        string  `db:"sku"`
}

func (r addonRow) toModel() *models.Addon {
	return &models.Addon{
		CategoryID: r.CategoryID,
		ID:         r.ID,
		Title:      r.Title,
		Cost:       r.Cost,
		SKU:        r.SKU,
	}
}

var addonTable = table{
	name: "addons",
	columns: map[string]string{
		models.FieldAddonTitle: "title",
		models.FieldAddonCost:  "cost",
		models.FieldAddonSKU:   "sku",
	},
}

// ListAddons returns the addons of a category ordered by local ID.
func (s *Store) ListAddons(ctx context.Context, categoryID int64) ([]*models.Addon, error) {
	var rows []addonRow
	err := s.db.SelectContext(ctx, &rows,
		s.db.Rebind("SELECT category_id, id, title, cost, sku FROM addons WHERE category_id = ? ORDER BY id"),
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list addons: %w", err)
	}

	addons := make([]*models.Addon, len(rows))
	for i, r := range rows {
		addons[i] = r.toModel()
	}
	return addons, nil
}

// GetAddon retrieves one addon by its compound key.
func (s *Store) GetAddon(ctx context.Context, categoryID, id int64) (*models.Addon, error) {
	var row addonRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind("SELECT category_id, id, title, cost, sku FROM addons WHERE category_id = ? AND id = ?"),
		categoryID, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("addon %d/%d: %w", categoryID, id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get addon: %w", err)
	}
	return row.toModel(), nil
}

// CreateAddon inserts an addon under addon.CategoryID and sets addon.ID.
func (s *Store) CreateAddon(ctx context.Context, addon *models.Addon) error {
	id, err := s.insertChild(ctx, addon.CategoryID, KindAddon, func(tx *sqlx.Tx, id int64) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO addons (category_id, id, title, cost, sku)
			VALUES (:category_id, :id, :title, :cost, :sku)`,
			addonRow{
				CategoryID: addon.CategoryID,
				ID:         id,
				Title:      addon.Title,
				Cost:       addon.Cost,
				SKU:        addon.SKU,
			},
		)
		return err
	})
	if err != nil {
		return err
	}
	addon.ID = id
	return nil
}

// UpdateAddon applies a partial update to one addon.
func (s *Store) UpdateAddon(ctx context.Context, categoryID, id int64, changes storage.Changes) (int64, error) {
	return s.update(ctx, addonTable, changes, "category_id = ? AND id = ?", categoryID, id)
}

// DeleteAddon removes one addon; a missing addon affects 0 rows.
func (s *Store) DeleteAddon(ctx context.Context, categoryID, id int64) (int64, error) {
	return s.deleteChild(ctx, addonTable.name, categoryID, id)
}
