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

type planRow struct {
	CategoryID int64           `db:"category_id"`
	ID         int64           `db:"id"`
	Name       string          `db:"name"`
	MinCost    sql.NullFloat64 `db:"min_cost"`
	MaxCost    sql.NullFloat64 `db:"max_cost"`
	Tier1Term  string          `db:"tier1_term"`
	Tier1Cost  float64         `db:"tier1_cost"`
	Tier1SKU   string          `db:"tier1_sku"`
	Tier2Term  sql.NullString  `db:"tier2_term"`
	Tier2Cost  sql.NullFloat64 `db:"tier2_cost"`
	Tier2SKU   sql.NullString  `db:"tier2_sku"`
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func newPlanRow(p *models.Plan) planRow {
	row := planRow{
		CategoryID: p.CategoryID,
		ID:         p.ID,
		Name:       p.Name,
		MinCost:    nullFloat(p.MinCost),
		MaxCost:    nullFloat(p.MaxCost),
		Tier1Term:  p.Tier1.Term,
		Tier1Cost:  p.Tier1.Cost,
		Tier1SKU:   p.Tier1.SKU,
	}
	if p.Tier2 != nil {
		row.Tier2Term = sql.NullString{String: p.Tier2.Term, Valid: true}
		row.Tier2Cost = sql.NullFloat64{Float64: p.Tier2.Cost, Valid: true}
		row.Tier2SKU = sql.NullString{String: p.Tier2.SKU, Valid: true}
	}
	return row
}

func (r planRow) toModel() *models.Plan {
	p := &models.Plan{
		CategoryID: r.CategoryID,
		ID:         r.ID,
		Name:       r.Name,
		MinCost:    floatPtr(r.MinCost),
		MaxCost:    floatPtr(r.MaxCost),
		Tier1: models.Tier{
			Term: r.Tier1Term,
			Cost: r.Tier1Cost,
			SKU:  r.Tier1SKU,
		},
	}
	if r.Tier2Term.Valid {
		p.Tier2 = &models.Tier{
			Term: r.Tier2Term.String,
			Cost: r.Tier2Cost.Float64,
			SKU:  r.Tier2SKU.String,
		}
	}
	return p
}

var planTable = table{
	name: "plans",
	columns: map[string]string{
		models.FieldPlanName:  "name",
		models.FieldMinCost:   "min_cost",
		models.FieldMaxCost:   "max_cost",
		models.FieldTier1Term: "tier1_term",
		models.FieldTier1Cost: "tier1_cost",
		models.FieldTier1SKU:  "tier1_sku",
		models.FieldTier2Term: "tier2_term",
		models.FieldTier2Cost: "tier2_cost",
		models.FieldTier2SKU:  "tier2_sku",
	},
}

const planColumns = `category_id, id, name, min_cost, max_cost,
	tier1_term, tier1_cost, tier1_sku, tier2_term, tier2_cost, tier2_sku`

// ListPlans returns the plans of a category ordered by local ID.
func (s *Store) ListPlans(ctx context.Context, categoryID int64) ([]*models.Plan, error) {
	var rows []planRow
	err := s.db.SelectContext(ctx, &rows,
		s.db.Rebind("SELECT "+planColumns+" FROM plans WHERE category_id = ? ORDER BY id"),
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*models.Plan, len(rows))
	for i, r := range rows {
		plans[i] = r.toModel()
	}
	return plans, nil
}

// GetPlan retrieves one plan by its compound key.
func (s *Store) GetPlan(ctx context.Context, categoryID, id int64) (*models.Plan, error) {
	var row planRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind("SELECT "+planColumns+" FROM plans WHERE category_id = ? AND id = ?"),
		categoryID, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %d/%d: %w", categoryID, id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return row.toModel(), nil
}

// CreatePlan inserts a plan under plan.CategoryID and sets plan.ID.
func (s *Store) CreatePlan(ctx context.Context, plan *models.Plan) error {
	id, err := s.insertChild(ctx, plan.CategoryID, KindPlan, func(tx *sqlx.Tx, id int64) error {
		row := newPlanRow(plan)
		row.ID = id
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO plans (category_id, id, name, min_cost, max_cost,
				tier1_term, tier1_cost, tier1_sku, tier2_term, tier2_cost, tier2_sku)
			VALUES (:category_id, :id, :name, :min_cost, :max_cost,
				:tier1_term, :tier1_cost, :tier1_sku, :tier2_term, :tier2_cost, :tier2_sku)`,
			row,
		)
		return err
	})
	if err != nil {
		return err
	}
	plan.ID = id
	return nil
}

// UpdatePlan applies a partial update to one plan.
func (s *Store) UpdatePlan(ctx context.Context, categoryID, id int64, changes storage.Changes) (int64, error) {
	return s.update(ctx, planTable, changes, "category_id = ? AND id = ?", categoryID, id)
}

// DeletePlan removes one plan; a missing plan affects 0 rows.
func (s *Store) DeletePlan(ctx context.Context, categoryID, id int64) (int64, error) {
	return s.deleteChild(ctx, planTable.name, categoryID, id)
}
