package validation

import (
	"fmt"

	apperrors "github.com/mmynk/catalog/internal/errors"
	"github.com/mmynk/catalog/internal/models"
)

// FieldSpec describes one updatable field.
type FieldSpec struct {
	Field    string
	Label    string
	Tag      string
	Numeric  bool
	Nullable bool
}

// PlanFields lists the updatable plan fields in check order.
var PlanFields = []FieldSpec{
	{Field: models.FieldPlanName, Label: "Plan name", Tag: "max=100"},
	{Field: models.FieldMinCost, Label: "The minimum cost", Tag: "numeric,cost", Numeric: true, Nullable: true},
	{Field: models.FieldMaxCost, Label: "The maximum cost", Tag: "numeric,cost", Numeric: true, Nullable: true},
	{Field: models.FieldTier1Term, Label: "Tier 1 term"},
	{Field: models.FieldTier1Cost, Label: "Tier 1 cost", Tag: "numeric,cost", Numeric: true},
	{Field: models.FieldTier1SKU, Label: "Tier 1 sku"},
	{Field: models.FieldTier2Term, Label: "Tier 2 term", Nullable: true},
	{Field: models.FieldTier2Cost, Label: "Tier 2 cost", Tag: "numeric,cost", Numeric: true, Nullable: true},
	{Field: models.FieldTier2SKU, Label: "Tier 2 sku", Nullable: true},
}

// AddonFields lists the updatable addon fields in check order.
var AddonFields = []FieldSpec{
	{Field: models.FieldAddonTitle, Label: "Addon title", Tag: "max=100"},
	{Field: models.FieldAddonCost, Label: "Addon cost", Tag: "numeric,cost", Numeric: true},
	{Field: models.FieldAddonSKU, Label: "Addon SKU"},
}

// CategoryFields lists the updatable category fields.
var CategoryFields = []FieldSpec{
	{Field: models.FieldCategoryName, Label: "Category name", Tag: "max=100"},
	{Field: models.FieldSurchargeEnabled, Label: "The tax surcharge flag", Tag: "boolean"},
	{Field: models.FieldSurchargePercent, Label: "The tax surcharge percentage", Tag: "numeric,cost", Numeric: true},
}

// Patch checks every field touched by p against rules. Set values must pass
// the field's rule; only nullable fields may be cleared. Fields not listed in
// rules are ignored.
func Patch(p *models.Patch, rules []FieldSpec) error {
	for _, fs := range rules {
		value, cleared, ok := p.Value(fs.Field)
		if !ok {
			continue
		}
		if cleared {
			if !fs.Nullable {
				return apperrors.NewValidationError(fmt.Sprintf("%s can not be cleared.", fs.Label))
			}
			continue
		}
		if fs.Tag == "" {
			continue
		}
		if err := validate.Var(value, fs.Tag); err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("%s is not a valid value.", fs.Label))
		}
	}
	return nil
}
