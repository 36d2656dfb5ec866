package validation

import (
	"strconv"

	apperrors "github.com/mmynk/catalog/internal/errors"
	"github.com/mmynk/catalog/internal/models"
)

func hasTier2(f models.Fields) bool { return f.Has(models.FieldTier2Term) }

var planAddRules = []rule{
	{field: models.FieldPlanName, tag: "max=100", message: "Plan name is too long. Max of 100 characters."},
	{field: models.FieldMinCost, tag: "omitempty,numeric,cost", message: "The minimum cost is not a valid value."},
	{field: models.FieldMaxCost, tag: "omitempty,numeric,cost", message: "The maximum cost is not a valid value."},
	{field: models.FieldTier1Term, tag: "required", message: "Tier 1 term is required."},
	{field: models.FieldTier1Cost, tag: "required,numeric,cost", message: "Tier 1 cost is not a valid value."},
	{field: models.FieldTier1SKU, tag: "required", message: "Tier 1 sku is not a valid value."},
	{field: models.FieldTier2Cost, tag: "required,numeric,cost", message: "Tier 2 cost is not a valid value.", when: hasTier2},
	{field: models.FieldTier2SKU, tag: "required", message: "Tier 2 sku is not a valid value.", when: hasTier2},
}

var addonAddRules = []rule{
	{field: models.FieldAddonTitle, tag: "max=100", message: "Addon title is too long. Max of 100 characters."},
	{field: models.FieldAddonTitle, tag: "required", message: "Addon title is required."},
	{field: models.FieldAddonCost, tag: "required,numeric,cost", message: "Addon cost is not a valid value."},
	{field: models.FieldAddonSKU, tag: "required", message: "Addon SKU is not a valid value."},
}

var categoryFieldRules = []rule{
	{field: models.FieldSurchargeEnabled, tag: "omitempty,boolean", message: "The tax surcharge flag is not a valid value."},
	{field: models.FieldSurchargePercent, tag: "omitempty,numeric,cost", message: "The tax surcharge percentage is not a valid value."},
}

func categoryName(name string) error {
	if name == "" {
		return apperrors.NewValidationError("Category name can not be empty.")
	}
	if err := validate.Var(name, "max=100"); err != nil {
		return apperrors.NewValidationError("Category name is too long. Max of 100 characters.")
	}
	return nil
}

// PlanAdd checks a plan creation payload.
func PlanAdd(fields models.Fields) error {
	return check(fields, planAddRules)
}

// AddonAdd checks an addon creation payload.
func AddonAdd(fields models.Fields) error {
	return check(fields, addonAddRules)
}

// CategoryAdd checks a category creation payload: the name must be present,
// at most 100 characters and not taken, then the surcharge fields must parse.
func CategoryAdd(fields models.Fields, nameTaken NameTakenFunc) error {
	name := fields.Get(models.FieldCategoryName)
	if err := categoryName(name); err != nil {
		return err
	}
	taken, err := nameTaken(name, 0)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewConflictError("Category exists in database.")
	}
	return check(fields, categoryFieldRules)
}

// CategoryUpdate checks a category update payload: id, then name, then the
// surcharge fields. A rename onto another category's name is a conflict.
func CategoryUpdate(fields models.Fields, nameTaken NameTakenFunc) error {
	rawID := fields.Get(models.FieldCategoryID)
	if rawID == "" {
		return apperrors.NewValidationError("Missing the category id.")
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("The category id is not a valid value.")
	}
	name := fields.Get(models.FieldCategoryName)
	if err := categoryName(name); err != nil {
		return err
	}
	if err := check(fields, categoryFieldRules); err != nil {
		return err
	}
	taken, err := nameTaken(name, id)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewConflictError("Category exists in database.")
	}
	return nil
}

// NameTakenFunc reports whether a category other than excludeID already uses
// name. excludeID 0 matches every category.
type NameTakenFunc func(name string, excludeID int64) (bool, error)

// Credential checks an API key registration.
func Credential(name, username, password string) error {
	if name == "" {
		return apperrors.NewValidationError("Name is required.")
	}
	if username == "" {
		return apperrors.NewValidationError("Username is required.")
	}
	if len(password) < 8 {
		return apperrors.NewValidationError("Password must be at least 8 characters.")
	}
	// bcrypt only looks at the first 72 bytes.
	if len(password) > 72 {
		return apperrors.NewValidationError("Password must be at most 72 bytes.")
	}
	return nil
}

// Tier2Fields says which second-tier fields a plan holds.
type Tier2Fields struct {
	Term bool
	Cost bool
	SKU  bool
}

// Tier2 checks that a plan's second tier is either complete or absent: a
// term needs a cost and a sku, and a cost or sku needs a term.
func Tier2(t Tier2Fields) error {
	if !t.Term {
		if t.Cost || t.SKU {
			return apperrors.NewValidationError("Tier 2 term is required.")
		}
		return nil
	}
	if !t.Cost {
		return apperrors.NewValidationError("Tier 2 cost is not a valid value.")
	}
	if !t.SKU {
		return apperrors.NewValidationError("Tier 2 sku is not a valid value.")
	}
	return nil
}
