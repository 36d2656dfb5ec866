package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	apperrors "github.com/mmynk/catalog/internal/errors"
	"github.com/mmynk/catalog/internal/models"
)

// Request keys that address records rather than carry field values.
const (
	KeyCategoryID = "categoryId"
	KeyID         = "id"
	KeyName       = "name"
	KeyUsername   = "username"
	KeyPassword   = "password"
)

// scalarString renders a scalar struct value the way a form would submit it.
// ok is false for null, lists and nested structs.
func scalarString(v *structpb.Value) (s string, ok bool) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64), true
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue), true
	default:
		return "", false
	}
}

// fieldsFrom copies the scalar entries of msg into a field set, skipping the
// given keys.
func fieldsFrom(msg *structpb.Struct, skip ...string) models.Fields {
	fields := make(models.Fields, len(msg.GetFields()))
	for k, v := range msg.GetFields() {
		if contains(skip, k) {
			continue
		}
		if s, ok := scalarString(v); ok {
			fields[k] = s
		}
	}
	return fields
}

// patchFrom builds a patch from msg: null clears a field, empty strings are
// absent, any other scalar sets it.
func patchFrom(msg *structpb.Struct, skip ...string) *models.Patch {
	patch := models.NewPatch()
	for k, v := range msg.GetFields() {
		if contains(skip, k) {
			continue
		}
		if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
			patch.Clear(k)
			continue
		}
		if s, ok := scalarString(v); ok {
			patch.Set(k, s)
		}
	}
	return patch
}

func contains(keys []string, k string) bool {
	for _, s := range keys {
		if s == k {
			return true
		}
	}
	return false
}

// idFrom reads a positive integer identifier from msg. Numbers and numeric
// strings are accepted.
func idFrom(msg *structpb.Struct, key string) (int64, error) {
	v, ok := msg.GetFields()[key]
	if !ok {
		return 0, apperrors.NewValidationError(fmt.Sprintf("Missing the %s.", idLabel(key)))
	}
	var id int64
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if k.NumberValue != math.Trunc(k.NumberValue) || k.NumberValue > math.MaxInt64 {
			return 0, invalidID(key)
		}
		id = int64(k.NumberValue)
	case *structpb.Value_StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(k.StringValue), 10, 64)
		if err != nil {
			return 0, invalidID(key)
		}
		id = n
	default:
		return 0, invalidID(key)
	}
	if id <= 0 {
		return 0, invalidID(key)
	}
	return id, nil
}

func idLabel(key string) string {
	if key == KeyCategoryID {
		return "category id"
	}
	return "record id"
}

func invalidID(key string) error {
	return apperrors.NewValidationError(fmt.Sprintf("The %s is not a valid value.", idLabel(key)))
}

func categoryMap(c *models.Category) map[string]any {
	return map[string]any{
		models.FieldCategoryID:       c.ID,
		models.FieldCategoryName:     c.Name,
		models.FieldSurchargeEnabled: c.SurchargeEnabled,
		models.FieldSurchargePercent: c.SurchargePercent,
	}
}

func optionalFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func planMap(p *models.Plan) map[string]any {
	m := map[string]any{
		KeyCategoryID:         p.CategoryID,
		KeyID:                 p.ID,
		models.FieldPlanName:  p.Name,
		models.FieldMinCost:   optionalFloat(p.MinCost),
		models.FieldMaxCost:   optionalFloat(p.MaxCost),
		models.FieldTier1Term: p.Tier1.Term,
		models.FieldTier1Cost: p.Tier1.Cost,
		models.FieldTier1SKU:  p.Tier1.SKU,
		models.FieldTier2Term: nil,
		models.FieldTier2Cost: nil,
		models.FieldTier2SKU:  nil,
	}
	if p.Tier2 != nil {
		m[models.FieldTier2Term] = p.Tier2.Term
		m[models.FieldTier2Cost] = p.Tier2.Cost
		m[models.FieldTier2SKU] = p.Tier2.SKU
	}
	return m
}

func addonMap(a *models.Addon) map[string]any {
	return map[string]any{
		KeyCategoryID:          a.CategoryID,
		KeyID:                  a.ID,
		models.FieldAddonTitle: a.Title,
		models.FieldAddonCost:  a.Cost,
		models.FieldAddonSKU:   a.SKU,
	}
}

// newStruct wraps structpb.NewStruct, reporting conversion failures as
// internal errors.
func newStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return s, nil
}

func listStruct[T any](key string, items []T, toMap func(T) map[string]any) (*structpb.Struct, error) {
	list := make([]any, len(items))
	for i, item := range items {
		list[i] = toMap(item)
	}
	return newStruct(map[string]any{key: list})
}

func rowsStruct(n int64) (*structpb.Struct, error) {
	return newStruct(map[string]any{"rowsAffected": n})
}
