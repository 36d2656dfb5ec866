package models

// Field keys accepted in caller payloads.
const (
	FieldCategoryID       = "id"
	FieldCategoryName     = "name"
	FieldSurchargeEnabled = "tsFlag"
	FieldSurchargePercent = "tsPercent"

	FieldPlanName  = "name"
	FieldMinCost   = "min"
	FieldMaxCost   = "max"
	FieldTier1Term = "tier1term"
	FieldTier1Cost = "tier1cost"
	FieldTier1SKU  = "tier1sku"
	FieldTier2Term = "tier2term"
	FieldTier2Cost = "tier2cost"
	FieldTier2SKU  = "tier2sku"

	FieldAddonTitle = "title"
	FieldAddonCost  = "cost"
	FieldAddonSKU   = "sku"
)

// Fields is a submitted field set. A missing key and an empty value are
// treated alike.
type Fields map[string]string

// Get returns the value for key, or "" when absent.
func (f Fields) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// Has reports whether key is present with a non-empty value.
func (f Fields) Has(key string) bool {
	return f.Get(key) != ""
}
