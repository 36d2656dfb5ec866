package models

// Category groups plans and addons and carries the tax surcharge settings
// applied to everything it owns.
type Category struct {
	// ID is assigned by the storage engine on insert.
	ID int64

	// Name is unique across categories.
	Name string

	// SurchargeEnabled reports whether the tax surcharge applies.
	SurchargeEnabled bool

	// SurchargePercent is the surcharge rate, e.g. 5 for 5%.
	SurchargePercent float64
}
