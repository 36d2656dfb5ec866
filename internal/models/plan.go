package models

// Tier is one pricing tier of a plan.
type Tier struct {
	Term string
	Cost float64
	SKU  string
}

// Plan is a sellable plan owned by a category.
type Plan struct {
	// CategoryID is the owning category.
	CategoryID int64

	// ID is local to CategoryID.
	ID int64

	Name string

	// MinCost and MaxCost are nil when not set.
	MinCost *float64
	MaxCost *float64

	// Tier1 is mandatory.
	Tier1 Tier

	// Tier2 is nil unless a tier 2 term was given.
	Tier2 *Tier
}
