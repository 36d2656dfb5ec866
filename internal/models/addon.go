package models

// Addon is an optional extra sold alongside the plans of a category.
type Addon struct {
	CategoryID int64
	ID         int64
	Title      string
	Cost       float64
	SKU        string
}
