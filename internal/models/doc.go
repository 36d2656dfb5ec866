// Package models defines the domain records of the catalog.
//
// The catalog is a two-level hierarchy:
//   - Category: top-level grouping with a globally unique id and name
//   - Plan: a sellable plan with up to two pricing tiers, owned by a Category
//   - Addon: a sellable extra, owned by a Category
//
// Plans and Addons are keyed by (CategoryID, ID). The ID is local to the
// owning category: it starts at 1 for each category and may repeat across
// categories.
//
// Credentials are issued once per registration and hold the API key handed
// back to the caller.
//
// Input arrives as Fields (string-keyed, string-valued); partial updates use
// Patch, which distinguishes an absent field from an explicit clear.
package models
