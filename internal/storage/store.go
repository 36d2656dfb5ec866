// Package storage provides abstractions for persistent catalog storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/catalog/internal/models"
)

var (
	// ErrNotFound is returned when a parent or child record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Changes maps field keys to new column values for a partial update.
// A nil value clears the column.
type Changes map[string]any

// CategoryStore defines category persistence.
// Categories are never deleted.
type CategoryStore interface {
	// ListCategories returns all categories ordered by ID.
	ListCategories(ctx context.Context) ([]*models.Category, error)

	// GetCategory returns ErrNotFound when no category has the given ID.
	GetCategory(ctx context.Context, id int64) (*models.Category, error)

	// CreateCategory inserts the category and populates its ID.
	// Returns ErrDuplicate when the name is already used.
	CreateCategory(ctx context.Context, category *models.Category) error

	// UpdateCategory applies changes to one category and returns the number
	// of rows affected. Empty changes return 0 without a write.
	UpdateCategory(ctx context.Context, id int64, changes Changes) (int64, error)

	// CategoryNameExists reports whether a category other than excludeID
	// uses name. excludeID 0 checks every category.
	CategoryNameExists(ctx context.Context, name string, excludeID int64) (bool, error)
}

// PlanStore defines plan persistence. Plans are keyed by (categoryID, id).
type PlanStore interface {
	// ListPlans returns the plans of a category ordered by ID.
	ListPlans(ctx context.Context, categoryID int64) ([]*models.Plan, error)

	// GetPlan returns ErrNotFound when the pair does not exist.
	GetPlan(ctx context.Context, categoryID, id int64) (*models.Plan, error)

	// CreatePlan allocates the next ID within plan.CategoryID and inserts the
	// plan in one transaction, populating plan.ID.
	// Returns ErrNotFound when the category does not exist.
	CreatePlan(ctx context.Context, plan *models.Plan) error

	// UpdatePlan applies changes and returns the number of rows affected.
	UpdatePlan(ctx context.Context, categoryID, id int64, changes Changes) (int64, error)

	// DeletePlan removes at most one plan. A missing pair affects 0 rows and
	// is not an error.
	DeletePlan(ctx context.Context, categoryID, id int64) (int64, error)
}

// AddonStore defines addon persistence, symmetrical to PlanStore.
type AddonStore interface {
	ListAddons(ctx context.Context, categoryID int64) ([]*models.Addon, error)
	GetAddon(ctx context.Context, categoryID, id int64) (*models.Addon, error)
	CreateAddon(ctx context.Context, addon *models.Addon) error
	UpdateAddon(ctx context.Context, categoryID, id int64, changes Changes) (int64, error)
	DeleteAddon(ctx context.Context, categoryID, id int64) (int64, error)
}

// CredentialStore persists issued credentials. Credentials are written once.
type CredentialStore interface {
	CreateCredential(ctx context.Context, credential *models.Credential) error
}

// Store is the full catalog storage backend.
// This abstraction allows swapping storage engines (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	CategoryStore
	PlanStore
	AddonStore
	CredentialStore

	// Close releases any resources held by the store.
	Close() error
}
