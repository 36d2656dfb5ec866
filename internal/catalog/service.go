// Package catalog runs catalog operations: it validates caller field sets,
// converts them into records or column changes, calls the store and reports
// failures. Every error it returns is an *apperrors.AppError.
package catalog

import (
	"context"
	"errors"
	"strconv"

	apperrors "github.com/mmynk/catalog/internal/errors"
	"github.com/mmynk/catalog/internal/models"
	"github.com/mmynk/catalog/internal/storage"
	"github.com/mmynk/catalog/internal/validation"
)

// Titles handed to the error reporter.
const (
	TitleCategoryEntry    = "Category Entry Error"
	TitleCategoryDatabase = "Category Database Error"
	TitlePlanEntry        = "Plan Entry Error"
	TitleAddonEntry       = "Addon Entry Error"
	TitleAPIKeyCreation   = "API Key Creation Error"
)

const msgRecordNotFound = "Unable to locate record"

// KeyIssuer issues API credentials.
type KeyIssuer interface {
	Issue(ctx context.Context, name, username, password string) (string, error)
}

// Service is a stateless catalog service holding only its collaborators, so
// tests can run it against an isolated store.
type Service struct {
	store    storage.Store
	issuer   KeyIssuer
	reporter apperrors.Reporter
}

// NewService creates a catalog service. A nil reporter logs through slog.
func NewService(store storage.Store, issuer KeyIssuer, reporter apperrors.Reporter) *Service {
	if reporter == nil {
		reporter = apperrors.NewLogReporter(nil)
	}
	return &Service{store: store, issuer: issuer, reporter: reporter}
}

// fail reports err under title and returns it.
func (s *Service) fail(ctx context.Context, title string, err error) error {
	s.reporter.Report(ctx, title, err)
	return err
}

// Reject reports err, a request the transport could not decode, under title
// and returns it.
func (s *Service) Reject(ctx context.Context, title string, err error) error {
	return s.fail(ctx, title, err)
}

// storeError converts a storage error into an AppError. AppErrors pass
// through untouched.
func storeError(err error, notFound, conflict string) error {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.NewNotFoundError(notFound).WithCause(err)
	case errors.Is(err, storage.ErrDuplicate):
		return apperrors.NewConflictError(conflict).WithCause(err)
	default:
		return apperrors.NewStorageError("The database request failed.").WithCause(err)
	}
}

// changesFromPatch turns a validated patch into column changes. Numeric
// fields become float64, boolean fields bool and cleared fields nil. Fields
// not described by rules are dropped.
func changesFromPatch(p *models.Patch, rules []validation.FieldSpec) storage.Changes {
	changes := make(storage.Changes)
	for _, fs := range rules {
		value, cleared, ok := p.Value(fs.Field)
		switch {
		case !ok:
			continue
		case cleared:
			changes[fs.Field] = nil
		case fs.Numeric:
			changes[fs.Field] = validation.ParseCost(value)
		case fs.Tag == "boolean":
			b, _ := strconv.ParseBool(value)
			changes[fs.Field] = b
		default:
			changes[fs.Field] = value
		}
	}
	return changes
}
