package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mmynk/catalog/internal/catalog"
	"github.com/mmynk/catalog/internal/models"
)

// CategoryService implements the Connect CategoryService
type CategoryService struct {
	catalog *catalog.Service
}

// NewCategoryService creates a new CategoryService backed by the catalog.
func NewCategoryService(svc *catalog.Service) *CategoryService {
	return &CategoryService{catalog: svc}
}

// rejectID reports a malformed id and converts it for the wire.
func (s *CategoryService) rejectID(ctx context.Context, err error) error {
	return toConnectError(s.catalog.Reject(ctx, catalog.TitleCategoryEntry, err))
}

// ListCategories returns {"categories": [...]} ordered by id.
func (s *CategoryService) ListCategories(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := listStruct("categories", categories, categoryMap)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// GetCategory returns the category named by "id".
func (s *CategoryService) GetCategory(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	id, err := idFrom(req.Msg, KeyID)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	category, err := s.catalog.GetCategory(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := newStruct(categoryMap(category))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// CreateCategory creates a category from the request fields and returns it.
func (s *CategoryService) CreateCategory(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	fields := fieldsFrom(req.Msg, models.FieldCategoryID)
	slog.Debug("CreateCategory request", "name", fields.Get(models.FieldCategoryName))

	category, err := s.catalog.CreateCategory(ctx, fields)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := newStruct(categoryMap(category))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// UpdateCategory updates the category named by "id" and returns
// {"rowsAffected": n}.
func (s *CategoryService) UpdateCategory(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	n, err := s.catalog.UpdateCategory(ctx, fieldsFrom(req.Msg))
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := rowsStruct(n)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}
