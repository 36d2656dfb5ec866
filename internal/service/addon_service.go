package service

import (
	"context"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mmynk/catalog/internal/catalog"
)

// AddonService implements the Connect AddonService
type AddonService struct {
	catalog *catalog.Service
}

// NewAddonService creates a new AddonService backed by the catalog.
func NewAddonService(svc *catalog.Service) *AddonService {
	return &AddonService{catalog: svc}
}

// rejectID reports a malformed id and converts it for the wire.
func (s *AddonService) rejectID(ctx context.Context, err error) error {
	return toConnectError(s.catalog.Reject(ctx, catalog.TitleAddonEntry, err))
}

// ListAddons returns {"addons": [...]} for "categoryId".
func (s *AddonService) ListAddons(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categoryID, err := idFrom(req.Msg, KeyCategoryID)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	addons, err := s.catalog.ListAddons(ctx, categoryID)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := listStruct("addons", addons, addonMap)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// GetAddon returns one addon.
func (s *AddonService) GetAddon(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categoryID, id, err := childKey(req.Msg)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	addon, err := s.catalog.GetAddon(ctx, categoryID, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := newStruct(addonMap(addon))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// CreateAddon creates an addon under "categoryId".
func (s *AddonService) CreateAddon(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categoryID, err := idFrom(req.Msg, KeyCategoryID)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	addon, err := s.catalog.CreateAddon(ctx, categoryID, fieldsFrom(req.Msg, KeyCategoryID, KeyID))
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := newStruct(addonMap(addon))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// UpdateAddon applies the request fields to one addon.
func (s *AddonService) UpdateAddon(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categoryID, id, err := childKey(req.Msg)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	n, err := s.catalog.UpdateAddon(ctx, categoryID, id, patchFrom(req.Msg, KeyCategoryID, KeyID))
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := rowsStruct(n)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// DeleteAddon removes one addon.
func (s *AddonService) DeleteAddon(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categoryID, id, err := childKey(req.Msg)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	n, err := s.catalog.DeleteAddon(ctx, categoryID, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := rowsStruct(n)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}
