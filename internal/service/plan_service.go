package service

import (
	"context"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mmynk/catalog/internal/catalog"
)

// PlanService implements the Connect PlanService
type PlanService struct {
	catalog *catalog.Service
}

// NewPlanService creates a new PlanService backed by the catalog.
func NewPlanService(svc *catalog.Service) *PlanService {
	return &PlanService{catalog: svc}
}

// rejectID reports a malformed id and converts it for the wire.
func (s *PlanService) rejectID(ctx context.Context, err error) error {
	return toConnectError(s.catalog.Reject(ctx, catalog.TitlePlanEntry, err))
}

// childKey reads the (categoryId, id) pair addressing a plan or addon.
func childKey(msg *structpb.Struct) (categoryID, id int64, err error) {
	if categoryID, err = idFrom(msg, KeyCategoryID); err != nil {
		return 0, 0, err
	}
	if id, err = idFrom(msg, KeyID); err != nil {
		return 0, 0, err
	}
	return categoryID, id, nil
}

// ListPlans returns {"plans": [...]} for "categoryId".
func (s *PlanService) ListPlans(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categoryID, err := idFrom(req.Msg, KeyCategoryID)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	plans, err := s.catalog.ListPlans(ctx, categoryID)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := listStruct("plans", plans, planMap)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// GetPlan returns one plan.
func (s *PlanService) GetPlan(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categoryID, id, err := childKey(req.Msg)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	plan, err := s.catalog.GetPlan(ctx, categoryID, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := newStruct(planMap(plan))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// CreatePlan creates a plan under "categoryId" and returns it with its id.
func (s *PlanService) CreatePlan(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categoryID, err := idFrom(req.Msg, KeyCategoryID)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	plan, err := s.catalog.CreatePlan(ctx, categoryID, fieldsFrom(req.Msg, KeyCategoryID, KeyID))
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := newStruct(planMap(plan))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// UpdatePlan applies the request fields to one plan. A null value clears a
// field; an empty string leaves it alone.
func (s *PlanService) UpdatePlan(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categoryID, id, err := childKey(req.Msg)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	n, err := s.catalog.UpdatePlan(ctx, categoryID, id, patchFrom(req.Msg, KeyCategoryID, KeyID))
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := rowsStruct(n)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}

// DeletePlan removes one plan and returns {"rowsAffected": n}.
func (s *PlanService) DeletePlan(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	categoryID, id, err := childKey(req.Msg)
	if err != nil {
		return nil, s.rejectID(ctx, err)
	}
	n, err := s.catalog.DeletePlan(ctx, categoryID, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := rowsStruct(n)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}
