package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
)

// Fully-qualified service names.
const (
	CategoryServiceName   = "catalog.v1.CategoryService"
	PlanServiceName       = "catalog.v1.PlanService"
	AddonServiceName      = "catalog.v1.AddonService"
	CredentialServiceName = "catalog.v1.CredentialService"
)

// Procedure paths. Every procedure takes and returns a google.protobuf.Struct.
const (
	ListCategoriesProcedure = "/" + CategoryServiceName + "/ListCategories"
	GetCategoryProcedure    = "/" + CategoryServiceName + "/GetCategory"
	CreateCategoryProcedure = "/" + CategoryServiceName + "/CreateCategory"
	UpdateCategoryProcedure = "/" + CategoryServiceName + "/UpdateCategory"

	ListPlansProcedure  = "/" + PlanServiceName + "/ListPlans"
	GetPlanProcedure    = "/" + PlanServiceName + "/GetPlan"
	CreatePlanProcedure = "/" + PlanServiceName + "/CreatePlan"
	UpdatePlanProcedure = "/" + PlanServiceName + "/UpdatePlan"
	DeletePlanProcedure = "/" + PlanServiceName + "/DeletePlan"

	ListAddonsProcedure  = "/" + AddonServiceName + "/ListAddons"
	GetAddonProcedure    = "/" + AddonServiceName + "/GetAddon"
	CreateAddonProcedure = "/" + AddonServiceName + "/CreateAddon"
	UpdateAddonProcedure = "/" + AddonServiceName + "/UpdateAddon"
	DeleteAddonProcedure = "/" + AddonServiceName + "/DeleteAddon"

	IssueKeyProcedure = "/" + CredentialServiceName + "/IssueKey"
)

type route struct {
	procedure string
	method    func(context.Context, *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error)
}

// newServiceHandler mounts routes under one service path, the way generated
// Connect handlers do.
func newServiceHandler(serviceName string, routes []route, opts ...connect.HandlerOption) (string, http.Handler) {
	handlers := make(map[string]*connect.Handler, len(routes))
	for _, r := range routes {
		handlers[r.procedure] = connect.NewUnaryHandler(r.procedure, r.method, opts...)
	}
	path := "/" + serviceName + "/"
	return path, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// NewCategoryServiceHandler builds an HTTP handler for the category service.
func NewCategoryServiceHandler(svc *CategoryService, opts ...connect.HandlerOption) (string, http.Handler) {
	return newServiceHandler(CategoryServiceName, []route{
		{ListCategoriesProcedure, svc.ListCategories},
		{GetCategoryProcedure, svc.GetCategory},
		{CreateCategoryProcedure, svc.CreateCategory},
		{UpdateCategoryProcedure, svc.UpdateCategory},
	}, opts...)
}

// NewPlanServiceHandler builds an HTTP handler for the plan service.
func NewPlanServiceHandler(svc *PlanService, opts ...connect.HandlerOption) (string, http.Handler) {
	return newServiceHandler(PlanServiceName, []route{
		{ListPlansProcedure, svc.ListPlans},
		{GetPlanProcedure, svc.GetPlan},
		{CreatePlanProcedure, svc.CreatePlan},
		{UpdatePlanProcedure, svc.UpdatePlan},
		{DeletePlanProcedure, svc.DeletePlan},
	}, opts...)
}

// NewAddonServiceHandler builds an HTTP handler for the addon service.
func NewAddonServiceHandler(svc *AddonService, opts ...connect.HandlerOption) (string, http.Handler) {
	return newServiceHandler(AddonServiceName, []route{
		{ListAddonsProcedure, svc.ListAddons},
		{GetAddonProcedure, svc.GetAddon},
		{CreateAddonProcedure, svc.CreateAddon},
		{UpdateAddonProcedure, svc.UpdateAddon},
		{DeleteAddonProcedure, svc.DeleteAddon},
	}, opts...)
}

// NewCredentialServiceHandler builds an HTTP handler for the credential service.
func NewCredentialServiceHandler(svc *CredentialService, opts ...connect.HandlerOption) (string, http.Handler) {
	return newServiceHandler(CredentialServiceName, []route{
		{IssueKeyProcedure, svc.IssueKey},
	}, opts...)
}

// Client calls catalog procedures on a remote server.
type Client struct {
	httpClient connect.HTTPClient
	baseURL    string
	opts       []connect.ClientOption
}

// NewClient creates a client for the server at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		opts:       opts,
	}
}

// Call invokes procedure with msg.
func (c *Client) Call(ctx context.Context, procedure string, msg map[string]any) (*connect.Response[structpb.Struct], error) {
	req, err := structpb.NewStruct(msg)
	if err != nil {
		return nil, err
	}
	client := connect.NewClient[structpb.Struct, structpb.Struct](c.httpClient, c.baseURL+procedure, c.opts...)
	return client.CallUnary(ctx, connect.NewRequest(req))
}
