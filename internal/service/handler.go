package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/catalog/internal/catalog"
)

// NewHandler mounts every catalog service on one mux.
func NewHandler(svc *catalog.Service, opts ...connect.HandlerOption) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(NewCategoryServiceHandler(NewCategoryService(svc), opts...))
	mux.Handle(NewPlanServiceHandler(NewPlanService(svc), opts...))
	mux.Handle(NewAddonServiceHandler(NewAddonService(svc), opts...))
	mux.Handle(NewCredentialServiceHandler(NewCredentialService(svc), opts...))
	return mux
}
