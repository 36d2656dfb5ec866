package service

import (
	"context"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mmynk/catalog/internal/catalog"
)

// CredentialService implements the Connect CredentialService
type CredentialService struct {
	catalog *catalog.Service
}

// NewCredentialService creates a new CredentialService backed by the catalog.
func NewCredentialService(svc *catalog.Service) *CredentialService {
	return &CredentialService{catalog: svc}
}

// IssueKey registers {"name", "username", "password"} and returns
// {"apiKey": key}.
func (s *CredentialService) IssueKey(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	fields := fieldsFrom(req.Msg)
	key, err := s.catalog.IssueKey(ctx,
		fields.Get(KeyName),
		fields.Get(KeyUsername),
		fields.Get(KeyPassword),
	)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg, err := newStruct(map[string]any{"apiKey": key})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}
