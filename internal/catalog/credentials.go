package catalog

import (
	"context"
	"log/slog"

	apperrors "github.com/mmynk/catalog/internal/errors"
)

// IssueKey registers a credential and returns its API key.
func (s *Service) IssueKey(ctx context.Context, name, username, password string) (string, error) {
	if s.issuer == nil {
		return "", s.fail(ctx, TitleAPIKeyCreation, apperrors.NewCredentialError("API key issuance is not configured."))
	}

	key, err := s.issuer.Issue(ctx, name, username, password)
	if err != nil {
		if apperrors.GetAppError(err) == nil {
			err = apperrors.NewCredentialError("Unable to issue an API key.").WithCause(err)
		}
		return "", s.fail(ctx, TitleAPIKeyCreation, err)
	}

	slog.Info("Issued API key", "username", username)
	return key, nil
}
