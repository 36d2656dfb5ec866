package sqlstore

import (
	"context"

	"github.com/mmynk/catalog/internal/models"
)

type credentialRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	APIKey       string `db:"api_key"`
	CreatedAt    int64  `db:"created_at"`
}

// CreateCredential inserts an issued credential.
func (s *Store) CreateCredential(ctx context.Context, c *models.Credential) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO credentials (id, name, username, password_hash, api_key, created_at)
		VALUES (:id, :name, :username, :password_hash, :api_key, :created_at)`,
		credentialRow{
			ID:           c.ID,
			Name:         c.Name,
			Username:     c.Username,
			PasswordHash: c.PasswordHash,
			APIKey:       c.APIKey,
			CreatedAt:    c.CreatedAt,
		},
	)
	if err != nil {
		return wrapWriteError("create credential", err)
	}
	return nil
}
