package models

import (
	"time"

	"github.com/google/uuid"
)

// Credential is an issued API credential. PasswordHash is a bcrypt hash and
// must never leave the server.
type Credential struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	APIKey       string
	CreatedAt    int64
}

// NewCredential creates a credential record with a fresh ID and creation time.
func NewCredential(name, username, passwordHash, apiKey string) *Credential {
	return &Credential{
		ID:           uuid.NewString(),
		Name:         name,
		Username:     username,
		PasswordHash: passwordHash,
		APIKey:       apiKey,
		CreatedAt:    time.Now().Unix(),
	}
}
