// Package auth issues API credentials.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/mmynk/catalog/internal/errors"
	"github.com/mmynk/catalog/internal/models"
	"github.com/mmynk/catalog/internal/validation"
)

// APIKeyBytes is the number of random bytes in an API key (128 bits).
const APIKeyBytes = 16

// ErrRandomSource is wrapped by errors caused by the random byte source.
var ErrRandomSource = errors.New("random source unavailable")

// CredentialStorage defines the persistence the issuer needs.
// This allows the issuer to be independent of the storage implementation.
type CredentialStorage interface {
	CreateCredential(ctx context.Context, credential *models.Credential) error
}

// Issuer mints API keys and stores the resulting credentials.
type Issuer struct {
	storage    CredentialStorage
	random     io.Reader
	bcryptCost int
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithRandom replaces crypto/rand.Reader as the source of API key bytes.
func WithRandom(r io.Reader) Option {
	return func(i *Issuer) { i.random = r }
}

// WithBcryptCost sets the bcrypt cost used to hash passwords.
func WithBcryptCost(cost int) Option {
	return func(i *Issuer) { i.bcryptCost = cost }
}

// NewIssuer creates a new credential issuer.
func NewIssuer(storage CredentialStorage, opts ...Option) *Issuer {
	i := &Issuer{
		storage:    storage,
		random:     rand.Reader,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GenerateAPIKey reads APIKeyBytes from r and hex-encodes them.
func GenerateAPIKey(r io.Reader) (string, error) {
	b := make([]byte, APIKeyBytes)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return hex.EncodeToString(b), nil
}

// Issue validates the request, generates an API key, hashes the password and
// persists the credential. It returns the API key only when all of that
// succeeded; no record is written when key generation or hashing fails.
func (i *Issuer) Issue(ctx context.Context, name, username, password string) (string, error) {
	if err := validation.Credential(name, username, password); err != nil {
		return "", err
	}

	apiKey, err := GenerateAPIKey(i.random)
	if err != nil {
		return "", apperrors.NewCredentialError("Unable to generate an API key.").WithCause(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), i.bcryptCost)
	if err != nil {
		return "", apperrors.NewCredentialError("Unable to hash the password.").WithCause(err)
	}

	credential := models.NewCredential(name, username, string(hash), apiKey)
	if err := i.storage.CreateCredential(ctx, credential); err != nil {
		return "", apperrors.NewStorageError("Unable to save the credential.").WithCause(err)
	}

	return apiKey, nil
}
