package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "gitspatial-tui"
	userName    = "token"

	// TokenEnvVar overrides the keyring when set.
	TokenEnvVar = "GITSPATIAL_TOKEN"
)

// ErrNotFound is returned when no API token is stored in the keyring
var ErrNotFound = errors.New("API token not found in keyring")

// keyringProvider defines the interface for keyring operations
// This allows for mocking in tests
type keyringProvider interface {
	Get(service, user string) (string, error)
	Set(service, user, password string) error
	Delete(service, user string) error
}

// systemKeyring is a wrapper around the go-keyring library
type systemKeyring struct{}

func (s *systemKeyring) Get(service, user string) (string, error) {
	secret, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return secret, nil
}

func (s *systemKeyring) Set(service, user, password string) error {
	return keyring.Set(service, user, password)
}

func (s *systemKeyring) Delete(service, user string) error {
	return keyring.Delete(service, user)
}

// KeyringStore manages API token storage in the system keyring
type KeyringStore struct {
	provider keyringProvider
	getenv   func(string) string
}

// NewKeyringStore creates a new KeyringStore with the system keyring
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{
		provider: &systemKeyring{},
		getenv:   os.Getenv,
	}
}

// SetToken stores the API token in the system keyring
func (k *KeyringStore) SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	if err := k.provider.Set(serviceName, userName, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}

	return nil
}

// GetToken returns the API token. GITSPATIAL_TOKEN takes precedence over
// the keyring.
func (k *KeyringStore) GetToken() (string, error) {
	if k.getenv != nil {
		if token := k.getenv(TokenEnvVar); token != "" {
			return token, nil
		}
	}

	token, err := k.provider.Get(serviceName, userName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to retrieve token from keyring: %w", err)
	}

	return token, nil
}

// DeleteToken removes the API token from the system keyring
func (k *KeyringStore) DeleteToken() error {
	if err := k.provider.Delete(serviceName, userName); err != nil {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}

	return nil
}
