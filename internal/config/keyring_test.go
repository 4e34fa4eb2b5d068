package config

import (
	"errors"
	"testing"
)

// mockKeyring implements the keyringProvider interface for testing
type mockKeyring struct {
	store map[string]string
	err   error
}

func noEnv(string) string { return "" }

func newMockKeyring() *mockKeyring {
	return &mockKeyring{
		store: make(map[string]string),
	}
}

func (m *mockKeyring) Get(service, user string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	key := service + ":" + user
	val, ok := m.store[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (m *mockKeyring) Set(service, user, password string) error {
	if m.err != nil {
		return m.err
	}
	key := service + ":" + user
	m.store[key] = password
	return nil
}

func (m *mockKeyring) Delete(service, user string) error {
	if m.err != nil {
		return m.err
	}
	key := service + ":" + user
	delete(m.store, key)
	return nil
}

func TestSetToken(t *testing.T) {
	mock := newMockKeyring()
	ks := &KeyringStore{provider: mock, getenv: noEnv}

	err := ks.SetToken("test-api-token")
	if err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	// Verify it was stored
	stored, err := mock.Get(serviceName, userName)
	if err != nil {
		t.Fatalf("Failed to verify stored token: %v", err)
	}

	if stored != "test-api-token" {
		t.Errorf("Expected stored token to be 'test-api-token', got %s", stored)
	}
}

func TestGetToken_Success(t *testing.T) {
	mock := newMockKeyring()
	ks := &KeyringStore{provider: mock, getenv: noEnv}

	// Store a token first
	mock.Set(serviceName, userName, "my-secret-token")

	// Retrieve it
	token, err := ks.GetToken()
	if err != nil {
		t.Fatalf("GetToken() failed: %v", err)
	}

	if token != "my-secret-token" {
		t.Errorf("Expected token to be 'my-secret-token', got %s", token)
	}
}

func TestGetToken_NotFound(t *testing.T) {
	mock := newMockKeyring()
	ks := &KeyringStore{provider: mock, getenv: noEnv}

	// Try to get a token when none exists
	token, err := ks.GetToken()
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if token != "" {
		t.Errorf("Expected empty token, got %s", token)
	}
}

func TestDeleteToken(t *testing.T) {
	mock := newMockKeyring()
	ks := &KeyringStore{provider: mock, getenv: noEnv}

	// Store a token first
	ks.SetToken("token-to-delete")

	// Delete it
	err := ks.DeleteToken()
	if err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}

	// Verify it's deleted
	_, err = mock.Get(serviceName, userName)
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after deletion, got %v", err)
	}
}

func TestSetToken_Error(t *testing.T) {
	mock := newMockKeyring()
	mock.err = errors.New("keyring access denied")
	ks := &KeyringStore{provider: mock, getenv: noEnv}

	err := ks.SetToken("test-token")
	if err == nil {
		t.Error("Expected SetToken to fail with keyring error")
	}
}

func TestGetToken_Error(t *testing.T) {
	mock := newMockKeyring()
	mock.err = errors.New("keyring access denied")
	ks := &KeyringStore{provider: mock, getenv: noEnv}

	_, err := ks.GetToken()
	if err == nil {
		t.Error("Expected GetToken to fail with keyring error")
	}
}

func TestNewKeyringStore(t *testing.T) {
	ks := NewKeyringStore()
	if ks == nil {
		t.Error("NewKeyringStore() returned nil")
	}

	// Verify it has a provider
	if ks.provider == nil {
		t.Error("KeyringStore provider is nil")
	}
}

func TestSetToken_EmptyToken(t *testing.T) {
	mock := newMockKeyring()
	ks := &KeyringStore{provider: mock, getenv: noEnv}

	err := ks.SetToken("")
	if err == nil {
		t.Error("Expected SetToken to fail with empty token")
	}
}

func TestGetToken_EnvOverridesKeyring(t *testing.T) {
	mock := newMockKeyring()
	mock.Set(serviceName, userName, "from-keyring")
	env := map[string]string{TokenEnvVar: "from-env"}
	ks := &KeyringStore{provider: mock, getenv: func(k string) string { return env[k] }}

	token, err := ks.GetToken()
	if err != nil {
		t.Fatalf("GetToken() failed: %v", err)
	}
	if token != "from-env" {
		t.Errorf("Expected env token, got %s", token)
	}
}
