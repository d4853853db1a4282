package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadDBKeyUsesEnvVarFirst(t *testing.T) {
	t.Setenv("BILLLABEL_DB_KEY", "  env-key  ")

	origGet := keyringGet
	defer func() { keyringGet = origGet }()

	keyringCalled := false
	keyringGet = func(service, user string) (string, error) {
		keyringCalled = true
		return "keyring-key", nil
	}

	got, err := LoadDBKey()
	if err != nil {
		t.Fatalf("LoadDBKey() unexpected error: %v", err)
	}
	if got != "env-key" {
		t.Fatalf("LoadDBKey() = %q, want %q", got, "env-key")
	}
	if keyringCalled {
		t.Fatal("LoadDBKey() called keyringGet even though BILLLABEL_DB_KEY was set")
	}
}

func TestLoadDBKeyFallsBackToKeyring(t *testing.T) {
	t.Setenv("BILLLABEL_DB_KEY", "")
	t.Setenv("BILLLABEL_KEYCHAIN_SERVICE", "svc")
	t.Setenv("BILLLABEL_KEYCHAIN_ACCOUNT", "acct")

	origGet := keyringGet
	defer func() { keyringGet = origGet }()

	var gotService, gotUser string
	keyringGet = func(service, user string) (string, error) {
		gotService = service
		gotUser = user
		return "  keyring-key  ", nil
	}

	got, err := LoadDBKey()
	if err != nil {
		t.Fatalf("LoadDBKey() unexpected error: %v", err)
	}
	if got != "keyring-key" {
		t.Fatalf("LoadDBKey() = %q, want %q", got, "keyring-key")
	}
	if gotService != "svc" || gotUser != "acct" {
		t.Fatalf("keyringGet called with (%q, %q), want (%q, %q)", gotService, gotUser, "svc", "acct")
	}
}

func TestLoadDBKeyReturnsErrorWhenKeyringFails(t *testing.T) {
	t.Setenv("BILLLABEL_DB_KEY", "")

	origGet := keyringGet
	defer func() { keyringGet = origGet }()

	keyringGet = func(service, user string) (string, error) {
		return "", errors.New("keyring unavailable")
	}

	if _, err := LoadDBKey(); err == nil {
		t.Fatal("LoadDBKey() error = nil, want keyring failure")
	}
}

func TestLoadDBKeyReturnsErrorWhenKeyEmpty(t *testing.T) {
	t.Setenv("BILLLABEL_DB_KEY", "")

	origGet := keyringGet
	defer func() { keyringGet = origGet }()

	keyringGet = func(service, user string) (string, error) {
		return "   ", nil
	}

	_, err := LoadDBKey()
	if err == nil {
		t.Fatal("LoadDBKey() error = nil, want empty-key error")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Fatalf("LoadDBKey() error = %v, want empty-key error", err)
	}
}

func TestSaveDBKeySavesTrimmedKey(t *testing.T) {
	origSet := keyringSet
	defer func() { keyringSet = origSet }()

	var gotValue string
	keyringSet = func(service, user, value string) error {
		gotValue = value
		return nil
	}

	if err := SaveDBKey("  some-key  "); err != nil {
		t.Fatalf("SaveDBKey() unexpected error: %v", err)
	}
	if gotValue != "some-key" {
		t.Fatalf("stored key = %q, want %q", gotValue, "some-key")
	}
}

func TestSaveDBKeyRejectsEmptyKey(t *testing.T) {
	origSet := keyringSet
	defer func() { keyringSet = origSet }()

	keyringSet = func(service, user, value string) error {
		t.Fatal("keyringSet called for empty key")
		return nil
	}

	if err := SaveDBKey("   "); err == nil {
		t.Fatal("SaveDBKey() error = nil, want empty-key error")
	}
}

func TestSaveDBKeyReturnsErrorWhenKeyringSetFails(t *testing.T) {
	origSet := keyringSet
	defer func() { keyringSet = origSet }()

	keyringSet = func(service, user, value string) error {
		return errors.New("keyring write failed")
	}

	if err := SaveDBKey("some-key"); err == nil {
		t.Fatal("SaveDBKey() error = nil, want keyring failure")
	}
}
