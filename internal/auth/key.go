package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	defaultSecretService = "billlabel"
	defaultSecretUser    = "db_key"
)

var (
	keyringGet = keyring.Get
	keyringSet = keyring.Set
)

// LoadDBKey loads the key the local session database is encrypted with.
//
// Order of precedence:
// 1) BILLLABEL_DB_KEY environment variable.
// 2) System credential store item referenced by service/account.
func LoadDBKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv("BILLLABEL_DB_KEY")); key != "" {
		return key, nil
	}

	key, err := loadFromKeyring()
	if err != nil {
		return "", err
	}

	if key == "" {
		return "", errors.New("db key is empty")
	}

	return key, nil
}

// SaveDBKey stores the db key in the system credential store.
func SaveDBKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return errors.New("db key cannot be empty")
	}

	service := envOrDefault("BILLLABEL_KEYCHAIN_SERVICE", defaultSecretService)
	account := envOrDefault("BILLLABEL_KEYCHAIN_ACCOUNT", defaultSecretUser)

	if err := keyringSet(service, account, trimmed); err != nil {
		return fmt.Errorf(
			"failed to store keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}

	return nil
}

func loadFromKeyring() (string, error) {
	service := envOrDefault("BILLLABEL_KEYCHAIN_SERVICE", defaultSecretService)
	account := envOrDefault("BILLLABEL_KEYCHAIN_ACCOUNT", defaultSecretUser)

	secret, err := keyringGet(service, account)
	if err != nil {
		return "", fmt.Errorf(
			"failed to read keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}

	return strings.TrimSpace(secret), nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
