// Package auth stores the scraping API key in the OS keyring, with a
// file fallback for environments without a keyring daemon (CI, containers).
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for keyring storage
	KeyringService = "yelpcrawl"
	// KeyringUser is the account name the API key is stored under
	KeyringUser = "api-key"
	// FallbackDir holds the credential file when the keyring is unavailable
	FallbackDir  = ".yelpcrawl"
	fallbackFile = "credentials"
)

// ErrNoAPIKey is returned when no API key has been stored.
var ErrNoAPIKey = errors.New("no API key stored; run 'yelpcrawl auth set' or set YELPCRAWL_API_KEY")

// useFileBasedStorage checks if we should bypass the keyring.
// Cached because probing the keyring can prompt on some desktops.
var fileBasedStorageCache *bool

func useFileBasedStorage() bool {
	if fileBasedStorageCache != nil {
		return *fileBasedStorageCache
	}

	if os.Getenv("CODESPACES") != "" || os.Getenv("CI") != "" {
		result := true
		fileBasedStorageCache = &result
		return true
	}

	testKey := "_test_keyring_access_"
	err := keyring.Set(KeyringService, testKey, "test")
	result := err != nil
	fileBasedStorageCache = &result
	if !result {
		keyring.Delete(KeyringService, testKey)
	}
	return result
}

func fallbackPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, FallbackDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, fallbackFile), nil
}

// SaveAPIKey stores the API key securely.
func SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("api key must not be empty")
	}

	if useFileBasedStorage() {
		path, err := fallbackPath()
		if err != nil {
			return fmt.Errorf("failed to resolve credential path: %w", err)
		}
		return os.WriteFile(path, []byte(key), 0600)
	}
	return keyring.Set(KeyringService, KeyringUser, key)
}

// LoadAPIKey retrieves the stored API key. Returns ErrNoAPIKey when nothing
// has been stored yet.
func LoadAPIKey() (string, error) {
	if useFileBasedStorage() {
		path, err := fallbackPath()
		if err != nil {
			return "", fmt.Errorf("failed to resolve credential path: %w", err)
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoAPIKey
		}
		if err != nil {
			return "", err
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", ErrNoAPIKey
		}
		return key, nil
	}

	key, err := keyring.Get(KeyringService, KeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoAPIKey
	}
	if err != nil {
		return "", err
	}
	return key, nil
}

// DeleteAPIKey removes the stored API key. Missing credentials are not an
// error.
func DeleteAPIKey() error {
	if useFileBasedStorage() {
		path, err := fallbackPath()
		if err != nil {
			return err
		}
		err = os.Remove(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	err := keyring.Delete(KeyringService, KeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// Redact returns a display-safe form of the key for `auth show`.
func Redact(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
