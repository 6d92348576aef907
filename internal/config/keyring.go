package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "yaru"

// KeyringUser is the keyring account the postgres password is stored under.
func (p PostgresConfig) KeyringUser() string {
	return fmt.Sprintf("%s@%s:%d/%s", p.User, p.Host, p.Port, p.Name)
}

// StorePassword saves a database password in the system keyring.
func StorePassword(user, password string) error {
	if err := keyring.Set(keyringService, user, password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}
	return nil
}

// LookupPassword reads a database password from the system keyring. A
// missing entry yields an empty string.
func LookupPassword(user string) (string, error) {
	secret, err := keyring.Get(keyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read password from keyring: %w", err)
	}
	return secret, nil
}

// DeletePassword removes a stored database password.
func DeletePassword(user string) error {
	err := keyring.Delete(keyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("no password stored for %s", user)
	}
	if err != nil {
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	return nil
}

// ResolvePassword fills an empty postgres password from the keyring. An
// unavailable keyring is not an error; the connection will simply be
// attempted without a password.
func (c *Config) ResolvePassword() {
	if c.Storage.Driver != DriverPostgres || c.Storage.Postgres.Password != "" {
		return
	}
	if pw, err := LookupPassword(c.Storage.Postgres.KeyringUser()); err == nil && pw != "" {
		c.Storage.Postgres.Password = pw
	}
}
