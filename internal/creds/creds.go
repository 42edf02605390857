// Package creds resolves the Kaggle API credential pair. Resolution
// order is fixed: OS keyring, then the KAGGLE_JSON environment blob,
// then the discrete KAGGLE_USERNAME/KAGGLE_KEY pair. A malformed JSON
// payload in the first two sources counts as absent, not as an error.
package creds

import (
	"encoding/json"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/zalando/go-keyring"

	"github.com/kagglekit/kagglectl/pkg/kerr"
)

const (
	// KeyringService is the service name under which the credential
	// payload is stored in the OS keyring.
	KeyringService = "kagglectl"
	// KeyringUser is the account name for the keyring entry.
	KeyringUser = "api"

	// EnvJSON holds a full {"username","key"} JSON payload.
	EnvJSON = "KAGGLE_JSON"
)

// Credentials is the username/key pair the kaggle CLI authenticates
// with. It is never written into project config files.
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

func (c Credentials) valid() bool {
	return c.Username != "" && c.Key != ""
}

// envPair maps the discrete environment variable fallback.
type envPair struct {
	Username string `envconfig:"KAGGLE_USERNAME"`
	Key      string `envconfig:"KAGGLE_KEY"`
}

// Resolve walks the three credential sources in order and returns the
// first structurally valid pair. All sources absent or invalid yields
// a no_credentials error.
func Resolve() (Credentials, error) {
	if c, ok := fromKeyring(); ok {
		return c, nil
	}
	if c, ok := fromJSON(os.Getenv(EnvJSON)); ok {
		return c, nil
	}

	var p envPair
	if err := envconfig.Process("", &p); err == nil {
		c := Credentials{Username: p.Username, Key: p.Key}
		if c.valid() {
			return c, nil
		}
	}

	return Credentials{}, kerr.Newf(kerr.CodeNoCredentials,
		"no Kaggle credentials found; run 'kagglectl auth login' or set %s, or KAGGLE_USERNAME and KAGGLE_KEY", EnvJSON)
}

func fromKeyring() (Credentials, bool) {
	payload, err := keyring.Get(KeyringService, KeyringUser)
	if err != nil {
		return Credentials{}, false
	}
	return fromJSON(payload)
}

func fromJSON(payload string) (Credentials, bool) {
	if payload == "" {
		return Credentials{}, false
	}
	var c Credentials
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return Credentials{}, false
	}
	if !c.valid() {
		return Credentials{}, false
	}
	return c, true
}

// Store saves the pair into the OS keyring as a JSON payload.
func Store(c Credentials) error {
	if !c.valid() {
		return kerr.Newf(kerr.CodeNoCredentials, "username and key must both be non-empty")
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return keyring.Set(KeyringService, KeyringUser, string(payload))
}

// Clear removes the keyring entry. A missing entry is not an error.
func Clear() error {
	err := keyring.Delete(KeyringService, KeyringUser)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}

// Mask returns the key with all but the edges hidden, for status output.
func Mask(key string) string {
	if key == "" {
		return "<not set>"
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
