package creds

import (
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/kagglekit/kagglectl/pkg/kerr"
)

func clearEnv(t *testing.T) {
	t.Setenv(EnvJSON, "")
	t.Setenv("KAGGLE_USERNAME", "")
	t.Setenv("KAGGLE_KEY", "")
}

func TestResolve_FromKeyring(t *testing.T) {
	keyring.MockInit()
	clearEnv(t)

	if err := Store(Credentials{Username: "alice", Key: "s3cret"}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Username != "alice" || got.Key != "s3cret" {
		t.Errorf("Expected alice/s3cret, got %+v", got)
	}
}

func TestResolve_FromJSONEnv(t *testing.T) {
	keyring.MockInit()
	clearEnv(t)
	t.Setenv(EnvJSON, `{"username":"bob","key":"abc123"}`)

	got, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Username != "bob" || got.Key != "abc123" {
		t.Errorf("Expected bob/abc123, got %+v", got)
	}
}

func TestResolve_FromEnvPair(t *testing.T) {
	keyring.MockInit()
	clearEnv(t)
	t.Setenv("KAGGLE_USERNAME", "carol")
	t.Setenv("KAGGLE_KEY", "k3y")

	got, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Username != "carol" || got.Key != "k3y" {
		t.Errorf("Expected carol/k3y, got %+v", got)
	}
}

func TestResolve_KeyringWinsOverEnv(t *testing.T) {
	keyring.MockInit()
	clearEnv(t)

	if err := Store(Credentials{Username: "alice", Key: "s3cret"}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	t.Setenv("KAGGLE_USERNAME", "carol")
	t.Setenv("KAGGLE_KEY", "k3y")

	got, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("Expected keyring entry to win, got %+v", got)
	}
}

func TestResolve_MalformedJSONFallsThrough(t *testing.T) {
	keyring.MockInit()
	clearEnv(t)

	// corrupt payload in the keyring must not abort resolution
	keyring.Set(KeyringService, KeyringUser, "{not json")
	t.Setenv(EnvJSON, `{"username":"bob"}`) // missing key, also invalid
	t.Setenv("KAGGLE_USERNAME", "carol")
	t.Setenv("KAGGLE_KEY", "k3y")

	got, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Username != "carol" {
		t.Errorf("Expected env pair after fallthrough, got %+v", got)
	}
}

func TestResolve_NoSources(t *testing.T) {
	keyring.MockInit()
	clearEnv(t)

	_, err := Resolve()
	if err == nil {
		t.Fatal("Expected error with no sources")
	}
	if !kerr.IsCode(err, kerr.CodeNoCredentials) {
		t.Errorf("Expected no_credentials code, got %v", err)
	}
}

func TestStore_RejectsEmptyFields(t *testing.T) {
	keyring.MockInit()

	if err := Store(Credentials{Username: "alice"}); err == nil {
		t.Error("Expected error for empty key")
	}
}

func TestClear_MissingEntryIsFine(t *testing.T) {
	keyring.MockInit()

	if err := Clear(); err != nil {
		t.Errorf("Clear on empty keyring failed: %v", err)
	}
}

func TestMask(t *testing.T) {
	if got := Mask(""); got != "<not set>" {
		t.Errorf("Expected <not set>, got %q", got)
	}
	if got := Mask("short"); got != "***" {
		t.Errorf("Expected ***, got %q", got)
	}
	if got := Mask("0123456789abcdef"); got != "0123...cdef" {
		t.Errorf("Expected 0123...cdef, got %q", got)
	}
}
