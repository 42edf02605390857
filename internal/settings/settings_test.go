package settings

import (
	"os"
	"testing"
	"time"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(dir)
	t.Cleanup(func() { os.Chdir(oldWd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Binary != "kaggle" {
		t.Errorf("Expected binary kaggle, got %s", s.Binary)
	}
	if !s.AutoDownload {
		t.Error("Expected autoDownload default true")
	}
	if s.PollInterval != 5 || s.PollTimeout != 300 {
		t.Errorf("Expected 5/300, got %d/%d", s.PollInterval, s.PollTimeout)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	chdirTemp(t)

	cfg := "binary: /opt/kaggle/bin/kaggle\npollInterval: 10\nautoDownload: false\n"
	os.WriteFile(".kagglectl.yaml", []byte(cfg), 0o644)

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Binary != "/opt/kaggle/bin/kaggle" {
		t.Errorf("Expected binary override, got %s", s.Binary)
	}
	if s.PollInterval != 10 {
		t.Errorf("Expected interval 10, got %d", s.PollInterval)
	}
	if s.AutoDownload {
		t.Error("Expected autoDownload false")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	chdirTemp(t)

	os.WriteFile(".kagglectl.yaml", []byte("pollTimeout: 60\n"), 0o644)
	t.Setenv("KAGGLECTL_POLLTIMEOUT", "120")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.PollTimeout != 120 {
		t.Errorf("Expected env to win with 120, got %d", s.PollTimeout)
	}
}

func TestInterval_Floor(t *testing.T) {
	s := &Settings{PollInterval: 0}
	if got := s.Interval(); got != time.Second {
		t.Errorf("Expected 1s floor, got %s", got)
	}

	s.PollInterval = 3
	if got := s.Interval(); got != 3*time.Second {
		t.Errorf("Expected 3s, got %s", got)
	}
}
