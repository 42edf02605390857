package project

import (
	"reflect"
	"testing"

	"github.com/kagglekit/kagglectl/pkg/kerr"
)

func sampleConfig() *Config {
	return &Config{
		Project:     "My Project",
		KernelSlug:  "alice/my-project",
		CodeFile:    "train.py",
		Accelerator: AcceleratorGPU,
		Internet:    true,
		Privacy:     PrivacyPrivate,
		Datasets:    []string{"alice/iris"},
		Outputs:     Outputs{DownloadTo: "output"},
	}
}

func TestLoad_NotInitialized(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Expected error for missing kaggle.yml")
	}
	if !kerr.IsCode(err, kerr.CodeNotInitialized) {
		t.Errorf("Expected not_initialized code, got %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := sampleConfig()
	cfg.Competitions = []string{"titanic"}
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("Round trip mismatch:\nsaved  %+v\nloaded %+v", cfg, got)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()

	minimal := &Config{Project: "p", KernelSlug: "a/p", CodeFile: "p.py"}
	if err := minimal.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Accelerator != AcceleratorNone {
		t.Errorf("Expected accelerator none, got %s", got.Accelerator)
	}
	if got.Privacy != PrivacyPrivate {
		t.Errorf("Expected privacy private, got %s", got.Privacy)
	}
	if got.Outputs.DownloadTo != DefaultDownloadDir {
		t.Errorf("Expected download dir %s, got %s", DefaultDownloadDir, got.Outputs.DownloadTo)
	}
}

func TestAttachDataset_SetSemantics(t *testing.T) {
	cfg := sampleConfig()

	if !cfg.AttachDataset("bob/wine") {
		t.Error("Expected first attach to change the set")
	}
	if cfg.AttachDataset("bob/wine") {
		t.Error("Expected duplicate attach to be a no-op")
	}
	if cfg.AttachDataset("alice/iris") {
		t.Error("Expected pre-existing slug attach to be a no-op")
	}
	if len(cfg.Datasets) != 2 {
		t.Errorf("Expected 2 datasets, got %v", cfg.Datasets)
	}
}

func TestAttachCompetition_SetSemantics(t *testing.T) {
	cfg := sampleConfig()

	cfg.AttachCompetition("titanic")
	cfg.AttachCompetition("titanic")
	if len(cfg.Competitions) != 1 {
		t.Errorf("Expected exactly 1 competition, got %v", cfg.Competitions)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"My Project":       "my-project",
		"  Spaces  Galore ": "spaces-galore",
		"Under_score":      "under-score",
		"Weird!!Chars##":   "weirdchars",
		"already-fine":     "already-fine",
		"Trailing space ":  "trailing-space",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestDeriveSlug(t *testing.T) {
	if got := DeriveSlug("alice", "My Project"); got != "alice/my-project" {
		t.Errorf("Expected alice/my-project, got %q", got)
	}
}
