package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMetadata_GPUProjection(t *testing.T) {
	cfg := &Config{
		Project:     "My Run",
		KernelSlug:  "alice/my-run",
		CodeFile:    "train.py",
		Accelerator: AcceleratorGPU,
		Internet:    true,
		Privacy:     PrivacyPrivate,
		Datasets:    []string{"alice/iris"},
	}

	m := cfg.Metadata()
	if !m.EnableGPU {
		t.Error("Expected enable_gpu true")
	}
	if m.EnableTPU {
		t.Error("Expected enable_tpu false")
	}
	if !m.EnableInternet {
		t.Error("Expected enable_internet true")
	}
	if !reflect.DeepEqual(m.DatasetSources, []string{"alice/iris"}) {
		t.Errorf("Expected dataset_sources [alice/iris], got %v", m.DatasetSources)
	}
	if m.ID != "alice/my-run" {
		t.Errorf("Expected id alice/my-run, got %s", m.ID)
	}
	if m.Language != "python" {
		t.Errorf("Expected language python, got %s", m.Language)
	}
}

func TestMetadata_TPUProjection(t *testing.T) {
	cfg := &Config{Accelerator: AcceleratorTPU}

	m := cfg.Metadata()
	if m.EnableGPU || !m.EnableTPU {
		t.Errorf("Expected tpu only, got gpu=%v tpu=%v", m.EnableGPU, m.EnableTPU)
	}
}

func TestMetadata_KernelType(t *testing.T) {
	script := &Config{CodeFile: "train.py"}
	if got := script.Metadata().KernelType; got != "script" {
		t.Errorf("Expected script, got %s", got)
	}

	notebook := &Config{CodeFile: "explore.ipynb"}
	if got := notebook.Metadata().KernelType; got != "notebook" {
		t.Errorf("Expected notebook, got %s", got)
	}
}

func TestMetadata_Privacy(t *testing.T) {
	private := &Config{Privacy: PrivacyPrivate}
	if !private.Metadata().IsPrivate {
		t.Error("Expected is_private true for private config")
	}

	public := &Config{Privacy: PrivacyPublic}
	if public.Metadata().IsPrivate {
		t.Error("Expected is_private false for public config")
	}
}

func TestMetadata_SaveShape(t *testing.T) {
	dir := t.TempDir()

	cfg := sampleConfig()
	if err := cfg.Metadata().Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		t.Fatalf("reading metadata file: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("metadata file is not valid JSON: %v", err)
	}
	for _, key := range []string{
		"id", "title", "code_file", "language", "kernel_type",
		"is_private", "enable_gpu", "enable_tpu", "enable_internet",
		"dataset_sources", "competition_sources",
	} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected key %q in kernel-metadata.json", key)
		}
	}
}
