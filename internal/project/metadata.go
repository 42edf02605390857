package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Metadata mirrors the kernel-metadata.json shape the kaggle CLI
// requires for a push. It is a pure projection of Config and is
// regenerated immediately before every submission; hand edits to the
// JSON file do not survive a sync.
type Metadata struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	CodeFile           string   `json:"code_file"`
	Language           string   `json:"language"`
	KernelType         string   `json:"kernel_type"`
	IsPrivate          bool     `json:"is_private"`
	EnableGPU          bool     `json:"enable_gpu"`
	EnableTPU          bool     `json:"enable_tpu"`
	EnableInternet     bool     `json:"enable_internet"`
	DatasetSources     []string `json:"dataset_sources"`
	CompetitionSources []string `json:"competition_sources"`
}

// kernelLanguage is fixed for this tool; the platform also accepts R
// but the project workflows here are Python-only.
const kernelLanguage = "python"

// Metadata derives the submission descriptor from the config.
func (c *Config) Metadata() Metadata {
	kind := "script"
	if strings.EqualFold(filepath.Ext(c.CodeFile), ".ipynb") {
		kind = "notebook"
	}

	return Metadata{
		ID:                 c.KernelSlug,
		Title:              c.Project,
		CodeFile:           c.CodeFile,
		Language:           kernelLanguage,
		KernelType:         kind,
		IsPrivate:          c.Privacy != PrivacyPublic,
		EnableGPU:          c.Accelerator == AcceleratorGPU,
		EnableTPU:          c.Accelerator == AcceleratorTPU,
		EnableInternet:     c.Internet,
		DatasetSources:     append([]string(nil), c.Datasets...),
		CompetitionSources: append([]string(nil), c.Competitions...),
	}
}

// Save writes kernel-metadata.json into dir, whole-file.
func (m Metadata) Save(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	path := filepath.Join(dir, MetadataFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
