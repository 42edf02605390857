// Package project owns the per-project descriptor files: kaggle.yml
// (the declarative source of truth), kernel-metadata.json (the
// submission shape the kaggle CLI expects, always re-derived from
// kaggle.yml), and the append-only .run.log history.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kagglekit/kagglectl/pkg/kerr"
)

const (
	// ConfigFile is the tracked project descriptor.
	ConfigFile = "kaggle.yml"
	// MetadataFile is the kaggle CLI submission descriptor, always
	// regenerated from ConfigFile before a push.
	MetadataFile = "kernel-metadata.json"

	// DefaultDownloadDir is where outputs land unless overridden.
	DefaultDownloadDir = "output"
)

// Accelerator is the remote compute class requested for a kernel.
type Accelerator string

const (
	AcceleratorNone Accelerator = "none"
	AcceleratorGPU  Accelerator = "gpu"
	AcceleratorTPU  Accelerator = "tpu"
)

// Privacy controls remote kernel visibility.
type Privacy string

const (
	PrivacyPrivate Privacy = "private"
	PrivacyPublic  Privacy = "public"
)

// Outputs groups output-related settings in kaggle.yml.
type Outputs struct {
	DownloadTo string `yaml:"download_to"`
}

// Config is the declarative project descriptor persisted as kaggle.yml.
// Datasets and Competitions carry set semantics: duplicates collapse
// and ordering is not meaningful.
type Config struct {
	Project      string      `yaml:"project"`
	KernelSlug   string      `yaml:"kernel_slug"`
	CodeFile     string      `yaml:"code_file"`
	Accelerator  Accelerator `yaml:"accelerator"`
	Internet     bool        `yaml:"internet"`
	Privacy      Privacy     `yaml:"privacy"`
	Datasets     []string    `yaml:"datasets"`
	Competitions []string    `yaml:"competitions"`
	Outputs      Outputs     `yaml:"outputs"`
}

// Load reads kaggle.yml from dir. A missing file is the recoverable
// not_initialized condition, so callers can offer to run init.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerr.Newf(kerr.CodeNotInitialized,
				"%s not found; run 'kagglectl init' first", ConfigFile)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.normalize()
	return &cfg, nil
}

// Save rewrites the whole kaggle.yml. There are no partial writes at
// this layer; read-modify-write is the caller's job.
func (c *Config) Save(dir string) error {
	c.normalize()
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	if c.Accelerator == "" {
		c.Accelerator = AcceleratorNone
	}
	if c.Privacy == "" {
		c.Privacy = PrivacyPrivate
	}
	if c.Outputs.DownloadTo == "" {
		c.Outputs.DownloadTo = DefaultDownloadDir
	}
	c.Datasets = dedupe(c.Datasets)
	c.Competitions = dedupe(c.Competitions)
}

// AttachDataset adds a dataset slug with set semantics. Returns true
// when the set actually changed.
func (c *Config) AttachDataset(slug string) bool {
	before := len(c.Datasets)
	c.Datasets = dedupe(append(c.Datasets, slug))
	return len(c.Datasets) != before
}

// AttachCompetition adds a competition slug with set semantics.
func (c *Config) AttachCompetition(slug string) bool {
	before := len(c.Competitions)
	c.Competitions = dedupe(append(c.Competitions, slug))
	return len(c.Competitions) != before
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// DeriveSlug builds the stable owner/name kernel slug from the signed-in
// username and the project name. Once a kernel exists remotely under
// this slug it must not change without an explicit relink.
func DeriveSlug(owner, projectName string) string {
	return owner + "/" + NormalizeName(projectName)
}

// NormalizeName lowercases a project name and reduces it to the
// [a-z0-9-] alphabet the remote service accepts in slugs.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastHyphen := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
