// Package settings loads tool-level configuration: which binary to
// invoke, whether pushes auto-download outputs, and the poll loop
// timing. Project state lives in kaggle.yml and is handled by the
// project package; settings here only shape how the tool behaves.
package settings

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "KAGGLECTL"
	ConfigName = ".kagglectl"

	BinaryKey       = "binary"
	AutoDownloadKey = "autoDownload"
	PollIntervalKey = "pollInterval"
	PollTimeoutKey  = "pollTimeout"
	ServiceURLKey   = "serviceUrl"
)

// Settings is the resolved tool configuration. Interval and timeout are
// whole seconds, matching how they appear in config files and env vars.
type Settings struct {
	Binary       string `mapstructure:"binary"`
	AutoDownload bool   `mapstructure:"autoDownload"`
	PollInterval int    `mapstructure:"pollInterval"`
	PollTimeout  int    `mapstructure:"pollTimeout"`
	ServiceURL   string `mapstructure:"serviceUrl"`

	v *viper.Viper // instance-specific viper
}

// Load creates Settings backed by its own viper instance (no global
// state). Sources, lowest to highest precedence: defaults, an optional
// .kagglectl.yaml in the working directory, KAGGLECTL_* env vars, and
// any flags the caller binds afterwards via Viper().
func Load(cfgFile string) (*Settings, error) {
	// a .env in the project root may carry KAGGLE_* credentials or
	// KAGGLECTL_* overrides; absence is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	} else {
		for _, name := range []string{ConfigName + ".yaml", ConfigName + ".yml"} {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				if err := v.ReadInConfig(); err != nil {
					return nil, fmt.Errorf("reading config file %s: %w", name, err)
				}
				break
			}
		}
	}

	setDefaults(v)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}
	s.v = v
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(BinaryKey, "kaggle")
	v.SetDefault(AutoDownloadKey, true)
	v.SetDefault(PollIntervalKey, 5)
	v.SetDefault(PollTimeoutKey, 300)
	v.SetDefault(ServiceURLKey, "https://www.kaggle.com")
}

// Viper returns the underlying viper instance, used by the root command
// to bind flags over the file/env layers.
func (s *Settings) Viper() *viper.Viper {
	return s.v
}

// Refresh re-reads the struct fields from the viper layers. Called
// after flag binding so flag values take effect.
func (s *Settings) Refresh() error {
	if s.v == nil {
		return nil
	}
	return s.v.Unmarshal(s)
}

// Interval returns the poll interval with the 1s floor applied. The
// floor guards a misconfigured near-zero interval from busy-looping
// against the remote service.
func (s *Settings) Interval() time.Duration {
	if s.PollInterval < 1 {
		return time.Second
	}
	return time.Duration(s.PollInterval) * time.Second
}

// Timeout returns the poll timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.PollTimeout) * time.Second
}
