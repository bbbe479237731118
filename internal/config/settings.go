package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AreteDriver/Gorgon/internal/logging"
)

// SettingsFileName is the settings file looked up in the data directory.
const SettingsFileName = "settings.yaml"

// Settings mirrors the on-disk settings.yaml schema.
type Settings struct {
	Log           LogSettings          `yaml:"log"`
	Git           GitSettings          `yaml:"git"`
	Files         FileSettings         `yaml:"files"`
	Notifications NotificationSettings `yaml:"notifications"`
}

type LogSettings struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

type GitSettings struct {
	DefaultRemote   string   `yaml:"defaultRemote"`
	LogCount        int      `yaml:"logCount"`
	SSHUser         string   `yaml:"sshUser"`
	KnownHostsFiles []string `yaml:"knownHostsFiles"`
	// PinnedHostKeys are authorized_keys lines trusted for every ssh remote.
	PinnedHostKeys  []string `yaml:"pinnedHostKeys"`
}

type FileSettings struct {
	// BlockedPatterns extends the built-in path denylist.
	BlockedPatterns []string `yaml:"blockedPatterns"`
}

type NotificationSettings struct {
	Enabled *bool `yaml:"enabled"`
}

// NotificationsEnabled defaults to true when the key is absent.
func (n NotificationSettings) NotificationsEnabled() bool {
	return n.Enabled == nil || *n.Enabled
}

// Defaults returns the settings used when no file is present.
func Defaults() Settings {
	return Settings{
		Log: LogSettings{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
		Git: GitSettings{
			DefaultRemote: "origin",
			LogCount:      20,
			SSHUser:       "git",
		},
	}
}

// Load reads settings from path, filling gaps with defaults and applying
// GORGON_* environment overrides. A missing file is not an error.
func Load(path string) (Settings, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Settings{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return Settings{}, fmt.Errorf("read %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.expand()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func (s *Settings) applyEnv() {
	if v := os.Getenv("GORGON_LOG_LEVEL"); v != "" {
		s.Log.Level = v
	}
	if v := os.Getenv("GORGON_LOG_FORMAT"); v != "" {
		s.Log.Format = v
	}
	if v := os.Getenv("GORGON_GIT_REMOTE"); v != "" {
		s.Git.DefaultRemote = v
	}
	if v := os.Getenv("GORGON_SSH_USER"); v != "" {
		s.Git.SSHUser = v
	}
}

func (s *Settings) expand() {
	s.Log.File = os.ExpandEnv(s.Log.File)
	for i, f := range s.Git.KnownHostsFiles {
		s.Git.KnownHostsFiles[i] = os.ExpandEnv(f)
	}
}

// fillDefaults restores defaults for keys present in the file but left blank.
func (s *Settings) fillDefaults() {
	def := Defaults()
	if strings.TrimSpace(s.Log.Level) == "" {
		s.Log.Level = def.Log.Level
	}
	if strings.TrimSpace(s.Log.Format) == "" {
		s.Log.Format = def.Log.Format
	}
	if strings.TrimSpace(s.Git.SSHUser) == "" {
		s.Git.SSHUser = def.Git.SSHUser
	}
}

// Validate rejects settings the app cannot run with.
func (s Settings) Validate() error {
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(s.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", s.Log.Format)
	}
	if strings.TrimSpace(s.Git.DefaultRemote) == "" {
		return fmt.Errorf("git.defaultRemote must not be empty")
	}
	if s.Git.LogCount <= 0 {
		return fmt.Errorf("git.logCount must be positive, got %d", s.Git.LogCount)
	}
	return nil
}
