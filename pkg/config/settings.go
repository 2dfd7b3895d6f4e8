package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultModel is the completion model used when neither the settings
	// file nor the command line names one.
	DefaultModel = "anthropic/claude-haiku-4.5"

	// DefaultBaseURL targets the OpenRouter OpenAI-compatible endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	envAPIKey  = "OPENROUTER_API_KEY"
	envBaseURL = "OPENROUTER_BASE_URL"

	settingsDir  = ".agentcli"
	settingsFile = "config.yaml"
)

// ErrMissingAPIKey reports a run attempted without a credential.
var ErrMissingAPIKey = errors.New("config: " + envAPIKey + " is not set")

// Settings holds everything the CLI needs to talk to the completion service
// and bound a run. Values load in layers: built-in defaults, then the YAML
// settings file, then environment variables.
type Settings struct {
	Model          string   `yaml:"model"`
	BaseURL        string   `yaml:"base_url"`
	MaxRounds      int      `yaml:"max_rounds"`
	Timeout        Duration `yaml:"timeout"`
	CommandTimeout Duration `yaml:"command_timeout"`

	// APIKey comes from the environment only, never from the file.
	APIKey string `yaml:"-"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "90s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// DefaultSettingsPath returns the per-user settings file location, or an
// empty string when the home directory cannot be resolved.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, settingsDir, settingsFile)
}

// Load assembles Settings from defaults, an optional YAML file, and the
// environment. An explicit path must exist; the default path is allowed to
// be absent. The API key is required.
func Load(path string) (*Settings, error) {
	s := &Settings{
		Model:   DefaultModel,
		BaseURL: DefaultBaseURL,
	}

	explicit := path != ""
	if !explicit {
		path = DefaultSettingsPath()
	}
	if path != "" {
		if err := s.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}

	s.applyEnv()

	if strings.TrimSpace(s.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(s.Model) == "" {
		s.Model = DefaultModel
	}
	if strings.TrimSpace(s.BaseURL) == "" {
		s.BaseURL = DefaultBaseURL
	}
	return s, nil
}

func (s *Settings) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse settings %s: %w", path, err)
	}
	return nil
}

func (s *Settings) applyEnv() {
	if key := os.Getenv(envAPIKey); key != "" {
		s.APIKey = key
	}
	if base := os.Getenv(envBaseURL); base != "" {
		s.BaseURL = base
	}
}
