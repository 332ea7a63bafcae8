// Package settings loads and persists the user's llmpack configuration.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration keys.
const (
	KeyProvider          = "llm_provider"
	KeyModel             = "llm_model"
	KeyLanguage          = "language"
	KeyAPIKeys           = "api_keys"
	KeyInstructionPrompt = "instruction_prompt"
	KeyCombineOutput     = "combine.output"
	KeyCombinePrefix     = "combine.prefix"
	KeyCombineClipboard  = "combine.clipboard"
	KeyCombineMaxLines   = "combine.max_lines"
	KeyCombineWorkers    = "combine.workers"
	KeyCombineExclude    = "combine.exclude"
)

// Defaults.
const (
	DefaultProvider          = "gemini"
	DefaultLanguage          = "en"
	DefaultInstructionPrompt = "Create a step-by-step work procedure for the following task:"
	DefaultMaxLines          = 1000
	DefaultWorkers           = 1
)

// ErrUnknownProvider is returned when a provider has no catalog entry.
var ErrUnknownProvider = errors.New("unknown provider")

// Settings is the decoded configuration.
type Settings struct {
	Provider          string            `mapstructure:"llm_provider"`
	Model             string            `mapstructure:"llm_model"`
	Language          string            `mapstructure:"language"`
	APIKeys           map[string]string `mapstructure:"api_keys"`
	InstructionPrompt string            `mapstructure:"instruction_prompt"`
	Combine           CombineSettings   `mapstructure:"combine"`
}

// CombineSettings are defaults for the combine command.
type CombineSettings struct {
	Output    string   `mapstructure:"output"`
	Prefix    string   `mapstructure:"prefix"`
	Clipboard bool     `mapstructure:"clipboard"`
	MaxLines  int      `mapstructure:"max_lines"`
	Workers   int      `mapstructure:"workers"`
	Exclude   []string `mapstructure:"exclude"`
}

// APIKey returns the key for provider. A non-empty <PROVIDER>_API_KEY
// environment variable wins over the stored key.
func (s Settings) APIKey(provider string) string {
	if key := os.Getenv(EnvKeyName(provider)); key != "" {
		return key
	}
	return s.APIKeys[strings.ToLower(provider)]
}

// EnvKeyName returns the environment variable consulted for provider.
func EnvKeyName(provider string) string {
	return strings.ToUpper(provider) + "_API_KEY"
}

// DefaultPath returns $XDG_CONFIG_HOME/llmpack/config.json, falling back to
// ~/.config/llmpack/config.json.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "llmpack", "config.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "llmpack", "config.json"), nil
}

// Store wraps a viper instance bound to a single JSON config file.
type Store struct {
	path   string
	v      *viper.Viper
	logger *zap.Logger
}

// NewStore creates a Store for path with defaults seeded. An empty path
// selects DefaultPath.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v)

	return &Store{path: path, v: v, logger: logger}, nil
}

func setDefaults(v *viper.Viper) {
	defaultModel, _ := DefaultModel(DefaultProvider)
	v.SetDefault(KeyProvider, DefaultProvider)
	v.SetDefault(KeyModel, defaultModel)
	v.SetDefault(KeyLanguage, DefaultLanguage)
	v.SetDefault(KeyInstructionPrompt, DefaultInstructionPrompt)
	keys := make(map[string]string, len(Providers))
	for _, p := range Providers {
		keys[p] = ""
	}
	v.SetDefault(KeyAPIKeys, keys)
	v.SetDefault(KeyCombineOutput, "")
	v.SetDefault(KeyCombinePrefix, "")
	v.SetDefault(KeyCombineClipboard, true)
	v.SetDefault(KeyCombineMaxLines, DefaultMaxLines)
	v.SetDefault(KeyCombineWorkers, DefaultWorkers)
	v.SetDefault(KeyCombineExclude, []string{})
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the config file. A missing file leaves the defaults in place.
func (s *Store) Load() error {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("No config file, using defaults", zap.String("path", s.path))
			return nil
		}
		return fmt.Errorf("stat configuration %s: %w", s.path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("configuration path %s is a directory", s.path)
	}
	if err := s.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read configuration from %s: %w", s.path, err)
	}
	s.logger.Debug("Loaded config file", zap.String("path", s.path))
	return nil
}

// Settings decodes the current values.
func (s *Store) Settings() (Settings, error) {
	var cfg Settings
	if err := s.v.Unmarshal(&cfg); err != nil {
		return Settings{}, fmt.Errorf("decode configuration from %s: %w", s.path, err)
	}
	return cfg, nil
}

// Set updates a single key in memory; call Save to persist it.
func (s *Store) Set(key string, value interface{}) {
	s.v.Set(key, value)
}

// SetAPIKey stores the key for a known provider.
func (s *Store) SetAPIKey(provider, key string) error {
	if !IsKnownProvider(provider) {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	s.v.Set(KeyAPIKeys+"."+provider, key)
	return nil
}

// SetModel selects provider and model. An empty model picks the provider default.
func (s *Store) SetModel(provider, model string) error {
	if !IsKnownProvider(provider) {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	if model == "" {
		model, _ = DefaultModel(provider)
	} else if _, ok := FindModel(provider, model); !ok {
		s.logger.Warn("Model is not in the catalog", zap.String("provider", provider), zap.String("model", model))
	}
	s.v.Set(KeyProvider, provider)
	s.v.Set(KeyModel, model)
	return nil
}

// Save writes every setting, defaults included, to the config file.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write configuration to %s: %w", s.path, err)
	}
	s.logger.Info("Saved settings", zap.String("path", s.path))
	return nil
}
