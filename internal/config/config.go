package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"dropzone/internal/eventbus"
	"dropzone/internal/preview"
	"dropzone/internal/selection"
	"dropzone/internal/upload"
)

// CurrentVersion is the config schema version written by Save
const CurrentVersion = 1

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Policy  PolicySettings `toml:"policy"`
	Upload  UploadSettings `toml:"upload"`
	UI      UISettings     `toml:"ui"`
}

// PolicySettings are the admission limits
type PolicySettings struct {
	MaxFiles            int      `toml:"max_files"`
	MaxBytes            int64    `toml:"max_bytes"`
	AllowedTypePrefixes []string `toml:"allowed_type_prefixes"`
}

// UploadSettings configure the mock submission
type UploadSettings struct {
	FieldName string `toml:"field_name"`
	DelayMS   int    `toml:"delay_ms"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	StartDir       string `toml:"start_dir"`
	ShowHidden     bool   `toml:"show_hidden"`
	Thumbnails     bool   `toml:"thumbnails"`
	ThumbnailWidth int    `toml:"thumbnail_width"`
	LogFile        string `toml:"log_file"`
}

// SelectionPolicy converts the policy section for the selection manager
func (c *Config) SelectionPolicy() selection.Policy {
	return selection.Policy{
		MaxFiles:            c.Policy.MaxFiles,
		MaxBytes:            c.Policy.MaxBytes,
		AllowedTypePrefixes: append([]string(nil), c.Policy.AllowedTypePrefixes...),
	}
}

// UploadDelay returns the simulated upload delay
func (c *Config) UploadDelay() time.Duration {
	return time.Duration(c.Upload.DelayMS) * time.Millisecond
}

// Validate checks that the configuration describes a usable policy
func (c *Config) Validate() error {
	var errs []error
	if c.Policy.MaxFiles <= 0 {
		errs = append(errs, fmt.Errorf("policy.max_files must be positive, got %d", c.Policy.MaxFiles))
	}
	if c.Policy.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("policy.max_bytes must be positive, got %d", c.Policy.MaxBytes))
	}
	if len(c.Policy.AllowedTypePrefixes) == 0 {
		errs = append(errs, errors.New("policy.allowed_type_prefixes must not be empty"))
	}
	if c.Upload.FieldName == "" {
		errs = append(errs, errors.New("upload.field_name must not be empty"))
	}
	if c.Upload.DelayMS < 0 {
		errs = append(errs, fmt.Errorf("upload.delay_ms must not be negative, got %d", c.Upload.DelayMS))
	}
	if c.UI.ThumbnailWidth <= 0 {
		errs = append(errs, fmt.Errorf("ui.thumbnail_width must be positive, got %d", c.UI.ThumbnailWidth))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "dropzone", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceForPath creates a config service bound to path
func NewConfigServiceForPath(path string, bus eventbus.EventBus) ConfigService {
	return &configService{filePath: path, bus: bus}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	return &configService{filePath: DefaultPath(), bus: bus}
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, or the defaults if there is none
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Policy: PolicySettings{
			MaxFiles:            selection.DefaultMaxFiles,
			MaxBytes:            selection.DefaultMaxBytes,
			AllowedTypePrefixes: append([]string(nil), selection.DefaultAllowedTypePrefixes...),
		},
		Upload: UploadSettings{
			FieldName: upload.DefaultFieldName,
			DelayMS:   int(upload.DefaultDelay / time.Millisecond),
		},
		UI: UISettings{
			Thumbnails:     true,
			ThumbnailWidth: preview.DefaultThumbnailWidth,
			LogFile:        "dropzone.log",
		},
	}
}
