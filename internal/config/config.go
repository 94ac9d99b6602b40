package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"sfm/internal/constants"
)

// Environment variable names
const (
	EnvLogLevel = "SFM_LOG_LEVEL"
	EnvLogFile  = "SFM_LOG_FILE"
)

// Config represents the application configuration
type Config struct {
	List ListConfig `toml:"list"`
	Ops  OpsConfig  `toml:"ops"`
	UI   UIConfig   `toml:"ui"`
	Log  LogConfig  `toml:"log"`
	SMB  SMBConfig  `toml:"smb"`
}

// ListConfig represents directory listing settings
type ListConfig struct {
	ShowHidden bool   `toml:"show_hidden"`
	Filter     string `toml:"filter"` // doublestar glob applied to file names
}

// OpsConfig represents file operation settings
type OpsConfig struct {
	ConfirmDelete bool `toml:"confirm_delete"`
}

// UIConfig represents console settings
type UIConfig struct {
	Color bool `toml:"color"`
}

// LogConfig represents logging settings
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console, json
	File   string `toml:"file"`   // empty means stderr
}

// SMBConfig represents SMB session settings
type SMBConfig struct {
	RememberCredentials bool   `toml:"remember_credentials"`
	DialTimeout         string `toml:"dial_timeout"`
}

// Timeout returns the parsed dial timeout, or the built-in default when unset or invalid.
func (c SMBConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(c.DialTimeout)
	if err != nil || d <= 0 {
		return constants.SMBDialTimeout
	}
	return d
}

// fileConfig mirrors Config with optional fields so that values absent from
// the file keep their defaults.
type fileConfig struct {
	List struct {
		ShowHidden *bool   `toml:"show_hidden"`
		Filter     *string `toml:"filter"`
	} `toml:"list"`
	Ops struct {
		ConfirmDelete *bool `toml:"confirm_delete"`
	} `toml:"ops"`
	UI struct {
		Color *bool `toml:"color"`
	} `toml:"ui"`
	Log struct {
		Level  *string `toml:"level"`
		Format *string `toml:"format"`
		File   *string `toml:"file"`
	} `toml:"log"`
	SMB struct {
		RememberCredentials *bool   `toml:"remember_credentials"`
		DialTimeout         *string `toml:"dial_timeout"`
	} `toml:"smb"`
}

// ManagerInterface defines configuration management operations
type ManagerInterface interface {
	Load() (*Config, error)
	Save(*Config) error
}

// Ensure Manager implements ManagerInterface
var _ ManagerInterface = (*Manager)(nil)

// Manager provides configuration management functionality
type Manager struct {
	configPath string
	fromFile   bool
}

// NewManager creates a new configuration manager. An empty path selects the
// platform default location.
func NewManager(path string) *Manager {
	if path == "" {
		path = getConfigPath()
	}
	return &Manager{configPath: path}
}

// Path returns the configuration file path
func (m *Manager) Path() string { return m.configPath }

// FromFile reports whether the last Load read an existing file
func (m *Manager) FromFile() bool { return m.fromFile }

// Load loads configuration with priority: defaults < file < environment.
// A missing file is not an error; a malformed or invalid one is.
func (m *Manager) Load() (*Config, error) {
	config := getDefaultConfig()
	m.fromFile = false

	data, err := os.ReadFile(m.configPath)
	switch {
	case err == nil:
		var fc fileConfig
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("invalid TOML in %s: %w", m.configPath, err)
		}
		mergeConfigs(config, &fc)
		m.fromFile = true
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	applyEnvVars(config)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", m.configPath, err)
	}
	return config, nil
}

// Save saves configuration to file
func (m *Manager) Save(config *Config) error {
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks values the loader cannot repair on its own
func (c *Config) Validate() error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: must be \"console\" or \"json\", got %q", c.Log.Format)
	}
	if c.List.Filter != "" && !doublestar.ValidatePattern(c.List.Filter) {
		return fmt.Errorf("list.filter: invalid pattern %q", c.List.Filter)
	}
	if c.SMB.DialTimeout != "" {
		if d, err := time.ParseDuration(c.SMB.DialTimeout); err != nil || d <= 0 {
			return fmt.Errorf("smb.dial_timeout: invalid duration %q", c.SMB.DialTimeout)
		}
	}
	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		List: ListConfig{
			ShowHidden: constants.DefaultShowHidden,
			Filter:     "",
		},
		Ops: OpsConfig{
			ConfirmDelete: false,
		},
		UI: UIConfig{
			Color: true,
		},
		Log: LogConfig{
			Level:  constants.DefaultLogLevel,
			Format: constants.DefaultLogFormat,
			File:   "",
		},
		SMB: SMBConfig{
			RememberCredentials: false,
			DialTimeout:         constants.SMBDialTimeout.String(),
		},
	}
}

// getConfigPath returns the path to the configuration file following OS conventions
func getConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\sfm\config.toml
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return constants.ConfigFileName
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, constants.ConfigVendorDir)

	case "darwin":
		// macOS: ~/Library/Application Support/sfm/config.toml
		home, err := os.UserHomeDir()
		if err != nil {
			return constants.ConfigFileName
		}
		configDir = filepath.Join(home, "Library", "Application Support", constants.ConfigVendorDir)

	default:
		// Linux/Unix: $XDG_CONFIG_HOME/sfm/config.toml or ~/.config/sfm/config.toml
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return constants.ConfigFileName
			}
			xdgConfigHome = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(xdgConfigHome, constants.ConfigVendorDir)
	}

	return filepath.Join(configDir, constants.ConfigFileName)
}

// mergeConfigs merges values present in the file into the default config
func mergeConfigs(config *Config, file *fileConfig) {
	if file.List.ShowHidden != nil {
		config.List.ShowHidden = *file.List.ShowHidden
	}
	if file.List.Filter != nil {
		config.List.Filter = strings.TrimSpace(*file.List.Filter)
	}

	if file.Ops.ConfirmDelete != nil {
		config.Ops.ConfirmDelete = *file.Ops.ConfirmDelete
	}

	if file.UI.Color != nil {
		config.UI.Color = *file.UI.Color
	}

	if file.Log.Level != nil {
		config.Log.Level = strings.ToLower(*file.Log.Level)
	}
	if file.Log.Format != nil {
		config.Log.Format = strings.ToLower(*file.Log.Format)
	}
	if file.Log.File != nil {
		config.Log.File = *file.Log.File
	}

	if file.SMB.RememberCredentials != nil {
		config.SMB.RememberCredentials = *file.SMB.RememberCredentials
	}
	if file.SMB.DialTimeout != nil {
		config.SMB.DialTimeout = *file.SMB.DialTimeout
	}
}

// applyEnvVars overrides file values with environment variables
func applyEnvVars(config *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		config.Log.File = v
	}
}
