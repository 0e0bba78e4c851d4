package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"selectorkit/log"
	"selectorkit/ui/anchor"
	"selectorkit/ui/layout"
	"selectorkit/ui/position"
)

const (
	ConfigFileName     = "config.json"
	YAMLConfigFileName = "config.yaml"
)

// Themes accepted for the demo page renderer.
var themes = []string{"auto", "dark", "light", "notty"}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".selectorkit"), nil
}

// Config represents the application configuration
type Config struct {
	// Mode is "auto", "dropdown" or "dialog".
	Mode string `json:"mode" yaml:"mode"`
	// Placement is the preferred side and alignment, e.g. "bottom-start".
	Placement string `json:"placement" yaml:"placement"`
	// Breakpoint is the terminal width (cells) at or below which auto mode
	// shows a dialog.
	Breakpoint int `json:"breakpoint" yaml:"breakpoint"`
	// Offset is the gap between trigger and panel in cells.
	Offset int `json:"offset" yaml:"offset"`
	// Margin is the minimum gap between panel and terminal edge in cells.
	Margin int `json:"margin" yaml:"margin"`

	SettleDelayMs    int `json:"settle_delay_ms" yaml:"settle_delay_ms"`
	ScrollThrottleMs int `json:"scroll_throttle_ms" yaml:"scroll_throttle_ms"`
	ResizeDebounceMs int `json:"resize_debounce_ms" yaml:"resize_debounce_ms"`

	// CopyOnSelect copies the chosen value to the clipboard.
	CopyOnSelect bool `json:"copy_on_select" yaml:"copy_on_select"`
	// Theme is the markdown style for the demo page.
	Theme string `json:"theme" yaml:"theme"`
}

// DefaultConfig returns the default configuration. Offset and margin are one
// cell, smaller than the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:             layout.Auto.String(),
		Placement:        position.BottomStart.String(),
		Breakpoint:       layout.DefaultBreakpoint,
		Offset:           1,
		Margin:           1,
		SettleDelayMs:    int(anchor.DefaultSettleDelay / time.Millisecond),
		ScrollThrottleMs: int(anchor.DefaultScrollThrottle / time.Millisecond),
		ResizeDebounceMs: int(anchor.DefaultResizeDebounce / time.Millisecond),
		CopyOnSelect:     false,
		Theme:            "auto",
	}
}

// Validate reports every field that cannot be used.
func (c *Config) Validate() error {
	var errs []error

	if _, err := layout.ParseRequestedMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := position.ParsePlacement(c.Placement); err != nil {
		errs = append(errs, err)
	}

	nonNegative := []struct {
		name  string
		value int
	}{
		{"breakpoint", c.Breakpoint},
		{"offset", c.Offset},
		{"margin", c.Margin},
		{"settle_delay_ms", c.SettleDelayMs},
		{"scroll_throttle_ms", c.ScrollThrottleMs},
		{"resize_debounce_ms", c.ResizeDebounceMs},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", f.name, f.value))
		}
	}

	if c.Theme != "" && !validTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("unknown theme %q, want one of %s", c.Theme, strings.Join(themes, ", ")))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func validTheme(theme string) bool {
	for _, t := range themes {
		if strings.EqualFold(t, theme) {
			return true
		}
	}
	return false
}

// AnchorOptions converts the configuration into controller options.
func (c *Config) AnchorOptions() (anchor.Options, error) {
	if err := c.Validate(); err != nil {
		return anchor.Options{}, err
	}

	mode, _ := layout.ParseRequestedMode(c.Mode)
	placement, _ := position.ParsePlacement(c.Placement)

	return anchor.Options{
		Mode:           mode,
		Placement:      placement,
		Breakpoint:     c.Breakpoint,
		Offset:         c.Offset,
		Margin:         c.Margin,
		SettleDelay:    time.Duration(c.SettleDelayMs) * time.Millisecond,
		ScrollThrottle: time.Duration(c.ScrollThrottleMs) * time.Millisecond,
		ResizeDebounce: time.Duration(c.ResizeDebounceMs) * time.Millisecond,
	}, nil
}

// LoadConfig loads the configuration from the config directory, preferring
// config.yaml over config.json. A missing file is created with defaults. A
// file that cannot be parsed is backed up and defaults are used; so is one
// that fails validation.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, YAMLConfigFileName)
	if _, err := os.Stat(configPath); err != nil {
		configPath = filepath.Join(configDir, ConfigFileName)
	}

	cfg, err := LoadConfigFrom(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			defaultCfg := DefaultConfig()
			if saveErr := SaveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.ErrorLog.Printf("%v", err)
		return DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		log.WarningLog.Printf("ignoring config at %s: %v", configPath, err)
		return DefaultConfig()
	}

	return cfg
}

// LoadConfigFrom reads one config file. The format follows the extension;
// fields missing from the file keep their default values.
func LoadConfigFrom(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(configPath) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return nil, fmt.Errorf("failed to parse config file at %s: %w\nConfig content preview: %s", configPath, err, preview)
	}

	return config, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SaveConfig writes the configuration as config.json in the config directory.
func SaveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	return SaveConfigTo(config, filepath.Join(configDir, ConfigFileName))
}

// SaveConfigTo writes the configuration to path, as YAML or JSON depending on
// the extension.
func SaveConfigTo(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
