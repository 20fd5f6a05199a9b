package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// Config holds the preview and browser settings.
type Config struct {
	// Classification
	IgnoredExtensionPattern string `json:"ignored_extension_pattern"` // empty disables filtering
	ImageExtensionPattern   string `json:"image_extension_pattern"`
	MaxPreviewableSize      int64  `json:"max_previewable_size"`
	OversizedChunkSize      int64  `json:"oversized_chunk_size"`

	// Trigger coordination
	DebounceDelayMS int      `json:"debounce_delay_ms"`
	TriggerCommands []string `json:"trigger_commands"`

	// Panel placement
	SplitThreshold int `json:"split_threshold"`
	MinPanelWidth  int `json:"min_panel_width"`

	// Cache
	EvictionSizeThreshold int64 `json:"eviction_size_threshold"`

	// UI preferences
	Theme string `json:"theme"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		IgnoredExtensionPattern: `^(mkv|webm|mp4|mov|mp3|ogg|flac|wav|zip|tar|gz|bz2|xz|7z|rar|iso|epub|pdf)$`,
		ImageExtensionPattern:   `^(png|jpe?g|gif|bmp|webp|svg|ico|tiff?)$`,
		MaxPreviewableSize:      1048576,
		OversizedChunkSize:      10240,
		DebounceDelayMS:         250,
		TriggerCommands: []string{
			"move-next", "move-previous", "mark", "unmark",
			"unmark-backward", "delete-marker", "goto-file", "open-file",
		},
		SplitThreshold:        125,
		MinPanelWidth:         40,
		EvictionSizeThreshold: 1000000,
		Theme:                 "glimpse",
	}
}

// DebounceDelay returns the debounce delay as a duration.
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.DebounceDelayMS) * time.Millisecond
}

// Validate checks that the configured patterns compile and the sizes
// make sense.
func (c *Config) Validate() error {
	if c.IgnoredExtensionPattern != "" {
		if _, err := regexp.Compile(c.IgnoredExtensionPattern); err != nil {
			return fmt.Errorf("ignored_extension_pattern: %w", err)
		}
	}
	if c.ImageExtensionPattern != "" {
		if _, err := regexp.Compile(c.ImageExtensionPattern); err != nil {
			return fmt.Errorf("image_extension_pattern: %w", err)
		}
	}
	if c.MaxPreviewableSize <= 0 {
		return fmt.Errorf("max_previewable_size must be positive, got %d", c.MaxPreviewableSize)
	}
	if c.OversizedChunkSize <= 0 {
		return fmt.Errorf("oversized_chunk_size must be positive, got %d", c.OversizedChunkSize)
	}
	if c.DebounceDelayMS < 0 {
		return fmt.Errorf("debounce_delay_ms must not be negative, got %d", c.DebounceDelayMS)
	}
	if c.EvictionSizeThreshold <= 0 {
		return fmt.Errorf("eviction_size_threshold must be positive, got %d", c.EvictionSizeThreshold)
	}
	return nil
}

// Manager handles configuration loading and saving
type Manager struct {
	configPath string
	config     *Config
}

// NewManager creates a configuration manager rooted at the user's
// config directory (or the override, which is mainly for tests).
func NewManager(override string) *Manager {
	path := override
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "glimpse", "config.json")
		} else {
			path = filepath.Join(".glimpse", "config.json")
		}
	}
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// Load reads the configuration from disk, creating defaults if needed
func (m *Manager) Load() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		// First run; persist the defaults
		return m.Save()
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	m.config = config
	return nil
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// Set updates a configuration value and saves
func (m *Manager) Set(key, value string) error {
	switch key {
	case "ignored_extension_pattern":
		m.config.IgnoredExtensionPattern = value
	case "image_extension_pattern":
		m.config.ImageExtensionPattern = value
	case "max_previewable_size":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("max_previewable_size: %w", err)
		}
		m.config.MaxPreviewableSize = n
	case "oversized_chunk_size":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("oversized_chunk_size: %w", err)
		}
		m.config.OversizedChunkSize = n
	case "debounce_delay_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("debounce_delay_ms: %w", err)
		}
		m.config.DebounceDelayMS = n
	case "eviction_size_threshold":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("eviction_size_threshold: %w", err)
		}
		m.config.EvictionSizeThreshold = n
	case "theme":
		m.config.Theme = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := m.config.Validate(); err != nil {
		return err
	}
	return m.Save()
}
