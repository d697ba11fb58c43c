package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// Config holds the directory deployment settings.
type Config struct {
	// Variant selects the deployment flavor: "packages" or "libraries".
	Variant string `toml:"variant"`

	// Workspace is the raw build input file.
	Workspace string `toml:"workspace"`

	// SiteDir is where build output lands and what the web server serves.
	SiteDir string `toml:"site_dir"`

	// IndexEndpoint optionally points the engine at a remote search
	// index instead of the local site build.
	IndexEndpoint string `toml:"index_endpoint,omitempty"`

	// PageSize overrides the variant's results-per-page count.
	PageSize int `toml:"page_size,omitempty"`

	// DefaultSort overrides the variant's default sort key.
	DefaultSort string `toml:"default_sort,omitempty"`

	// Debounce is the quiet period applied to live search input.
	Debounce Duration `toml:"debounce,omitempty"`

	GitHub *GitHubConfig `toml:"github,omitempty"`
}

// GitHubConfig configures the optional star-count enrichment.
type GitHubConfig struct {
	Token string `toml:"token"`
}

// Duration wraps time.Duration for TOML round-tripping.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// GetDefaultConfig returns the built-in defaults.
func GetDefaultConfig() *Config {
	return &Config{
		Variant:   "packages",
		Workspace: "workspace.json",
		SiteDir:   "_site",
		Debounce:  Duration{300 * time.Millisecond},
	}
}

// LoadConfig reads the config file, falling back to defaults when it does
// not exist.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := GetDefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if config.Variant != "packages" && config.Variant != "libraries" {
		return nil, fmt.Errorf("unknown variant %q", config.Variant)
	}
	if config.Debounce.Duration <= 0 {
		config.Debounce = Duration{300 * time.Millisecond}
	}
	return config, nil
}

// SaveTemplateConfig writes the annotated sample config, for pkgdir init.
func SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

// GetDefaultConfigPath returns the per-user config location.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory: %w", err)
	}
	return filepath.Join(configDir, "pkgdir", "config.toml"), nil
}

// IndexPath returns the local search index location inside the site dir.
func (c *Config) IndexPath() string {
	return filepath.Join(c.SiteDir, "searchindex.json")
}
