package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != "packages" {
		t.Errorf("variant = %q, want packages", cfg.Variant)
	}
	if cfg.SiteDir != "_site" {
		t.Errorf("site_dir = %q, want _site", cfg.SiteDir)
	}
	if cfg.Debounce.Duration != 300*time.Millisecond {
		t.Errorf("debounce = %v, want 300ms", cfg.Debounce.Duration)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
variant = "libraries"
workspace = "data/workspace.json"
site_dir = "public"
page_size = 12
default_sort = "stars"
debounce = "150ms"

[github]
token = "t0ken"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != "libraries" || cfg.Workspace != "data/workspace.json" {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.PageSize != 12 || cfg.DefaultSort != "stars" {
		t.Errorf("overrides = %d/%s", cfg.PageSize, cfg.DefaultSort)
	}
	if cfg.Debounce.Duration != 150*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Debounce.Duration)
	}
	if cfg.GitHub == nil || cfg.GitHub.Token != "t0ken" {
		t.Errorf("github = %+v", cfg.GitHub)
	}
}

func TestLoadConfigRejectsUnknownVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`variant = "plugins"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := SaveTemplateConfig(path); err != nil {
		t.Fatal(err)
	}

	// The written template must load cleanly.
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != "packages" {
		t.Errorf("template variant = %q", cfg.Variant)
	}
}

func TestIndexPath(t *testing.T) {
	cfg := &Config{SiteDir: "public"}
	if got := cfg.IndexPath(); got != filepath.Join("public", "searchindex.json") {
		t.Errorf("IndexPath = %q", got)
	}
}
