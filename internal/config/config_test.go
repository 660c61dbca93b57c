package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestGetDefaultOpener(t *testing.T) {
	expected := map[string]string{
		"darwin":  "open",
		"linux":   "xdg-open",
		"windows": "start",
	}

	opener := getDefaultOpener()

	if expectedOpener, ok := expected[runtime.GOOS]; ok {
		if opener != expectedOpener {
			t.Errorf("getDefaultOpener() = %s, want %s for %s", opener, expectedOpener, runtime.GOOS)
		}
	} else if opener != "open" {
		t.Errorf("getDefaultOpener() = %s, want 'open' for unknown OS", opener)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Feed.HTTPTimeout != 30*time.Second {
		t.Errorf("Feed.HTTPTimeout = %v, want 30s", cfg.Feed.HTTPTimeout)
	}
	if cfg.Feed.UserAgent == "" {
		t.Error("Feed.UserAgent should not be empty")
	}

	if cfg.UI.ItemsPerPage != 3 {
		t.Errorf("UI.ItemsPerPage = %d, want 3", cfg.UI.ItemsPerPage)
	}
	if cfg.UI.Theme == "" {
		t.Error("UI.Theme should not be empty")
	}

	if cfg.Share.Origin == "" || cfg.Share.Path == "" {
		t.Error("Share.Origin and Share.Path must have defaults")
	}

	if cfg.Media.DefaultOpener == "" {
		t.Error("Media.DefaultOpener should not be empty")
	}

	if cfg.Storage.PrefsPath == "" || cfg.Storage.ImageCacheDir == "" {
		t.Error("Storage paths must have defaults")
	}

	if cfg.Keys.Bindings.Quit != "q" {
		t.Errorf("Keys.Bindings.Quit = %s, want 'q'", cfg.Keys.Bindings.Quit)
	}
	if cfg.Keys.Bindings.Search != "/" {
		t.Errorf("Keys.Bindings.Search = %s, want '/'", cfg.Keys.Bindings.Search)
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.UI.ItemsPerPage != 3 {
		t.Errorf("UI.ItemsPerPage = %d, want 3", cfg.UI.ItemsPerPage)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "test-config.toml")
	configContent := `
[feed]
source = "https://example.com/news.json"
http_timeout = "60s"
user_agent = "test-agent"

[ui]
items_per_page = 5
theme = "dawn"

[share]
origin = "https://example.com"
path = "/news.html"
`

	if writeErr := os.WriteFile(configPath, []byte(configContent), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Feed.Source != "https://example.com/news.json" {
		t.Errorf("Feed.Source = %s", cfg.Feed.Source)
	}
	if cfg.Feed.HTTPTimeout != 60*time.Second {
		t.Errorf("Feed.HTTPTimeout = %v, want 60s", cfg.Feed.HTTPTimeout)
	}
	if cfg.UI.ItemsPerPage != 5 {
		t.Errorf("UI.ItemsPerPage = %d, want 5", cfg.UI.ItemsPerPage)
	}
	if cfg.UI.Theme != "dawn" {
		t.Errorf("UI.Theme = %s, want dawn", cfg.UI.Theme)
	}
	if cfg.Share.Path != "/news.html" {
		t.Errorf("Share.Path = %s, want /news.html", cfg.Share.Path)
	}

	// Unset sections keep their defaults.
	if cfg.Keys.Bindings.Quit != "q" {
		t.Errorf("Keys.Bindings.Quit = %s, want default 'q'", cfg.Keys.Bindings.Quit)
	}
}

func TestGenerateAndReloadConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-gen-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.toml")
	if err := GenerateDefaultConfig(path); err != nil {
		t.Fatalf("GenerateDefaultConfig() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("generated config missing: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of generated config error = %v", err)
	}
	if cfg.UI.ItemsPerPage != 3 {
		t.Errorf("round-tripped ItemsPerPage = %d, want 3", cfg.UI.ItemsPerPage)
	}
}
