package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

type Config struct {
	Feed    FeedConfig    `mapstructure:"feed"`
	UI      UIConfig      `mapstructure:"ui"`
	Share   ShareConfig   `mapstructure:"share"`
	Media   MediaConfig   `mapstructure:"media"`
	Storage StorageConfig `mapstructure:"storage"`
	Keys    KeyConfig     `mapstructure:"keys"`
}

type FeedConfig struct {
	// Source is a JSON collection or RSS/Atom feed, given as an http(s)
	// URL or a local file path.
	Source      string        `mapstructure:"source"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type UIConfig struct {
	ItemsPerPage int    `mapstructure:"items_per_page"`
	Theme        string `mapstructure:"theme"`
	SummaryWidth int    `mapstructure:"summary_width"`
	WordWrapMax  int    `mapstructure:"word_wrap_max"`
	WordWrapMin  int    `mapstructure:"word_wrap_min"`
}

type ShareConfig struct {
	// Origin and Path form the permalink base; the article anchor is
	// appended as a fragment.
	Origin string `mapstructure:"origin"`
	Path   string `mapstructure:"path"`
}

type MediaConfig struct {
	Darwin        MediaPlayers `mapstructure:"darwin"`
	Linux         MediaPlayers `mapstructure:"linux"`
	Windows       MediaPlayers `mapstructure:"windows"`
	DefaultOpener string       `mapstructure:"default_opener"`
}

type MediaPlayers struct {
	Video []string `mapstructure:"video"`
	Image []string `mapstructure:"image"`
}

type StorageConfig struct {
	PrefsPath     string `mapstructure:"prefs_path"`
	ImageCacheDir string `mapstructure:"image_cache_dir"`
}

type KeyConfig struct {
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit       string `mapstructure:"quit"`
	Search     string `mapstructure:"search"`
	DeepSearch string `mapstructure:"deep_search"`
	NextPage   string `mapstructure:"next_page"`
	PrevPage   string `mapstructure:"prev_page"`
	Expand     string `mapstructure:"expand"`
	Share      string `mapstructure:"share"`
	OpenMedia  string `mapstructure:"open_media"`
	NextTag    string `mapstructure:"next_tag"`
	PrevTag    string `mapstructure:"prev_tag"`
	Theme      string `mapstructure:"theme"`
	Back       string `mapstructure:"back"`
}

func defaultConfig() *Config {
	prefsPath := filepath.Join(xdg.DataHome, "newsrack", "prefs.db")
	cacheDir := filepath.Join(xdg.CacheHome, "newsrack", "images")

	return &Config{
		Feed: FeedConfig{
			Source:      "data/news.json",
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "newsrack/1.0 (news feed browser)",
		},
		UI: UIConfig{
			ItemsPerPage: 3,
			Theme:        "night",
			SummaryWidth: 150,
			WordWrapMax:  120,
			WordWrapMin:  40,
		},
		Share: ShareConfig{
			Origin: "https://news.example.com",
			Path:   "/index.html",
		},
		Media: MediaConfig{
			Darwin: MediaPlayers{
				Video: []string{"iina", "mpv", "vlc"},
				Image: []string{"preview", "open"},
			},
			Linux: MediaPlayers{
				Video: []string{"mpv", "vlc", "mplayer"},
				Image: []string{"sxiv", "feh", "eog", "xdg-open"},
			},
			Windows: MediaPlayers{
				Video: []string{"mpv", "vlc"},
				Image: []string{"start"},
			},
			DefaultOpener: getDefaultOpener(),
		},
		Storage: StorageConfig{
			PrefsPath:     prefsPath,
			ImageCacheDir: cacheDir,
		},
		Keys: KeyConfig{
			Bindings: KeyBindings{
				Quit:       "q",
				Search:     "/",
				DeepSearch: "f",
				NextPage:   "right",
				PrevPage:   "left",
				Expand:     "enter",
				Share:      "s",
				OpenMedia:  "o",
				NextTag:    "]",
				PrevTag:    "[",
				Theme:      "t",
				Back:       "esc",
			},
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("feed", cfg.Feed)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("share", cfg.Share)
	v.SetDefault("media", cfg.Media)
	v.SetDefault("storage", cfg.Storage)
	v.SetDefault("keys", cfg.Keys)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "newsrack"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NEWSRACK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to the home directory and converts to an absolute path.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Storage.PrefsPath = expandPath(cfg.Storage.PrefsPath)
	cfg.Storage.ImageCacheDir = expandPath(cfg.Storage.ImageCacheDir)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations are written as strings so the TOML stays readable.
	feedCfg := map[string]interface{}{
		"source":       config.Feed.Source,
		"http_timeout": config.Feed.HTTPTimeout.String(),
		"user_agent":   config.Feed.UserAgent,
	}

	v.Set("feed", feedCfg)
	v.Set("ui", config.UI)
	v.Set("share", config.Share)
	v.Set("media", config.Media)
	v.Set("storage", config.Storage)
	v.Set("keys", config.Keys)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsrack", "config.toml")
}
