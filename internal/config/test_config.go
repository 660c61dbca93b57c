package config

import "time"

// TestConfig returns a config suitable for testing.
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Feed = FeedConfig{
		Source:      "testdata/news.json",
		HTTPTimeout: 5 * time.Second,
		UserAgent:   "newsrack-test/1.0",
	}
	return cfg
}
