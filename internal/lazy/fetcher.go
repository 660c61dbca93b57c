package lazy

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"newsrack/internal/debuglog"
	"newsrack/internal/validation"
)

// Fetcher downloads deferred images into the cache directory. A URL is
// fetched at most once; subsequent calls return the cached file.
type Fetcher struct {
	client    *http.Client
	cacheDir  string
	validator *validation.SourceURLValidator
}

func NewFetcher(cacheDir string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		cacheDir:  cacheDir,
		validator: NewFetcherValidator(),
	}
}

// NewFetcherValidator allows any public http(s) image host.
func NewFetcherValidator() *validation.SourceURLValidator {
	return validation.NewSourceURLValidator()
}

// SetPermissiveValidation admits localhost image hosts, used by tests.
func (f *Fetcher) SetPermissiveValidation(permissive bool) {
	if permissive {
		f.validator = validation.NewPermissiveSourceURLValidator()
	} else {
		f.validator = validation.NewSourceURLValidator()
	}
}

// Fetch downloads url and returns the local cache path.
func (f *Fetcher) Fetch(url string) (string, error) {
	normalized, err := f.validator.ValidateAndNormalize(url)
	if err != nil {
		return "", fmt.Errorf("invalid image URL: %w", err)
	}

	local := f.cachePath(normalized)
	if _, statErr := os.Stat(local); statErr == nil {
		return local, nil
	}

	if err := os.MkdirAll(f.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating image cache: %w", err)
	}

	resp, err := f.client.Get(normalized)
	if err != nil {
		return "", fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(f.cacheDir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("creating cache file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing image: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), local); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("placing cache file: %w", err)
	}

	debuglog.Debugf("cached image %s -> %s", normalized, local)
	return local, nil
}

func (f *Fetcher) cachePath(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x%s", sum[:16], extensionOf(url))
	return filepath.Join(f.cacheDir, name)
}

func extensionOf(url string) string {
	trimmed := url
	if i := strings.IndexAny(trimmed, "?#"); i != -1 {
		trimmed = trimmed[:i]
	}
	ext := strings.ToLower(filepath.Ext(trimmed))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".avif":
		return ext
	}
	return ".img"
}
