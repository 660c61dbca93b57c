package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var prefsBucket = []byte("prefs")

const themeKey = "theme"

// Store persists small user preferences between sessions. It sits outside
// the state-to-view pipeline: reads happen at startup, writes on change,
// and nothing here ever feeds back into the application state.
type Store struct {
	db *bolt.DB
}

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating prefs directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening prefs database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(prefsBucket)
		return createErr
	})
	if err != nil {
		return nil, fmt.Errorf("creating prefs bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Theme returns the stored theme name, or fallback when none was saved yet.
func (s *Store) Theme(fallback string) string {
	theme := fallback
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(prefsBucket).Get([]byte(themeKey)); v != nil {
			theme = string(v)
		}
		return nil
	})
	return theme
}

// SetTheme stores the theme name under its fixed key.
func (s *Store) SetTheme(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(prefsBucket).Put([]byte(themeKey), []byte(name))
	})
}
