// Package profile persists the single per-installation user profile as
// one JSON document at a fixed location.
package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"retirement-engine/internal/model"
)

const fileName = "profile.json"

type Store struct {
	path string
	log  zerolog.Logger
}

func NewStore(dataDir string, log zerolog.Logger) *Store {
	return &Store{
		path: filepath.Join(dataDir, fileName),
		log:  log.With().Str("component", "profile-store").Logger(),
	}
}

// Path returns the location of the persisted profile document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted profile. A missing file is a normal not-found
// outcome (found=false, nil error); malformed content or an I/O failure
// is reported as an error.
func (s *Store) Load() (*model.UserProfile, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading profile: %w", err)
	}

	var p model.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false, fmt.Errorf("parsing profile: %w", err)
	}
	return &p, true, nil
}

// Save writes the profile, overwriting any previous record. SavedAt is
// always stamped by the store, never taken from the caller. Returns the
// storage location.
func (s *Store) Save(p *model.UserProfile) (string, error) {
	now := time.Now().UTC()
	p.SavedAt = &now

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding profile: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing profile: %w", err)
	}

	s.log.Debug().Str("path", s.path).Msg("profile saved")
	return s.path, nil
}

func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Delete removes the persisted profile. Returns false when nothing
// existed to delete.
func (s *Store) Delete() bool {
	if err := os.Remove(s.path); err != nil {
		return false
	}
	s.log.Debug().Str("path", s.path).Msg("profile deleted")
	return true
}
