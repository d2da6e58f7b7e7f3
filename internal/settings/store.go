package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// KeyVimModeEnabled is the settings key holding the enabled flag.
const KeyVimModeEnabled = "vimModeEnabled"

// FileName is the default settings file name.
const FileName = "settings.json"

// Settings errors.
var (
	// ErrInvalidSettings is returned when the file is not a JSON object.
	ErrInvalidSettings = errors.New("invalid settings file")

	// ErrWrongType is returned when the key holds a non-boolean value.
	ErrWrongType = errors.New("setting has wrong type")
)

// Store reads and writes the settings file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns <user config dir>/modalkeys/settings.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "modalkeys", FileName), nil
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// VimModeEnabled returns the persisted flag. A missing file or key reads
// as false.
func (s *Store) VimModeEnabled() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return false, err
	}
	return parseEnabled(data)
}

// SetVimModeEnabled writes the flag, keeping all other keys.
func (s *Store) SetVimModeEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	out, err := sjson.SetBytes(data, KeyVimModeEnabled, enabled)
	if err != nil {
		return fmt.Errorf("setting %s: %w", KeyVimModeEnabled, err)
	}
	return s.write(out)
}

// Reset removes the flag from the file so it reads as the default again.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	if !gjson.GetBytes(data, KeyVimModeEnabled).Exists() {
		return nil
	}
	out, err := sjson.DeleteBytes(data, KeyVimModeEnabled)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", KeyVimModeEnabled, err)
	}
	return s.write(out)
}

// read returns the file content, "{}" when it does not exist.
func (s *Store) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []byte("{}"), nil
		}
		return nil, fmt.Errorf("reading settings %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return []byte("{}"), nil
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSettings, s.path)
	}
	return data, nil
}

// write replaces the file atomically.
func (s *Store) write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing settings %s: %w", s.path, err)
	}
	return nil
}

func parseEnabled(data []byte) (bool, error) {
	v := gjson.GetBytes(data, KeyVimModeEnabled)
	switch v.Type {
	case gjson.Null:
		return false, nil
	case gjson.True, gjson.False:
		return v.Bool(), nil
	default:
		return false, fmt.Errorf("%w: %s is %s", ErrWrongType, KeyVimModeEnabled, v.Type)
	}
}
