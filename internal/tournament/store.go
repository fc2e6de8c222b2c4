package tournament

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cardroomhq/cardroom/internal/fileutil"
)

// ErrNotFound is returned when a tournament record does not exist.
var ErrNotFound = errors.New("tournament: not found")

// Store persists tournament records as one JSON file per tournament.
// Writes are atomic so a crash mid-save never corrupts a record.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) a record directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes a tournament record.
func (s *Store) Save(t *Tournament) error {
	return fileutil.WriteJSONAtomic(s.path(t.Name), t, 0o644)
}

// Load reads a tournament record by name.
func (s *Store) Load(name string) (*Tournament, error) {
	var t Tournament
	if err := fileutil.ReadJSON(s.path(name), &t); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, err
	}
	return &t, nil
}

// List returns the names of every stored tournament, in directory order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}

// Delete removes a tournament record.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return err
	}
	return nil
}
