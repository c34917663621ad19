// Package storage persists value documents as JSON files with atomic writes
// and timestamped backups. The CLI uses it to keep registry exports and
// validation reports on disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/valkit/valkit/logging"
	"github.com/valkit/valkit/valerrors"
	"github.com/valkit/valkit/value"
)

const (
	fileExt    = ".json"
	backupDir  = "backups"
	timeLayout = "20060102-150405"
)

// Store reads and writes named JSON documents under a base directory.
// Writes are atomic: content goes to a temp file which is renamed into
// place, so readers never observe a partial document.
type Store struct {
	basePath   string
	maxBackups int
	logger     logging.Logger
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxBackups caps the retained backups per name; older ones are pruned.
// Defaults to 5. Zero disables pruning.
func WithMaxBackups(n int) Option {
	return func(s *Store) {
		s.maxBackups = n
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store rooted at basePath, creating the directory if needed.
func New(basePath string, opts ...Option) (*Store, error) {
	if basePath == "" {
		return nil, &valerrors.ConfigError{Option: "base_path", Message: "must not be empty"}
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", basePath, err)
	}
	s := &Store{
		basePath:   basePath,
		maxBackups: 5,
		logger:     logging.NopLogger{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.basePath, name+fileExt)
}

// Write persists a document under name, replacing any previous content
// atomically.
func (s *Store) Write(name string, doc value.Value) error {
	data, err := value.EncodeJSON(doc)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.basePath, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		return fmt.Errorf("storage: rename %s: %w", name, err)
	}

	s.logger.Info("document written", "name", name, "bytes", len(data))
	return nil
}

// Read loads the document stored under name.
func (s *Store) Read(name string) (value.Value, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return value.Null(), &valerrors.NotFoundError{Kind: "document", Name: name}
		}
		return value.Null(), fmt.Errorf("storage: read %s: %w", name, err)
	}
	doc, err := value.DecodeJSON(data)
	if err != nil {
		return value.Null(), fmt.Errorf("storage: decode %s: %w", name, err)
	}
	return doc, nil
}

// Exists reports whether a document is stored under name.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// List returns the names of all stored documents, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", s.basePath, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the document stored under name.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return &valerrors.NotFoundError{Kind: "document", Name: name}
		}
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	s.logger.Info("document deleted", "name", name)
	return nil
}

// Backup copies the current content of name into the backups directory with
// a timestamp suffix, then prunes backups beyond the retention cap.
func (s *Store) Backup(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", &valerrors.NotFoundError{Kind: "document", Name: name}
		}
		return "", fmt.Errorf("storage: backup read %s: %w", name, err)
	}

	dir := filepath.Join(s.basePath, backupDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: backup dir: %w", err)
	}

	stamp := s.now().UTC().Format(timeLayout)
	backupPath := filepath.Join(dir, fmt.Sprintf("%s-%s%s", name, stamp, fileExt))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: backup write %s: %w", name, err)
	}

	if err := s.pruneBackups(name); err != nil {
		return "", err
	}

	s.logger.Info("backup created", "name", name, "path", backupPath)
	return backupPath, nil
}

// Backups returns the backup file paths for name, oldest first.
func (s *Store) Backups(name string) ([]string, error) {
	dir := filepath.Join(s.basePath, backupDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list backups: %w", err)
	}
	prefix := name + "-"
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), fileExt) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// pruneBackups drops the oldest backups of name beyond the retention cap.
func (s *Store) pruneBackups(name string) error {
	if s.maxBackups <= 0 {
		return nil
	}
	paths, err := s.Backups(name)
	if err != nil {
		return err
	}
	for len(paths) > s.maxBackups {
		if err := os.Remove(paths[0]); err != nil {
			return fmt.Errorf("storage: prune backup: %w", err)
		}
		paths = paths[1:]
	}
	return nil
}
