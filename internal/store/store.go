package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/2Lynk/DeathLogger-server/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Store is the flat-file collection of all death records.
type Store interface {
	Load() []models.DeathRecord
	Save(records []models.DeathRecord) error
	Append(record models.DeathRecord) error
}

// FileStore keeps every record in a single JSON array on disk. A mutex
// serializes access within the process; a writer in another process
// still races and the last write wins.
type FileStore struct {
	path string
	log  *logrus.Logger
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string, log *logrus.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create store directory")
	}
	return &FileStore{path: path, log: log}, nil
}

// Load returns the full contents of the store. A missing file or
// unparseable contents yield an empty slice rather than an error.
func (s *FileStore) Load() []models.DeathRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save overwrites the file with the full serialized sequence.
func (s *FileStore) Save(records []models.DeathRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(records)
}

// Append performs the read-modify-write used by ingestion.
func (s *FileStore) Append(record models.DeathRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.loadLocked()
	records = append(records, record)
	return s.saveLocked(records)
}

func (s *FileStore) loadLocked() []models.DeathRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).WithField("path", s.path).Warn("Failed to read store file, treating as empty")
		}
		return []models.DeathRecord{}
	}

	var records []models.DeathRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.WithError(err).WithField("path", s.path).Warn("Failed to parse store file, treating as empty")
		return []models.DeathRecord{}
	}
	return records
}

func (s *FileStore) saveLocked(records []models.DeathRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize records")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write store file %s", s.path)
	}
	return nil
}
