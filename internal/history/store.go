package history

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/puskesmas-sedau/robot-ssa/internal/pkg/logger"
)

// Store persists upload records in a single JSON file.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewStore creates a Store backed by the given file path. The file does
// not need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// LoadAll returns every record in upload order. A missing or corrupt log
// file is treated as an empty history, never as a fatal error.
func (s *Store) LoadAll() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("history: log unreadable, treating as empty", "path", s.path, "error", err)
		}
		return []Record{}
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("history: log corrupt, treating as empty", "path", s.path, "error", err)
		return []Record{}
	}
	return records
}

// Append durably adds one record to the end of the log. The whole log is
// rewritten; duplicates are permitted if the same file is uploaded twice.
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append(s.load(), rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Today returns the records whose upload timestamp falls on the current
// date, matched by string prefix against the stored timestamp format.
func (s *Store) Today() []Record {
	today := s.now().Format(DateFormat)
	return s.Filter(today, "", "")
}

// Filter returns the records matching every non-empty criterion:
// date is a DateFormat prefix of the upload timestamp, status and
// username are exact matches.
func (s *Store) Filter(date, status, username string) []Record {
	records := s.LoadAll()

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if date != "" && !strings.HasPrefix(r.WaktuUpload, date) {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		if username != "" && r.Username != username {
			continue
		}
		out = append(out, r)
	}
	return out
}
