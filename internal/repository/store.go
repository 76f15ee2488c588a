package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrAlreadyResolved = errors.New("report already resolved")
	ErrLinkNotFound    = errors.New("link entry not found")
	ErrLinkNumberUsed  = errors.New("link number must be greater than the last entry")
)

// state is the full persisted document, keyed by logical section.
type state struct {
	Reports      map[string]*Report       `json:"reports"`
	Counters     map[string]*UserCounters `json:"user_counters"`
	Links        []LinkEntry              `json:"link_registry"`
	TempMessages []TemporaryMessage       `json:"temp_messages,omitempty"`
	ReportSeq    uint64                   `json:"report_seq"`
}

func newState() *state {
	return &state{
		Reports:  make(map[string]*Report),
		Counters: make(map[string]*UserCounters),
	}
}

// Store owns the durable state document. All mutations go through Update,
// which serializes the read-modify-write and rewrites the document atomically
// (write to a temp file in the same directory, then rename). The store mutex
// is the single writer required by the recovery model: a mutation is either
// fully on disk or not at all.
type Store struct {
	logger *slog.Logger
	path   string

	mu sync.Mutex
	st *state
}

func OpenStore(logger *slog.Logger, path string) (*Store, error) {
	s := &Store{logger: logger, path: path, st: newState()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("State file missing, starting empty", "path", path)
			return s, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		// Corrupt state is recovered as empty rather than refusing to start.
		logger.Warn("State file unreadable, starting empty", "path", path, "error", err)
		return s, nil
	}
	if st.Reports == nil {
		st.Reports = make(map[string]*Report)
	}
	if st.Counters == nil {
		st.Counters = make(map[string]*UserCounters)
	}
	s.st = &st
	return s, nil
}

// Update applies fn to the state under the writer lock and persists the
// result. If fn returns an error nothing is written and the in-memory state
// is assumed unchanged by fn.
func (s *Store) Update(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.st); err != nil {
		return err
	}
	return s.save()
}

// View runs fn with read access under the same lock. fn must not mutate.
func (s *Store) View(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
