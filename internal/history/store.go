// Package history keeps the durable, capped, most-recent-first record of
// past analysis results.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/logger"
)

// MaxEntries caps the store to the 15 most recent results.
const MaxEntries = 15

// Store is the persisted history of past analyses. The persisted and
// in-memory representations are identical immediately after every Append;
// persistence is a single atomic replace of the whole list.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries []*forensic.AnalysisResult
	log     *logger.Logger
}

// NewStore creates a store persisting to path. Call Load before use.
func NewStore(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.New("history", nil)
	}
	return &Store{path: path, log: log}
}

// Load reads the persisted list. A missing or corrupt file yields an empty
// store; startup never fails on history.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read history, starting empty", logger.Err(err))
		}
		return
	}

	var entries []*forensic.AnalysisResult
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("corrupt history, starting empty", logger.Err(err))
		return
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	s.entries = entries
}

// Append prepends result, truncates to the cap, persists the truncated list
// atomically, and returns the new list. Only successful analyses belong
// here; failures never reach the store.
func (s *Store) Append(result *forensic.AnalysisResult) ([]*forensic.AnalysisResult, error) {
	if result == nil {
		return s.Entries(), fmt.Errorf("nil result")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]*forensic.AnalysisResult, 0, len(s.entries)+1)
	entries = append(entries, result)
	entries = append(entries, s.entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	if err := s.persist(entries); err != nil {
		return s.copyLocked(), fmt.Errorf("failed to persist history: %w", err)
	}
	s.entries = entries
	return s.copyLocked(), nil
}

// Select looks up an entry by id for re-display. An absent id is a caller
// error; the UI only passes known ids.
func (s *Store) Select(id string) (*forensic.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Entries returns a copy of the current list, most recent first.
func (s *Store) Entries() []*forensic.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Path returns the persistence location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) copyLocked() []*forensic.AnalysisResult {
	out := make([]*forensic.AnalysisResult, len(s.entries))
	copy(out, s.entries)
	return out
}

// persist writes the whole list to a temp file in the same directory and
// renames it over the target, so a crash never leaves half a write.
func (s *Store) persist(entries []*forensic.AnalysisResult) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}
