package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/logger"
)

// FileStore keeps the newest profile in <dir>/<key>.json and the retained
// revisions, oldest first, in <dir>/<key>.history.jsonl.
type FileStore struct {
	dir     string
	history int
	mu      sync.Mutex
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string, history int) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{dir: dir, history: max(history, 1)}, nil
}

func (s *FileStore) paths(key string) (current, history string, err error) {
	k, err := NormalizeKey(key)
	if err != nil {
		return "", "", err
	}
	return filepath.Join(s.dir, k+".json"), filepath.Join(s.dir, k+".history.jsonl"), nil
}

func (s *FileStore) Save(_ context.Context, key string, p brand.Profile) error {
	current, histPath, err := s.paths(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	revs, err := s.readHistory(histPath)
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return err
	}
	if err != nil {
		logger.Warn("store: discarding corrupt history %s: %v", histPath, err)
		revs = nil
	}

	var next uint64 = 1
	if n := len(revs); n > 0 {
		next = revs[n-1].Number + 1
	}
	revs = append(revs, Revision{Number: next, SavedAt: time.Now().UTC(), Profile: p.Clone()})
	if over := len(revs) - s.history; over > 0 {
		revs = revs[over:]
	}

	data, err := json.MarshalIndent(p.Clone(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling brand profile: %w", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range revs {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("marshaling revision: %w", err)
		}
	}

	// History goes first: a failure between the two writes must never leave
	// a current profile that no revision records.
	if err := replaceFile(histPath, buf.Bytes()); err != nil {
		return err
	}
	if err := replaceFile(current, data); err != nil {
		return err
	}

	logger.Debug("store: saved revision %d to %s", next, current)
	return nil
}

func (s *FileStore) Load(_ context.Context, key string) (brand.Profile, bool, error) {
	current, _, err := s.paths(key)
	if err != nil {
		return brand.Profile{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(current)
	if errors.Is(err, os.ErrNotExist) {
		return brand.Profile{}, false, nil
	}
	if err != nil {
		return brand.Profile{}, false, fmt.Errorf("reading brand profile: %w", err)
	}
	p, err := decode(data)
	if err != nil {
		return brand.Profile{}, false, err
	}
	return p, true, nil
}

func (s *FileStore) History(_ context.Context, key string) ([]Revision, error) {
	_, histPath, err := s.paths(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	revs, err := s.readHistory(histPath)
	if err != nil {
		return nil, err
	}
	slices.Reverse(revs)
	return revs, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) readHistory(path string) ([]Revision, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = f.Close() }()

	var revs []Revision
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		r, err := decodeRevision(line)
		if err != nil {
			return nil, err
		}
		revs = append(revs, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return revs, nil
}

// replaceFile is swapped out in tests to fail individual writes.
var replaceFile = writeAtomic

// writeAtomic replaces path via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
