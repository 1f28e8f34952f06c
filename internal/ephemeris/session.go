package ephemeris

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrSessionNotInitialized is returned when a session is used before Init.
var ErrSessionNotInitialized = errors.New("ephemeris session not initialized")

// Session owns the location of ephemeris data for the lifetime of the
// process. It is initialized at most once: the first successful Init fixes
// the data directory and later calls are no-ops. A zero Session is ready for
// Init.
type Session struct {
	once sync.Once
	mu   sync.RWMutex
	dir  string
	err  error
}

// NewSession returns an uninitialized session.
func NewSession() *Session {
	return &Session{}
}

// Init points the session at the directory holding observation files. Only
// the first call has any effect; its result is returned by every call.
func (s *Session) Init(dir string) error {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		abs, err := filepath.Abs(dir)
		if err != nil {
			s.err = fmt.Errorf("ephemeris: resolve data dir %s: %w", dir, err)
			return
		}
		info, err := os.Stat(abs)
		if err != nil {
			s.err = fmt.Errorf("ephemeris: data dir %s: %w", abs, err)
			return
		}
		if !info.IsDir() {
			s.err = fmt.Errorf("ephemeris: data dir %s is not a directory", abs)
			return
		}
		s.dir = abs
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Dir returns the configured data directory.
func (s *Session) Dir() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return "", s.err
	}
	if s.dir == "" {
		return "", ErrSessionNotInitialized
	}
	return s.dir, nil
}

// Resolve returns the path of name inside the data directory. Absolute names
// are returned unchanged.
func (s *Session) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir, err := s.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
