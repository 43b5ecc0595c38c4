// Package dirstack tracks a logical working directory independent of the
// process-wide one. Each logical execution context owns its own Stack, so
// concurrent workers can each run commands "in" a different directory without
// ever touching os.Chdir.
package dirstack

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Stack is a push/pop working-directory stack. The zero value is not usable;
// construct one with New. All methods are safe for concurrent use.
type Stack struct {
	mu   sync.RWMutex
	dirs []string
}

// New returns a Stack rooted at dir. An empty dir roots the stack at the
// process working directory.
func New(dir string) (*Stack, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		dir = cwd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	return &Stack{dirs: []string{abs}}, nil
}

// Getcwd returns the directory commands should currently run in.
func (s *Stack) Getcwd() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirs[len(s.dirs)-1]
}

// Pushd makes dir the current directory until the matching Popd. Relative
// paths resolve against the current top of the stack, not the process
// directory. Returns the resulting current directory.
func (s *Stack) Pushd(dir string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.dirs[len(s.dirs)-1], dir)
	}
	dir = filepath.Clean(dir)
	s.dirs = append(s.dirs, dir)
	return dir
}

// Popd restores the previous directory and returns it. Popping the root is a
// no-op.
func (s *Stack) Popd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.dirs) > 1 {
		s.dirs = s.dirs[:len(s.dirs)-1]
	}
	return s.dirs[len(s.dirs)-1]
}

// In runs fn with dir as the current directory, restoring the previous
// directory when fn returns.
func (s *Stack) In(dir string, fn func() error) error {
	s.Pushd(dir)
	defer s.Popd()
	return fn()
}
