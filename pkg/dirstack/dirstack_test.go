package dirstack

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToProcessDirectory(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	s, err := New("")
	require.NoError(t, err)
	assert.Equal(t, cwd, s.Getcwd())
}

func TestNew_RootedAtDir(t *testing.T) {
	s, err := New("/tmp")
	require.NoError(t, err)
	assert.Equal(t, "/tmp", s.Getcwd())
}

func TestPushdPopd(t *testing.T) {
	s, err := New("/tmp")
	require.NoError(t, err)

	got := s.Pushd("/usr")
	assert.Equal(t, "/usr", got)
	assert.Equal(t, "/usr", s.Getcwd())

	// Relative paths resolve against the current top.
	got = s.Pushd("local")
	assert.Equal(t, "/usr/local", got)

	assert.Equal(t, "/usr", s.Popd())
	assert.Equal(t, "/tmp", s.Popd())
}

func TestPopd_RootIsNoOp(t *testing.T) {
	s, err := New("/tmp")
	require.NoError(t, err)

	assert.Equal(t, "/tmp", s.Popd())
	assert.Equal(t, "/tmp", s.Getcwd())
}

func TestIn_RestoresOnError(t *testing.T) {
	s, err := New("/tmp")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.In("/usr", func() error {
		assert.Equal(t, "/usr", s.Getcwd())
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "/tmp", s.Getcwd())
}

func TestGetcwd_ConcurrentReads(t *testing.T) {
	s, err := New("/tmp")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got := s.Getcwd()
				assert.True(t, filepath.IsAbs(got))
			}
		}()
	}
	for j := 0; j < 100; j++ {
		s.Pushd("sub")
		s.Popd()
	}
	wg.Wait()
	assert.Equal(t, "/tmp", s.Getcwd())
}

func TestIndependentStacksDoNotInterfere(t *testing.T) {
	a, err := New("/tmp")
	require.NoError(t, err)
	b, err := New("/usr")
	require.NoError(t, err)

	a.Pushd("/var")
	assert.Equal(t, "/var", a.Getcwd())
	assert.Equal(t, "/usr", b.Getcwd())
}
