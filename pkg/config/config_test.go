package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTaskFile(t *testing.T, content string) string {
	t.Helper()
	AppFs = afero.NewMemMapFs()
	t.Cleanup(func() { AppFs = afero.NewOsFs() })

	err := afero.WriteFile(AppFs, "shellout.yaml", []byte(content), 0644)
	require.NoError(t, err)
	return "shellout.yaml"
}

func TestLoad_Valid(t *testing.T) {
	path := writeTaskFile(t, `
defaults:
  retries: 3
  pollrate: 10s
tasks:
  - name: build
    command: make build
    dir: ./src
    retries: 2
    on_retry: make clean
  - name: test
    command: "go test ./..."
`)

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, f.Defaults.Retries)
	assert.Len(t, f.Tasks, 2)
	assert.Equal(t, "build", f.Tasks[0].Name)
	assert.Equal(t, "./src", f.Tasks[0].Dir)
}

func TestLoad_MissingFile(t *testing.T) {
	AppFs = afero.NewMemMapFs()
	t.Cleanup(func() { AppFs = afero.NewOsFs() })

	_, err := Load("nope.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTaskFile(t, "tasks: [}")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	path := writeTaskFile(t, `
defaults:
  pollrate: soon
tasks:
  - name: build
    command: make build
  - name: build
    command: ""
  - name: ""
    command: "echo 'oops"
    retries: -1
    pollrate: fast
`)

	_, err := Load(path)
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)

	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	assert.Contains(t, fields, "defaults.pollrate")
	assert.Contains(t, fields, "tasks[1].name")
	assert.Contains(t, fields, "tasks[1].command")
	assert.Contains(t, fields, "tasks[2].name")
	assert.Contains(t, fields, "tasks[2].command")
	assert.Contains(t, fields, "tasks[2].retries")
	assert.Contains(t, fields, "tasks[2].pollrate")
}

func TestLookup_FoldsDefaults(t *testing.T) {
	path := writeTaskFile(t, `
defaults:
  retries: 5
  pollrate: 2s
  on_retry: make clean
tasks:
  - name: build
    command: make build
  - name: deploy
    command: make deploy
    retries: 1
    pollrate: 30s
    on_retry: make rollback
`)

	f, err := Load(path)
	require.NoError(t, err)

	build, ok := f.Lookup("build")
	require.True(t, ok)
	assert.Equal(t, 5, build.Retries)
	assert.Equal(t, "2s", build.PollRate)
	assert.Equal(t, "make clean", build.OnRetry)

	deploy, ok := f.Lookup("deploy")
	require.True(t, ok)
	assert.Equal(t, 1, deploy.Retries)
	assert.Equal(t, "30s", deploy.PollRate)
	assert.Equal(t, "make rollback", deploy.OnRetry)

	_, ok = f.Lookup("missing")
	assert.False(t, ok)
}

func TestTask_AssertOpts(t *testing.T) {
	task := Task{Name: "build", Command: "make build", Retries: 4, PollRate: "1m", OnRetry: "make clean"}

	opts, err := task.AssertOpts()
	require.NoError(t, err)

	assert.Equal(t, 4, opts.Retries)
	assert.Equal(t, time.Minute, opts.PollRate)
	require.NotNil(t, opts.OnRetry)
	assert.Equal(t, "make clean", opts.OnRetry.String())
}

func TestTask_AssertOpts_NoOptionalFields(t *testing.T) {
	task := Task{Name: "build", Command: "make build"}

	opts, err := task.AssertOpts()
	require.NoError(t, err)

	assert.Zero(t, opts.Retries)
	assert.Zero(t, opts.PollRate)
	assert.Nil(t, opts.OnRetry)
}

func TestValidationErrors_Message(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}
	assert.Equal(t, "a: first; b: second", errs.Error())
}
