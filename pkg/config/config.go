// Package config loads shellout task files: a set of named commands plus
// shared retry defaults.
package config

import (
	"fmt"
	"time"

	"shellout/pkg/shell"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// AppFs is the filesystem task files are read through. Tests swap it for a
// MemMapFs.
var AppFs = afero.NewOsFs()

// Defaults apply to any task that leaves the matching field unset.
type Defaults struct {
	Retries  int    `yaml:"retries"`
	PollRate string `yaml:"pollrate"`
	OnRetry  string `yaml:"on_retry"`
}

// Task is one named command in a task file.
type Task struct {
	Name     string `yaml:"name"`
	Command  string `yaml:"command"`
	Dir      string `yaml:"dir"`
	Retries  int    `yaml:"retries"`
	PollRate string `yaml:"pollrate"`
	OnRetry  string `yaml:"on_retry"`
}

// File is a parsed and validated task file.
type File struct {
	Defaults Defaults `yaml:"defaults"`
	Tasks    []Task   `yaml:"tasks"`
}

// Load reads and validates the task file at filename.
func Load(filename string) (*File, error) {
	raw, err := afero.ReadFile(AppFs, filename)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	return &f, nil
}

// Lookup returns the named task with file-level defaults folded in.
func (f *File) Lookup(name string) (Task, bool) {
	for _, t := range f.Tasks {
		if t.Name != name {
			continue
		}
		if t.Retries == 0 {
			t.Retries = f.Defaults.Retries
		}
		if t.PollRate == "" {
			t.PollRate = f.Defaults.PollRate
		}
		if t.OnRetry == "" {
			t.OnRetry = f.Defaults.OnRetry
		}
		return t, true
	}
	return Task{}, false
}

// AssertOpts converts the task's retry settings into shell options.
func (t Task) AssertOpts() (shell.AssertOpts, error) {
	opts := shell.AssertOpts{Retries: t.Retries}
	if t.PollRate != "" {
		d, err := time.ParseDuration(t.PollRate)
		if err != nil {
			return opts, fmt.Errorf("task %s: invalid pollrate: %w", t.Name, err)
		}
		opts.PollRate = d
	}
	if t.OnRetry != "" {
		cmd, err := shell.Parse(t.OnRetry)
		if err != nil {
			return opts, fmt.Errorf("task %s: invalid on_retry: %w", t.Name, err)
		}
		opts.OnRetry = &cmd
	}
	return opts, nil
}

// Validate collects every problem in the file rather than stopping at the
// first one.
func (f *File) Validate() ValidationErrors {
	var errs ValidationErrors

	if f.Defaults.Retries < 0 {
		errs = append(errs, ValidationError{Field: "defaults.retries", Message: "must not be negative"})
	}
	if f.Defaults.PollRate != "" {
		if _, err := time.ParseDuration(f.Defaults.PollRate); err != nil {
			errs = append(errs, ValidationError{Field: "defaults.pollrate", Message: err.Error()})
		}
	}

	seen := make(map[string]bool)
	for i, t := range f.Tasks {
		field := func(name string) string { return fmt.Sprintf("tasks[%d].%s", i, name) }

		if t.Name == "" {
			errs = append(errs, ValidationError{Field: field("name"), Message: "name is required"})
		} else if seen[t.Name] {
			errs = append(errs, ValidationError{Field: field("name"), Message: fmt.Sprintf("duplicate task name %q", t.Name)})
		}
		seen[t.Name] = true

		if t.Command == "" {
			errs = append(errs, ValidationError{Field: field("command"), Message: "command is required"})
		} else if _, err := shell.Parse(t.Command); err != nil {
			errs = append(errs, ValidationError{Field: field("command"), Message: err.Error()})
		}

		if t.Retries < 0 {
			errs = append(errs, ValidationError{Field: field("retries"), Message: "must not be negative"})
		}
		if t.PollRate != "" {
			if _, err := time.ParseDuration(t.PollRate); err != nil {
				errs = append(errs, ValidationError{Field: field("pollrate"), Message: err.Error()})
			}
		}
		if t.OnRetry != "" {
			if _, err := shell.Parse(t.OnRetry); err != nil {
				errs = append(errs, ValidationError{Field: field("on_retry"), Message: err.Error()})
			}
		}
	}

	return errs
}
