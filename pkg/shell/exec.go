// Package shell runs external commands for build and release automation:
// full output capture, fixed-interval retries with optional remediation, and
// fail-fast assertions on exit codes.
package shell

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"shellout/pkg/dirstack"
	"shellout/pkg/log"

	"github.com/google/uuid"
)

// Exec runs commands in the directory its stack currently points at. One
// Exec per logical execution context; two Execs with separate stacks never
// interfere with each other's working directories.
type Exec struct {
	logger log.Logger
	dirs   *dirstack.Stack

	sleep func(time.Duration)
}

// New returns an Exec that resolves working directories from dirs. A nil
// logger silences all debug output.
func New(logger log.Logger, dirs *dirstack.Stack) *Exec {
	if logger == nil {
		logger = log.Nop()
	}
	return &Exec{logger: logger, dirs: dirs, sleep: time.Sleep}
}

// Gather launches cmd in the stack's current directory, waits for it, and
// returns the exit code and both captured output streams. A nonzero exit is
// a normal Result, not an error; judging exit codes belongs to callers. The
// error return is reserved for processes that could not be started at all,
// which is a configuration problem and never retried here.
func (e *Exec) Gather(cmd Command) (Result, error) {
	argv, err := cmd.Argv()
	if err != nil {
		return Result{}, err
	}

	cwd := e.dirs.Getcwd()
	runID := uuid.New().String()
	e.logger.Debug("gather: executing", "run_id", runID, "cwd", cwd, "argv", argv)

	proc := exec.Command(argv[0], argv[1:]...)
	proc.Dir = cwd

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	if err := proc.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("launching %s: %w", argv[0], err)
		}
	}

	res := Result{
		RunID:    runID,
		ExitCode: proc.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}
	e.logger.Debug("gather: process exited",
		"run_id", runID, "exit_code", res.ExitCode,
		"stdout", stdout.String(), "stderr", stderr.String())
	return res, nil
}

// AssertOpts controls CheckAssert's retry behavior.
type AssertOpts struct {
	// Retries is the total attempt budget. Values below 1 mean one attempt.
	Retries int
	// PollRate is how long to sleep before each re-attempt.
	PollRate time.Duration
	// OnRetry, when set, runs before each re-attempt. Its outcome is logged
	// and otherwise ignored; a failing remediation never aborts the loop.
	OnRetry *Command
}

// CheckAssert runs cmd until it exits zero or the attempt budget is spent.
// On success it returns the final attempt's stdout and stderr; on failure an
// *AssertError carrying the working directory, the command, and the last
// captured stderr. A launch failure aborts immediately without consuming
// further attempts.
func (e *Exec) CheckAssert(cmd Command, opts AssertOpts) ([]byte, []byte, error) {
	retries := opts.Retries
	if retries < 1 {
		retries = 1
	}

	var res Result
	tries := 0
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			e.logger.Debug("assert: retrying after failure",
				"failures", attempt, "pollrate", opts.PollRate, "cmd", cmd.String())
			e.sleep(opts.PollRate)
			if opts.OnRetry != nil {
				// No real use for the result; Gather logs it.
				if _, err := e.Gather(*opts.OnRetry); err != nil {
					e.logger.Debug("assert: remediation could not run",
						"cmd", opts.OnRetry.String(), "error", err)
				}
			}
		}

		var err error
		res, err = e.Gather(cmd)
		if err != nil {
			return nil, nil, err
		}
		tries++
		if res.Ok() {
			break
		}
	}

	e.logger.Debug("assert: final result", "exit_code", res.ExitCode, "tries", tries)

	if !res.Ok() {
		return nil, nil, &AssertError{Dir: e.dirs.Getcwd(), Cmd: cmd, Stderr: res.Stderr}
	}
	return res.Stdout, res.Stderr, nil
}
