package shell

import "fmt"

// RetryError reports that Retry exhausted its attempt budget.
type RetryError struct {
	Attempts int
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("giving up after %d failed attempt(s)", e.Attempts)
}

// AssertError reports that CheckAssert's final attempt exited nonzero. It
// carries the directory the command ran in, the command itself, and the
// stderr of the last attempt, so callers can inspect the failure instead of
// parsing a message.
type AssertError struct {
	Dir    string
	Cmd    Command
	Stderr []byte
}

func (e *AssertError) Error() string {
	return fmt.Sprintf("error running [%s] %s\n%s", e.Dir, e.Cmd, e.Stderr)
}
