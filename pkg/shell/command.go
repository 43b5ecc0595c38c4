package shell

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Command is the canonical argument vector for one process launch. Build one
// with Args or Parse; everything downstream operates only on this form.
type Command struct {
	argv []string
}

// Args builds a Command from a pre-split argument vector.
func Args(argv ...string) Command {
	return Command{argv: argv}
}

// Parse splits a shell-syntax string into a Command using POSIX word-splitting
// rules. Quoting and escaping are honored; pipes, redirections and globs are
// not interpreted and stay literal argument characters. No shell is ever
// involved in running the result.
func Parse(s string) (Command, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return Command{}, fmt.Errorf("parsing command %q: %w", s, err)
	}
	return Command{argv: words}, nil
}

// Argv returns the argument vector. The first element is the executable name.
func (c Command) Argv() ([]string, error) {
	if len(c.argv) == 0 {
		return nil, errors.New("empty command")
	}
	return c.argv, nil
}

// String renders the command in re-parseable shell syntax, for logs and
// error messages.
func (c Command) String() string {
	return shellquote.Join(c.argv...)
}
