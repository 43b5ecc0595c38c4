package shell

// Result holds everything captured from one process run.
type Result struct {
	RunID    string // ties together the launch and exit log records of a run
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Ok reports whether the process exited successfully.
func (r Result) Ok() bool {
	return r.ExitCode == 0
}
