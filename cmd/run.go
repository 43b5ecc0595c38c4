package cmd

import (
	"time"

	"shellout/pkg/shell"

	"github.com/spf13/cobra"
)

var (
	runRetries  int
	runPollRate time.Duration
	runOnRetry  string
)

// runCmd is the CLI face of CheckAssert: run a command, retrying on nonzero
// exits, and fail loudly if the budget runs out.
var runCmd = &cobra.Command{
	Use:   "run [flags] -- command [args...]",
	Short: "Run a command, retrying until it exits zero",
	Long: `Run an external command and print its output. A nonzero exit is retried
up to --retries times with a fixed --pollrate pause in between; an optional
--on-retry command runs before each re-attempt (its own failures are
ignored). If every attempt fails, run exits with an error carrying the
working directory, the command, and the captured stderr.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command, err := parseCommand(args)
		if err != nil {
			return err
		}

		opts := shell.AssertOpts{Retries: runRetries, PollRate: runPollRate}
		if runOnRetry != "" {
			onRetry, err := shell.Parse(runOnRetry)
			if err != nil {
				return err
			}
			opts.OnRetry = &onRetry
		}

		exec, _, err := newExec()
		if err != nil {
			return err
		}

		stdout, stderr, err := exec.CheckAssert(command, opts)
		if err != nil {
			return err
		}

		cmd.OutOrStdout().Write(stdout)
		cmd.ErrOrStderr().Write(stderr)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVar(&runRetries, "retries", 1, "Number of attempts before giving up")
	runCmd.Flags().DurationVar(&runPollRate, "pollrate", 10*time.Second, "Pause between attempts")
	runCmd.Flags().StringVar(&runOnRetry, "on-retry", "", "Command to run before each re-attempt")
}
