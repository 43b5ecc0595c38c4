package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"shellout/pkg/dirstack"
	"shellout/pkg/log"
	"shellout/pkg/shell"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	workDir  string
	logger   log.Logger
	rootCmd  = &cobra.Command{
		Use:   "shellout",
		Short: "shellout runs shell commands with retries and output capture",
		Long: `A helper for build and release automation that runs external commands
predictably: full output capture, fixed-interval retries with optional
remediation commands, and fail-fast assertions on exit codes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(logLevel)
			if err != nil {
				return err
			}
			logger = log.NewSlogLogger(level, cmd.ErrOrStderr())
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseLogLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", levelStr)
	}
}

// newExec builds the executor and its directory stack for one command
// invocation, rooted at --dir (or the process working directory).
func newExec() (*shell.Exec, *dirstack.Stack, error) {
	dirs, err := dirstack.New(workDir)
	if err != nil {
		return nil, nil, err
	}
	return shell.New(logger, dirs), dirs, nil
}

// parseCommand turns CLI args into a Command: a single arg is shell-split,
// multiple args are taken as a pre-split vector.
func parseCommand(args []string) (shell.Command, error) {
	if len(args) == 1 {
		return shell.Parse(args[0])
	}
	return shell.Args(args...), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "./shellout.yaml", "task file (default is ./shellout.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", "", "Directory to run commands in (default is the current directory)")
}
