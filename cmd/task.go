package cmd

import (
	"fmt"

	"shellout/pkg/config"
	"shellout/pkg/shell"

	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task NAME [NAME...]",
	Short: "Run named tasks from the task file",
	Long: `Run one or more tasks defined in the task file (--config), in the order
given, stopping at the first failure. Each task inherits the file's
defaults for retries, pollrate and on_retry unless it sets its own.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		exec, dirs, err := newExec()
		if err != nil {
			return err
		}

		for _, name := range args {
			task, ok := file.Lookup(name)
			if !ok {
				return fmt.Errorf("no such task: %s", name)
			}

			command, err := shell.Parse(task.Command)
			if err != nil {
				return fmt.Errorf("task %s: %w", name, err)
			}
			opts, err := task.AssertOpts()
			if err != nil {
				return err
			}

			logger.Info("running task", "task", name, "command", task.Command)
			run := func() error {
				stdout, _, err := exec.CheckAssert(command, opts)
				if err != nil {
					return fmt.Errorf("task %s: %w", name, err)
				}
				cmd.OutOrStdout().Write(stdout)
				return nil
			}

			if task.Dir != "" {
				err = dirs.In(task.Dir, run)
			} else {
				err = run()
			}
			if err != nil {
				return err
			}
			logger.Info("task succeeded", "task", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
}
