package cmd

import (
	"bytes"
	"fmt"

	"shellout/pkg/config"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var verifyExpect string

var verifyCmd = &cobra.Command{
	Use:   "verify --expect FILE -- command [args...]",
	Short: "Run a command and diff its stdout against an expected file",
	Long: `Run an external command once and compare its stdout byte-for-byte with
the contents of --expect. On mismatch a diff is printed and verify exits
with an error. The command itself must exit zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command, err := parseCommand(args)
		if err != nil {
			return err
		}

		exec, _, err := newExec()
		if err != nil {
			return err
		}

		res, err := exec.Gather(command)
		if err != nil {
			return err
		}
		if !res.Ok() {
			return fmt.Errorf("command exited with %d: %s", res.ExitCode, res.Stderr)
		}

		want, err := afero.ReadFile(config.AppFs, verifyExpect)
		if err != nil {
			return fmt.Errorf("reading expected output: %w", err)
		}

		if bytes.Equal(res.Stdout, want) {
			fmt.Fprintln(cmd.OutOrStdout(), "output matches", verifyExpect)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "output differs from", verifyExpect)
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(want), string(res.Stdout), false)
		for _, d := range diffs {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(cmd.OutOrStdout(), "-%s\n", d.Text)
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(cmd.OutOrStdout(), "+%s\n", d.Text)
			}
		}
		return fmt.Errorf("output mismatch")
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyExpect, "expect", "", "File holding the expected stdout")
	verifyCmd.MarkFlagRequired("expect")
}
