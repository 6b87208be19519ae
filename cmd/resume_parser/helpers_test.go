package main

import (
	"bytes"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command in-process with fresh flag values and captured output
func execute(args ...string) (stdout, stderr string, err error) {
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// resetFlags restores every flag of cmd and its subcommands to its default value
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
