package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varkala/relicsmith/internal/scoretab"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [name]",
	Short: "List builtin score tables, or print one",
	Long: `scores without arguments lists the builtin score tables that
--scores accepts by name. With a name it prints that table, ready to
save and edit as a starting point for your own.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range scoretab.Builtins() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	text, err := scoretab.BuiltinText(args[0])
	if err != nil {
		return err
	}
	_, err = out.Write(text)
	return err
}
