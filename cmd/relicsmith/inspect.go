package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varkala/relicsmith/internal/render"
)

var inspectNoColor bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [save.sl2]",
	Short: "Show which characters a save file holds",
	Long: `inspect lists every slot of the save with the character name, murk,
sigils and relic count, so you can tell which --slot to solve.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectNoColor, "no-color", false, "plain text output")
}

func runInspect(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("no-color") {
		inspectNoColor = cfg.NoColor
	}

	savePath, err := savePathArg(args)
	if err != nil {
		return err
	}
	chars, err := loadSave(savePath)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), render.New(!inspectNoColor).Characters(chars))
	return nil
}
