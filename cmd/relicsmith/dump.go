package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varkala/relicsmith/internal/relic"
	"github.com/varkala/relicsmith/internal/render"
)

var (
	dumpSlot    int
	dumpNoColor bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump [save.sl2]",
	Short: "List every relic of a save slot",
	Long: `dump decodes one save slot and prints its full relic inventory,
including relics whose item or effect ids are missing from the
built in tables. No search happens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().IntVar(&dumpSlot, "slot", 0, "save slot index")
	dumpCmd.Flags().BoolVar(&dumpNoColor, "no-color", false, "plain text output")
}

func runDump(cmd *cobra.Command, args []string) error {
	fl := cmd.Flags()
	if !fl.Changed("slot") {
		dumpSlot = cfg.Slot
	}
	if !fl.Changed("no-color") {
		dumpNoColor = cfg.NoColor
	}

	savePath, err := savePathArg(args)
	if err != nil {
		return err
	}
	chars, err := loadSave(savePath)
	if err != nil {
		return err
	}
	char, err := slotCharacter(chars, dumpSlot)
	if err != nil {
		return err
	}
	if char.Name == "" {
		return fmt.Errorf("slot %d of %s holds no character", dumpSlot, savePath)
	}

	catalog := relic.Catalog(char.Relics)
	fmt.Fprint(cmd.OutOrStdout(), render.New(!dumpNoColor).Relics(catalog))
	return nil
}
