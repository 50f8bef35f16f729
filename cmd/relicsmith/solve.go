package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/varkala/relicsmith/internal/relic"
	"github.com/varkala/relicsmith/internal/render"
	"github.com/varkala/relicsmith/internal/scoretab"
	"github.com/varkala/relicsmith/internal/solver"
	"github.com/varkala/relicsmith/internal/urn"
)

var (
	solveScores  string
	solveClass   string
	solveUrn     string
	solveSlot    int
	solveCount   int
	solveMinimum int
	solvePrune   int
	solveWorkers int
	solveNoDeep  bool
	solveTree    bool
	solveNoColor bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [save.sl2]",
	Short: "Search a save slot for the highest scoring relic builds",
	Long: `solve scores every relic of one character against a score table,
then walks every way of filling the relic slots of the class urns
and reports the best combinations.

The score table is JSON mapping effect names to points, either flat
{"effect name": points} or grouped {"points": ["effect", ...]}.
Comments and trailing commas are fine. A name like "Endurance +2"
scores that exact level, a bare "Endurance" scores every level.

Example:
  relicsmith solve --class raider --scores my_scores.json NR0000.sl2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	fl := solveCmd.Flags()
	fl.StringVar(&solveScores, "scores", "default", "score table, builtin name or JSON file")
	fl.StringVar(&solveClass, "class", "", "nightfarer class whose urns to search")
	fl.StringVar(&solveUrn, "urn", "", "search one urn only, by name")
	fl.IntVar(&solveSlot, "slot", 0, "save slot index")
	fl.IntVarP(&solveCount, "count", "n", 50, "how many builds to keep")
	fl.IntVar(&solveMinimum, "minimum", 1, "drop builds scoring below this")
	fl.IntVar(&solvePrune, "prune", 1, "drop relics scoring below this before the search")
	fl.IntVar(&solveWorkers, "workers", 1, "solver workers, 1 searches sequentially")
	fl.BoolVar(&solveNoDeep, "no-deep", false, "leave out the deep relic slot")
	fl.BoolVar(&solveTree, "tree", false, "group the output by urn")
	fl.BoolVar(&solveNoColor, "no-color", false, "plain text output")
}

func runSolve(cmd *cobra.Command, args []string) error {
	fl := cmd.Flags()
	if !fl.Changed("scores") && cfg.Scores != "" {
		solveScores = cfg.Scores
	}
	if !fl.Changed("class") {
		solveClass = cfg.Class
	}
	if !fl.Changed("urn") {
		solveUrn = cfg.Urn
	}
	if !fl.Changed("slot") {
		solveSlot = cfg.Slot
	}
	if !fl.Changed("count") {
		solveCount = cfg.Count
	}
	if !fl.Changed("minimum") {
		solveMinimum = cfg.Minimum
	}
	if !fl.Changed("prune") {
		solvePrune = cfg.Prune
	}
	if !fl.Changed("workers") {
		solveWorkers = cfg.Workers
	}
	if !fl.Changed("tree") {
		solveTree = cfg.Tree
	}
	if !fl.Changed("no-color") {
		solveNoColor = cfg.NoColor
	}
	deep := cfg.DeepSlot
	if fl.Changed("no-deep") {
		deep = !solveNoDeep
	}

	if solveClass == "" {
		return fmt.Errorf("no class given: --class takes one of %s", strings.Join(urn.Classes(), ", "))
	}

	savePath, err := savePathArg(args)
	if err != nil {
		return err
	}
	table, err := loadScores(solveScores)
	if err != nil {
		return err
	}

	chars, err := loadSave(savePath)
	if err != nil {
		return err
	}
	char, err := slotCharacter(chars, solveSlot)
	if err != nil {
		return err
	}
	if char.Name == "" {
		return fmt.Errorf("slot %d of %s holds no character", solveSlot, savePath)
	}
	slog.Info("character loaded", "name", char.Name, "relics", len(char.Relics))

	catalog := relic.Catalog(char.Relics)
	resolved := relic.Resolved(catalog)
	if dropped := len(catalog) - len(resolved); dropped > 0 {
		slog.Warn("ignoring relics with ids missing from the tables", "count", dropped)
	}

	layouts, err := urn.ForClass(solveClass, deep)
	if err != nil {
		return err
	}
	if solveUrn != "" {
		if layouts, err = filterLayouts(layouts, solveUrn); err != nil {
			return err
		}
	}

	res, err := solver.Solve(cmd.Context(), resolved, layouts, table, solver.Options{
		Prune:   solvePrune,
		Minimum: solveMinimum,
		Limit:   solveCount,
		Workers: solveWorkers,
	})
	if err != nil {
		return err
	}

	r := render.New(!solveNoColor)
	out := cmd.OutOrStdout()
	if len(res.Builds) == 0 {
		fmt.Fprintln(out, "no builds found")
	} else if solveTree {
		fmt.Fprint(out, r.Tree(res.Builds))
	} else {
		fmt.Fprint(out, r.Builds(res.Builds))
	}
	fmt.Fprintln(out, r.Stats(res.Stats))
	return nil
}

// loadScores resolves the --scores value, a file path first and a
// builtin table name second.
func loadScores(name string) (*scoretab.Table, error) {
	if _, err := os.Stat(name); err == nil {
		return scoretab.Load(name)
	}
	table, err := scoretab.LoadBuiltin(name)
	if err != nil && looksLikePath(name) {
		return nil, fmt.Errorf("score table %s does not exist", name)
	}
	return table, err
}

func looksLikePath(name string) bool {
	return strings.ContainsAny(name, `/\`) || strings.HasSuffix(name, ".json")
}

// filterLayouts narrows the class layouts to one urn picked by name.
func filterLayouts(layouts []urn.Layout, name string) ([]urn.Layout, error) {
	for _, l := range layouts {
		if strings.EqualFold(l.Name, name) {
			return []urn.Layout{l}, nil
		}
	}
	have := make([]string, len(layouts))
	for i, l := range layouts {
		have[i] = l.Name
	}
	return nil, fmt.Errorf("unknown urn %q (have %s)", name, strings.Join(have, ", "))
}
