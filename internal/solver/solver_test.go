package solver

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/varkala/relicsmith/internal/relic"
	"github.com/varkala/relicsmith/internal/scoretab"
	"github.com/varkala/relicsmith/internal/urn"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mkRelic builds a relic whose single effect carries the relic's name,
// so a score table entry per name controls its score directly.
func mkRelic(name string, color relic.Color) relic.Relic {
	return relic.Relic{
		Name:    name,
		Color:   color,
		Effects: []relic.Effect{{Name: name}},
	}
}

func mkTable(t *testing.T, scores map[string]int) *scoretab.Table {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	for name, score := range scores {
		if !first {
			sb.WriteString(",")
		}
		first = false
		fmt.Fprintf(&sb, "%q: %d", name, score)
	}
	sb.WriteString("}")
	tab, err := scoretab.Parse([]byte(sb.String()))
	require.NoError(t, err)
	return tab
}

func colorSlots(colors ...relic.Color) []urn.Slot {
	slots := make([]urn.Slot, len(colors))
	for i, c := range colors {
		slots[i] = urn.Slot{Kind: urn.SlotColor, Color: c}
	}
	return slots
}

func names(b Build) []string {
	out := make([]string, len(b.Relics))
	for i, c := range b.Relics {
		out[i] = c.Relic.Name
	}
	return out
}

func TestPrune(t *testing.T) {
	tab := mkTable(t, map[string]int{"A": 5, "B": 8, "C": 0, "D": -3})
	catalog := []relic.Relic{
		mkRelic("A", relic.Red),
		mkRelic("B", relic.Red),
		mkRelic("C", relic.Blue),
		mkRelic("D", relic.Blue),
	}

	kept := Prune(catalog, tab, 1)
	require.Len(t, kept, 2)
	require.Equal(t, "B", kept[0].Relic.Name, "best relic sorts first")
	require.Equal(t, "A", kept[1].Relic.Name)
	require.Equal(t, 8, kept[0].Score)
	require.Equal(t, 1, kept[0].Index, "candidates keep their catalog position")

	require.Len(t, Prune(catalog, tab, 0), 3, "threshold 0 keeps zero-score relics")
	require.Len(t, Prune(catalog, tab, -10), 4, "negative threshold keeps everything")
}

func TestPruneTieOrder(t *testing.T) {
	tab := mkTable(t, map[string]int{"X": 5, "Y": 5})
	kept := Prune([]relic.Relic{mkRelic("X", relic.Red), mkRelic("Y", relic.Red)}, tab, 1)
	require.Len(t, kept, 2)
	require.Equal(t, "X", kept[0].Relic.Name, "equal scores keep catalog order")
}

func TestSolveRedRedBlue(t *testing.T) {
	tab := mkTable(t, map[string]int{"A": 5, "B": 8, "C": 6, "D": 3})
	layout := urn.Layout{Name: "Test Urn", Slots: colorSlots(relic.Red, relic.Red, relic.Blue)}
	layouts := []urn.Layout{layout}

	t.Run("single combination", func(t *testing.T) {
		catalog := []relic.Relic{
			mkRelic("A", relic.Red),
			mkRelic("B", relic.Red),
			mkRelic("C", relic.Blue),
		}
		res, err := Solve(context.Background(), catalog, layouts, tab, DefaultOptions())
		require.NoError(t, err)
		require.Len(t, res.Builds, 1)
		b := res.Builds[0]
		require.Equal(t, 19, b.Score)
		require.Equal(t, "Test Urn", b.Layout.Name)
		require.Equal(t, []string{"B", "A", "C"}, names(b), "slots fill best relic first")
		require.EqualValues(t, 1, res.Stats.Enumerated)
	})

	t.Run("weaker blue ranks below", func(t *testing.T) {
		catalog := []relic.Relic{
			mkRelic("A", relic.Red),
			mkRelic("B", relic.Red),
			mkRelic("C", relic.Blue),
			mkRelic("D", relic.Blue),
		}
		res, err := Solve(context.Background(), catalog, layouts, tab, DefaultOptions())
		require.NoError(t, err)
		require.Len(t, res.Builds, 2)
		require.Equal(t, 19, res.Builds[0].Score)
		require.Equal(t, 16, res.Builds[1].Score)

		top := DefaultOptions()
		top.Limit = 1
		one, err := Solve(context.Background(), catalog, layouts, tab, top)
		require.NoError(t, err)
		require.Len(t, one.Builds, 1)
		require.NotContains(t, names(one.Builds[0]), "D")
	})
}

func TestSolvePruneRemovesEverything(t *testing.T) {
	tab := mkTable(t, map[string]int{"A": 5, "B": 8, "C": 6, "D": 3})
	catalog := []relic.Relic{
		mkRelic("A", relic.Red),
		mkRelic("B", relic.Red),
		mkRelic("C", relic.Blue),
		mkRelic("D", relic.Blue),
	}
	layouts := []urn.Layout{{Name: "Test Urn", Slots: colorSlots(relic.Red, relic.Red, relic.Blue)}}

	opts := DefaultOptions()
	opts.Prune = 9
	res, err := Solve(context.Background(), catalog, layouts, tab, opts)
	require.NoError(t, err)
	require.Empty(t, res.Builds)
	require.Zero(t, res.Stats.Kept)
	require.Equal(t, 4, res.Stats.Catalog)
}

func TestSolveEmptyBucket(t *testing.T) {
	tab := mkTable(t, map[string]int{"A": 5})
	catalog := []relic.Relic{mkRelic("A", relic.Red)}
	layouts := []urn.Layout{{Name: "Yellow Urn", Slots: colorSlots(relic.Yellow)}}

	res, err := Solve(context.Background(), catalog, layouts, tab, DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, res.Builds, "a layout with an unfillable slot yields nothing")
	require.Zero(t, res.Stats.Enumerated)
}

func TestSolveMinimum(t *testing.T) {
	tab := mkTable(t, map[string]int{"A": 2, "B": 3})
	catalog := []relic.Relic{mkRelic("A", relic.Red), mkRelic("B", relic.Red)}
	layouts := []urn.Layout{{Name: "One Slot", Slots: colorSlots(relic.Red)}}

	opts := DefaultOptions()
	opts.Minimum = 3
	res, err := Solve(context.Background(), catalog, layouts, tab, opts)
	require.NoError(t, err)
	require.Len(t, res.Builds, 1, "builds under the minimum are dropped")
	require.Equal(t, 3, res.Builds[0].Score)
	require.EqualValues(t, 2, res.Stats.Enumerated, "dropped builds are still counted")
}

func TestSolvePostconditions(t *testing.T) {
	catalog, layouts, tab := bigPool(t, 24)
	opts := DefaultOptions()
	opts.Limit = 10

	res, err := Solve(context.Background(), catalog, layouts, tab, opts)
	require.NoError(t, err)
	require.NotEmpty(t, res.Builds)
	require.LessOrEqual(t, len(res.Builds), opts.Limit)
	for i, b := range res.Builds {
		require.GreaterOrEqual(t, b.Score, opts.Minimum)
		if i > 0 {
			require.LessOrEqual(t, b.Score, res.Builds[i-1].Score, "scores never increase down the list")
		}

		seen := make(map[int]bool, len(b.Relics))
		require.Len(t, b.Relics, len(b.Layout.Slots))
		for si, c := range b.Relics {
			require.False(t, seen[c.Index], "relic used twice in one build")
			seen[c.Index] = true
			require.True(t, b.Layout.Slots[si].Accepts(c.Relic.Color), "relic color must fit its slot")
		}

		total := 0
		for _, c := range b.Relics {
			total += tab.RelicScore(c.Relic)
		}
		require.Equal(t, total, b.Score, "build score is the sum of its relic scores")
	}
}

func TestSolveTieBreakIsDiscoveryOrder(t *testing.T) {
	tab := mkTable(t, map[string]int{"X": 5, "Y": 5})
	catalog := []relic.Relic{mkRelic("X", relic.Red), mkRelic("Y", relic.Red)}
	layouts := []urn.Layout{{Name: "One Slot", Slots: colorSlots(relic.Red)}}

	res, err := Solve(context.Background(), catalog, layouts, tab, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Builds, 2)
	require.Equal(t, []string{"X"}, names(res.Builds[0]), "earlier discovery wins ties")
	require.Equal(t, []string{"Y"}, names(res.Builds[1]))
}

func TestSolveWildcardAssignments(t *testing.T) {
	tab := mkTable(t, map[string]int{"A": 5, "B": 8, "C": 6})
	catalog := []relic.Relic{
		mkRelic("A", relic.Red),
		mkRelic("B", relic.Red),
		mkRelic("C", relic.Blue),
	}
	layouts := []urn.Layout{{Name: "Chalice", Slots: []urn.Slot{
		{Kind: urn.SlotColor, Color: relic.Red},
		{Kind: urn.SlotAnyStandard},
	}}}

	res, err := Solve(context.Background(), catalog, layouts, tab, DefaultOptions())
	require.NoError(t, err)

	var got [][]string
	for _, b := range res.Builds {
		got = append(got, names(b))
	}
	require.Len(t, got, 4)
	require.Contains(t, got, []string{"B", "A"})
	require.Contains(t, got, []string{"A", "B"}, "swapped assignment across different slot kinds is distinct")
	require.Contains(t, got, []string{"B", "C"})
	require.Contains(t, got, []string{"A", "C"})
}

func TestSolveDeepSlot(t *testing.T) {
	tab := mkTable(t, map[string]int{"A": 5, "Night": 4})
	catalog := []relic.Relic{
		mkRelic("A", relic.Red),
		mkRelic("Night", relic.DeepRed),
	}
	withDeep := []urn.Layout{{Name: "Urn", Slots: []urn.Slot{
		{Kind: urn.SlotColor, Color: relic.Red},
		{Kind: urn.SlotAnyDeep},
	}}}
	withoutDeep := []urn.Layout{{Name: "Urn", Slots: colorSlots(relic.Red)}}

	res, err := Solve(context.Background(), catalog, withDeep, tab, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Builds, 1)
	require.Len(t, res.Builds[0].Relics, 2)
	require.Equal(t, 9, res.Builds[0].Score)

	res, err = Solve(context.Background(), catalog, withoutDeep, tab, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Builds, 1)
	require.Len(t, res.Builds[0].Relics, 1, "disabling the deep slot removes exactly one slot")
	require.Equal(t, 5, res.Builds[0].Score)
}

func TestSolveMonotonicity(t *testing.T) {
	catalog, layouts, tab := bigPool(t, 18)
	opts := DefaultOptions()
	opts.Limit = 1000

	var prev int
	for i, threshold := range []int{1, 5, 9, 1000} {
		opts.Prune = threshold
		res, err := Solve(context.Background(), catalog, layouts, tab, opts)
		require.NoError(t, err)
		if i > 0 {
			require.LessOrEqual(t, len(res.Builds), prev, "raising the prune threshold never grows the result")
		}
		prev = len(res.Builds)
	}
}

func TestSolveDeterministic(t *testing.T) {
	catalog, layouts, tab := bigPool(t, 20)
	opts := DefaultOptions()
	opts.Limit = 25

	first, err := Solve(context.Background(), catalog, layouts, tab, opts)
	require.NoError(t, err)
	second, err := Solve(context.Background(), catalog, layouts, tab, opts)
	require.NoError(t, err)

	diff := cmp.Diff(first.Builds, second.Builds, cmp.AllowUnexported(Build{}, buildOrder{}))
	require.Empty(t, diff)
}

func TestSolveParallelMatchesSequential(t *testing.T) {
	catalog, layouts, tab := bigPool(t, 30)
	opts := DefaultOptions()
	opts.Limit = 40

	seq, err := Solve(context.Background(), catalog, layouts, tab, opts)
	require.NoError(t, err)
	require.NotEmpty(t, seq.Builds)

	for _, workers := range []int{2, 4, 7} {
		opts.Workers = workers
		par, err := Solve(context.Background(), catalog, layouts, tab, opts)
		require.NoError(t, err)

		diff := cmp.Diff(seq.Builds, par.Builds, cmp.AllowUnexported(Build{}, buildOrder{}))
		require.Empty(t, diff, "workers=%d must rank exactly like sequential", workers)
		require.Equal(t, seq.Stats.Enumerated, par.Stats.Enumerated)
	}
}

func TestSolveCancel(t *testing.T) {
	catalog, layouts, tab := bigPool(t, 30)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, catalog, layouts, tab, DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)

	opts := DefaultOptions()
	opts.Workers = 4
	_, err = Solve(ctx, catalog, layouts, tab, opts)
	require.ErrorIs(t, err, context.Canceled)
}

// bigPool builds a deterministic mixed-color pool with a matching
// score table and a few layouts exercising wildcard and deep slots.
func bigPool(t *testing.T, n int) ([]relic.Relic, []urn.Layout, *scoretab.Table) {
	t.Helper()
	colors := []relic.Color{
		relic.Red, relic.Blue, relic.Yellow, relic.Green,
		relic.Red, relic.Blue, relic.DeepRed, relic.DeepGreen,
	}
	catalog := make([]relic.Relic, 0, n)
	scores := make(map[string]int, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("R%02d", i)
		catalog = append(catalog, mkRelic(name, colors[i%len(colors)]))
		scores[name] = 1 + (i*7)%13
	}
	layouts := []urn.Layout{
		{Name: "Urn A", Slots: colorSlots(relic.Red, relic.Red, relic.Blue)},
		{Name: "Urn B", Slots: []urn.Slot{
			{Kind: urn.SlotColor, Color: relic.Blue},
			{Kind: urn.SlotColor, Color: relic.Yellow},
			{Kind: urn.SlotAnyStandard},
		}},
		{Name: "Urn C", Slots: []urn.Slot{
			{Kind: urn.SlotColor, Color: relic.Green},
			{Kind: urn.SlotColor, Color: relic.Green},
			{Kind: urn.SlotAnyStandard},
			{Kind: urn.SlotAnyDeep},
		}},
	}
	return catalog, layouts, mkTable(t, scores)
}
