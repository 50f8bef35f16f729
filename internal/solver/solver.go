// Package solver searches relic combinations for the highest scoring
// builds. The pipeline is a single pass: prune the catalog, enumerate
// valid slot assignments per layout, score each one and keep a
// bounded top list. Enumeration partitions by (layout, first slot
// choice), so the parallel search visits exactly the combinations the
// sequential one does and ranks them identically.
package solver

import (
	"context"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/varkala/relicsmith/internal/relic"
	"github.com/varkala/relicsmith/internal/scoretab"
	"github.com/varkala/relicsmith/internal/urn"
)

// Options tunes one solve. The zero value is legal (keep everything,
// return nothing), callers normally start from DefaultOptions.
type Options struct {
	// Prune drops relics whose own score is below it before search.
	Prune int
	// Minimum drops finished builds scoring below it.
	Minimum int
	// Limit bounds how many builds are returned.
	Limit int
	// Workers sets the search parallelism, 1 means sequential.
	Workers int
}

// DefaultOptions matches the command line defaults: drop worthless
// relics, keep the best 50, search on one core.
func DefaultOptions() Options {
	return Options{Prune: 1, Minimum: 1, Limit: 50, Workers: 1}
}

func (o Options) normalized() Options {
	if o.Limit < 0 {
		o.Limit = 0
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return o
}

// Candidate is one relic that survived pruning, with its precomputed
// score and its position in the source catalog.
type Candidate struct {
	Index int
	Relic relic.Relic
	Score int
}

// Build is one valid assignment of relics to a layout's slots.
// Relics[i] occupies Layout.Slots[i].
type Build struct {
	Layout urn.Layout
	Relics []Candidate
	Score  int

	order buildOrder
}

// Stats describes one finished solve.
type Stats struct {
	Catalog    int
	Kept       int
	Enumerated int64
	Elapsed    time.Duration
}

// Result is the ranked outcome of a solve, best build first.
type Result struct {
	Builds []Build
	Stats  Stats
}

// Prune scores every relic and keeps those at or above the threshold.
// Kept candidates are ordered best first so the search tries high
// value relics early, catalog order breaks ties.
func Prune(catalog []relic.Relic, table *scoretab.Table, threshold int) []Candidate {
	out := make([]Candidate, 0, len(catalog))
	for i, r := range catalog {
		score := table.RelicScore(r)
		if score >= threshold {
			out = append(out, Candidate{Index: i, Relic: r, Score: score})
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return out[a].Index < out[b].Index
	})
	return out
}

// Solve runs the full pipeline over every layout and returns the top
// builds. Builds scoring below Minimum are dropped, ties rank by
// discovery order. Cancel ctx to abort a long search.
func Solve(ctx context.Context, catalog []relic.Relic, layouts []urn.Layout, table *scoretab.Table, opts Options) (*Result, error) {
	opts = opts.normalized()
	start := time.Now()

	cands := Prune(catalog, table, opts.Prune)
	slog.Info("relic pool pruned", "kept", len(cands), "total", len(catalog), "threshold", opts.Prune)

	jobs, buckets := planJobs(cands, layouts)

	var (
		top        *topN
		enumerated int64
		err        error
	)
	if opts.Workers > 1 {
		top, enumerated, err = solveParallel(ctx, cands, layouts, buckets, jobs, opts)
	} else {
		top, enumerated, err = solveSequential(ctx, cands, layouts, buckets, jobs, opts)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		Builds: top.finalize(),
		Stats: Stats{
			Catalog:    len(catalog),
			Kept:       len(cands),
			Enumerated: enumerated,
			Elapsed:    time.Since(start),
		},
	}
	slog.Debug("solve finished",
		"builds", len(res.Builds),
		"enumerated", enumerated,
		"elapsed", res.Stats.Elapsed)
	return res, nil
}

// planJobs resolves per-layout buckets and flattens the search space
// into (layout, first choice) partitions. A layout with an unfillable
// slot contributes no partitions at all.
func planJobs(cands []Candidate, layouts []urn.Layout) ([]partition, [][][]int) {
	cache := newBucketCache(cands)
	buckets := make([][][]int, len(layouts))
	var jobs []partition
	for li, layout := range layouts {
		if len(layout.Slots) == 0 {
			continue
		}
		b := make([][]int, len(layout.Slots))
		empty := false
		for si, s := range layout.Slots {
			b[si] = cache.bucket(s)
			if len(b[si]) == 0 {
				empty = true
			}
		}
		if empty {
			slog.Debug("layout has an unfillable slot", "layout", layout.Name)
			continue
		}
		buckets[li] = b
		for head := range b[0] {
			jobs = append(jobs, partition{layout: li, head: head})
		}
	}
	return jobs, buckets
}

func solveSequential(ctx context.Context, cands []Candidate, layouts []urn.Layout, buckets [][][]int, jobs []partition, opts Options) (*topN, int64, error) {
	top := newTopN(opts.Limit)
	w := newWalker(cands)
	var enumerated int64
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		w.runPartition(job.layout, layouts[job.layout], buckets[job.layout], job.head, func(b Build) bool {
			enumerated++
			if b.Score >= opts.Minimum {
				top.consider(b)
			}
			return ctx.Err() == nil
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return top, enumerated, nil
}

func solveParallel(ctx context.Context, cands []Candidate, layouts []urn.Layout, buckets [][][]int, jobs []partition, opts Options) (*topN, int64, error) {
	g, gctx := errgroup.WithContext(ctx)
	locals := make([]*topN, opts.Workers)
	var next, enumerated atomic.Int64
	for i := range locals {
		local := newTopN(opts.Limit)
		locals[i] = local
		g.Go(func() error {
			w := newWalker(cands)
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				j := next.Add(1) - 1
				if j >= int64(len(jobs)) {
					return nil
				}
				job := jobs[j]
				var n int64
				w.runPartition(job.layout, layouts[job.layout], buckets[job.layout], job.head, func(b Build) bool {
					n++
					if b.Score >= opts.Minimum {
						local.consider(b)
					}
					return gctx.Err() == nil
				})
				enumerated.Add(n)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	top := locals[0]
	for _, local := range locals[1:] {
		top.merge(local)
	}
	return top, enumerated.Load(), nil
}
