// Command bench builds random corpora and reports build and query cost for
// each index variant as CSV lines.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/viniciusth/suffixindex"
)

type variant struct {
	name   string
	config func(*suffixindex.Builder) *suffixindex.Builder
}

var variants = map[string]variant{
	"full":          {name: "full", config: func(b *suffixindex.Builder) *suffixindex.Builder { return b }},
	"no_lcp":        {name: "no_lcp", config: func(b *suffixindex.Builder) *suffixindex.Builder { return b.SkipLCP() }},
	"no_doc":        {name: "no_doc", config: func(b *suffixindex.Builder) *suffixindex.Builder { return b.SkipDocListing() }},
	"no_lcp_no_doc": {name: "no_lcp_no_doc", config: func(b *suffixindex.Builder) *suffixindex.Builder { return b.SkipLCP().SkipDocListing() }},
}

// queryOps are the index operations a run can time.
var queryOps = map[string]func(idx *suffixindex.SuffixIndex, pattern string, k int){
	"matchk": func(idx *suffixindex.SuffixIndex, p string, k int) { _ = idx.MatchK(p, k) },
	"match":  func(idx *suffixindex.SuffixIndex, p string, _ int) { _ = idx.Match(p) },
	"index":  func(idx *suffixindex.SuffixIndex, p string, _ int) { _ = idx.Index(p) },
	"rank":   func(idx *suffixindex.SuffixIndex, p string, _ int) { _ = idx.Rank(p) },
}

type densityType string

const (
	densityLow  densityType = "low"
	densityHigh densityType = "high"
)

type params struct {
	variant    string
	op         string
	m, w, p    int
	k, q, runs int
	density    string
	cpuprofile string
}

type memMonitor struct {
	maxAlloc atomic.Uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc.Load() {
				mm.maxAlloc.Store(m.Alloc)
			}
			select {
			case <-mm.stop:
				return
			case <-ticker.C:
			}
		}
	}()
	return mm
}

// Stop ends sampling and returns the peak heap seen.
func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	return mm.maxAlloc.Load()
}

func currentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

type measurement struct {
	elapsed  time.Duration
	peak     uint64
	retained uint64
}

func measure(fn func()) measurement {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	return measurement{elapsed: elapsed, peak: peak, retained: currentAlloc()}
}

func randomWord(r *rand.Rand, n int) []byte {
	word := make([]byte, n)
	for j := range word {
		word[j] = byte(r.Intn(26) + 'a')
	}
	return word
}

// corpus returns M random words of length W and Q query patterns of length P.
// High density plants one shared pattern in every word and queries only it.
func corpus(r *rand.Rand, pr params, density densityType) ([]string, []string) {
	words := make([]string, pr.m)
	var common []byte
	if density == densityHigh {
		common = randomWord(r, pr.p)
	}
	for i := range words {
		word := randomWord(r, pr.w)
		if common != nil {
			copy(word[r.Intn(pr.w-pr.p+1):], common)
		}
		words[i] = string(word)
	}

	patterns := make([]string, pr.q)
	for i := range patterns {
		if common != nil {
			patterns[i] = string(common)
			continue
		}
		start := r.Intn(pr.w - pr.p + 1)
		patterns[i] = words[r.Intn(pr.m)][start : start+pr.p]
	}
	return words, patterns
}

func runBenchmark(v variant, op string, pr params, density densityType) error {
	query := queryOps[op]
	for run := range pr.runs {
		r := rand.New(rand.NewSource(int64(run)))
		words, patterns := corpus(r, pr, density)

		var idx *suffixindex.SuffixIndex
		var buildErr error
		build := measure(func() {
			idx, buildErr = v.config(suffixindex.NewBuilder(words)).Build()
		})
		if buildErr != nil {
			return fmt.Errorf("build %s: %w", v.name, buildErr)
		}

		queries := measure(func() {
			for _, p := range patterns {
				query(idx, p, pr.k)
			}
		})

		fmt.Printf("%s,%s,%d,%d,%d,%d,%d,%s,%d,%d,%d,%d,%d,%d\n",
			v.name, op, pr.m, pr.w, pr.p, pr.k, pr.q, density,
			build.elapsed.Nanoseconds(), build.peak, build.retained,
			queries.elapsed.Nanoseconds(), queries.peak, queries.retained)
	}
	return nil
}

func names[V any](m map[string]V) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func newRootCmd() *cobra.Command {
	var pr params

	cmd := &cobra.Command{
		Use:          "bench",
		Short:        "Benchmark suffix index variants on random corpora",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, ok := variants[pr.variant]
			if !ok {
				return fmt.Errorf("invalid variant %q, available: %s", pr.variant, names(variants))
			}
			if _, ok := queryOps[pr.op]; !ok {
				return fmt.Errorf("invalid op %q, available: %s", pr.op, names(queryOps))
			}
			density := densityType(pr.density)
			if density != densityLow && density != densityHigh {
				return fmt.Errorf("invalid density %q, want low or high", pr.density)
			}
			if pr.m <= 0 || pr.w <= 0 || pr.p <= 0 || pr.k <= 0 || pr.q <= 0 || pr.p > pr.w {
				return fmt.Errorf("m, w, p, k and q must be positive with p <= w")
			}

			if pr.cpuprofile != "" {
				f, err := os.Create(pr.cpuprofile)
				if err != nil {
					return fmt.Errorf("could not create CPU profile: %w", err)
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return fmt.Errorf("could not start CPU profile: %w", err)
				}
				defer pprof.StopCPUProfile()
			}

			return runBenchmark(v, pr.op, pr, density)
		},
	}

	f := cmd.Flags()
	f.StringVar(&pr.variant, "variant", "full", "Variant to benchmark")
	f.StringVar(&pr.op, "op", "matchk", "Query operation to time")
	f.IntVarP(&pr.m, "m", "m", 1000, "Number of words M")
	f.IntVarP(&pr.w, "w", "w", 32, "Word length W")
	f.IntVarP(&pr.p, "p", "p", 3, "Pattern length P")
	f.IntVarP(&pr.k, "k", "k", 10, "Number of matches K")
	f.IntVarP(&pr.q, "q", "q", 1000, "Number of queries Q")
	f.IntVar(&pr.runs, "runs", 3, "Number of runs for averaging")
	f.StringVarP(&pr.density, "density", "d", "low", "Density: low or high")
	f.StringVar(&pr.cpuprofile, "cpuprofile", "", "Write CPU profile to file")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
