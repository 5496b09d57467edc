// Package search serves search-as-you-type lookups over one immutable suffix index.
package search

import (
	"fmt"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"github.com/viniciusth/suffixindex"
)

// Options controls result limits and caching.
type Options struct {
	// CacheSize is the number of queries whose grouped hits are memoized.
	// Zero disables the cache.
	CacheSize    int
	DefaultLimit int
	MaxLimit     int
}

// DefaultOptions returns the limits used when none are configured.
func DefaultOptions() Options {
	return Options{
		CacheSize:    1024,
		DefaultLimit: 10,
		MaxLimit:     100,
	}
}

// IndexOptions selects the text transforms applied while indexing.
type IndexOptions struct {
	FoldCase  bool
	Normalize bool
}

// Item is one matching string with every match position in it, ascending.
// Positions are shared with the cache and must not be modified.
type Item struct {
	ID        int
	Text      string
	Positions []int
}

// Result is the outcome of one search.
type Result struct {
	Query string
	Items []Item
	// Total counts matching strings before the limit was applied.
	Total int
}

// Service answers queries against an index built once at startup.
type Service struct {
	index  *suffixindex.SuffixIndex
	cache  *lru.Cache
	opts   Options
	logger zerolog.Logger
}

// NewService wraps an existing index.
func NewService(index *suffixindex.SuffixIndex, opts Options, logger zerolog.Logger) (*Service, error) {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultOptions().DefaultLimit
	}
	if opts.MaxLimit < opts.DefaultLimit {
		opts.MaxLimit = opts.DefaultLimit
	}

	s := &Service{
		index:  index,
		opts:   opts,
		logger: logger,
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Build indexes entries and returns a service over them.
func Build(entries []string, indexOpts IndexOptions, opts Options, logger zerolog.Logger) (*Service, error) {
	start := time.Now()

	builder := suffixindex.NewBuilder(entries)
	if indexOpts.FoldCase {
		builder = builder.FoldCase()
	}
	if indexOpts.Normalize {
		builder = builder.Normalize()
	}
	index, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	logger.Info().
		Int("strings", index.NumStrings()).
		Int("suffixes", index.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("index built")

	return NewService(index, opts, logger)
}

// Index returns the underlying index.
func (s *Service) Index() *suffixindex.SuffixIndex {
	return s.index
}

// Count returns the number of indexed strings.
func (s *Service) Count() int {
	return s.index.NumStrings()
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.opts.DefaultLimit
	}
	return min(limit, s.opts.MaxLimit)
}

// Search finds every string containing query and groups its match positions.
// Items come in the order their first match appears in the index. An empty
// query returns no items.
func (s *Service) Search(query string, limit int) Result {
	limit = s.clampLimit(limit)
	if query == "" {
		return Result{Query: query}
	}

	items := s.grouped(query)
	return Result{
		Query: query,
		Items: slices.Clone(items[:min(limit, len(items))]),
		Total: len(items),
	}
}

func (s *Service) grouped(query string) []Item {
	if s.cache != nil {
		if cached, ok := s.cache.Get(query); ok {
			s.logger.Debug().Str("query", query).Msg("search cache hit")
			return cached.([]Item)
		}
	}

	items := groupOccurrences(s.index, s.index.Index(query))
	if s.cache != nil {
		s.cache.Add(query, items)
	}
	return items
}

func groupOccurrences(index *suffixindex.SuffixIndex, occurrences []suffixindex.Occurrence) []Item {
	var items []Item
	slot := make(map[int]int)
	for _, o := range occurrences {
		i, ok := slot[o.StringID]
		if !ok {
			i = len(items)
			slot[o.StringID] = i
			items = append(items, Item{ID: o.StringID, Text: index.Word(o.StringID)})
		}
		items[i].Positions = append(items[i].Positions, o.Position)
	}
	for i := range items {
		slices.Sort(items[i].Positions)
	}
	return items
}

// Match returns up to limit distinct strings containing query.
func (s *Service) Match(query string, limit int) []string {
	return s.index.MatchKStrings(query, s.clampLimit(limit))
}

// Rank returns the number of suffixes ordered before query.
func (s *Service) Rank(query string) int {
	return s.index.Rank(query)
}

// Select returns the i-th smallest suffix.
func (s *Service) Select(i int) (string, error) {
	return s.index.Select(i)
}
