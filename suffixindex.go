// Package suffixindex implements a generalized suffix array over a fixed
// collection of strings, answering substring containment and location
// queries for search-as-you-type lookups.
package suffixindex

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/viniciusth/rmq"
)

var (
	ErrInvalidUTF8 = errors.New("suffixindex: invalid UTF-8 encoding in input words")
	ErrEmptyCorpus = errors.New("suffixindex: corpus must contain at least one string")
	ErrOutOfRange  = errors.New("suffixindex: rank out of range")
)

type Builder struct {
	words         []string
	useLCP        bool
	useDocListing bool
	foldCase      bool
	normalize     bool
}

// NewBuilder returns a builder with exact, case-sensitive matching and both
// the LCP and document listing structures enabled.
func NewBuilder(words []string) *Builder {
	return &Builder{
		words:         words,
		useLCP:        true,
		useDocListing: true,
	}
}

// Skips the LCP array construction. Finding the end of a match range then
// takes a second binary search over the suffixes instead of RMQ probes.
// Saves O(|S|) memory.
func (b *Builder) SkipLCP() *Builder {
	b.useLCP = false
	return b
}

// Skips the document listing structures construction.
// MatchK then walks the match range linearly, which can take up to O(|S|) time.
// Saves O(|S|) memory.
func (b *Builder) SkipDocListing() *Builder {
	b.useDocListing = false
	return b
}

// Lowercases the corpus and every query.
func (b *Builder) FoldCase() *Builder {
	b.foldCase = true
	return b
}

// Normalizes the corpus and every query with NFC.
func (b *Builder) Normalize() *Builder {
	b.normalize = true
	return b
}

func (b *Builder) Build() (*SuffixIndex, error) {
	if len(b.words) == 0 {
		return nil, ErrEmptyCorpus
	}
	if b.foldCase || b.normalize {
		for _, word := range b.words {
			if !utf8.ValidString(word) {
				return nil, ErrInvalidUTF8
			}
		}
	}

	words := slices.Clone(b.words)
	texts := make([]string, len(words))
	for i, word := range words {
		texts[i] = applyTransforms(word, b.foldCase, b.normalize)
	}

	flat := newFlatText(texts)
	suffixArray := make([]int, flat.len())
	for i := range suffixArray {
		suffixArray[i] = i
	}
	flat.sortSuffixes(suffixArray)

	var lcp []int
	var lcpRMQ *rmq.RMQHybridNaive[int]
	if b.useLCP {
		lcp = buildLCPArray(suffixArray, flat)
		if len(lcp) > 0 {
			lcpRMQ = rmq.NewRMQHybridNaive(lcp)
		}
	}

	var prev []int
	var prevRMQ *rmq.RMQHybridNaive[int]
	if b.useDocListing {
		prev = buildPrevArray(suffixArray, flat.owner, len(words))
		prevRMQ = rmq.NewRMQHybridNaive(prev)
	}

	return &SuffixIndex{
		suffixArray: suffixArray,
		words:       words,
		flat:        flat,
		lcp:         lcp,
		lcpRMQ:      lcpRMQ,
		prev:        prev,
		prevRMQ:     prevRMQ,
		foldCase:    b.foldCase,
		normalize:   b.normalize,
	}, nil
}

// New builds an index over words with the default options.
func New(words []string) (*SuffixIndex, error) {
	return NewBuilder(words).Build()
}

// SuffixIndex is immutable once built and safe for concurrent use.
type SuffixIndex struct {
	suffixArray []int
	words       []string
	flat        *flatText
	lcp         []int
	lcpRMQ      *rmq.RMQHybridNaive[int]
	prev        []int
	prevRMQ     *rmq.RMQHybridNaive[int]
	foldCase    bool
	normalize   bool
}

// Occurrence locates one match of a query.
type Occurrence struct {
	// Position is the byte offset of the match within its string.
	Position int
	StringID int
}

// For each index i in the suffix array, prev[i] is the index of the previous
// suffix of the same word in the suffix array, or -1 if there is none.
func buildPrevArray(suffixArray, owner []int, words int) []int {
	prev := make([]int, len(suffixArray))
	wordPrev := make([]int, words)
	for i := range wordPrev {
		wordPrev[i] = -1
	}

	for i := range suffixArray {
		prev[i] = wordPrev[owner[suffixArray[i]]]
		wordPrev[owner[suffixArray[i]]] = i
	}

	return prev
}

// Len returns the number of suffixes, one per character plus one per string.
func (s *SuffixIndex) Len() int {
	return len(s.suffixArray)
}

// NumStrings returns the number of indexed strings.
func (s *SuffixIndex) NumStrings() int {
	return len(s.words)
}

// Word returns the original string with the given id.
func (s *SuffixIndex) Word(id int) string {
	return s.words[id]
}

func (s *SuffixIndex) transform(query string) string {
	return applyTransforms(query, s.foldCase, s.normalize)
}

// Rank returns the number of suffixes strictly less than query.
func (s *SuffixIndex) Rank(query string) int {
	return s.rank(s.transform(query))
}

func (s *SuffixIndex) rank(query string) int {
	return sort.Search(len(s.suffixArray), func(i int) bool {
		return s.flat.comparePrefix(s.suffixArray[i], query) >= 0
	})
}

// Select returns the i-th smallest suffix, up to the end of its string.
func (s *SuffixIndex) Select(i int) (string, error) {
	if i < 0 || i >= len(s.suffixArray) {
		return "", fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, len(s.suffixArray))
	}
	return s.flat.suffix(s.suffixArray[i]), nil
}

// CommonPrefixLen returns the length of the longest common prefix of the
// i-th and j-th smallest suffixes.
func (s *SuffixIndex) CommonPrefixLen(i, j int) (int, error) {
	for _, r := range []int{i, j} {
		if r < 0 || r >= len(s.suffixArray) {
			return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, r, len(s.suffixArray))
		}
	}
	if i == j {
		return len(s.flat.suffix(s.suffixArray[i])), nil
	}
	lo, hi := min(i, j), max(i, j)
	if s.lcpRMQ != nil {
		return s.lcp[s.lcpRMQ.Query(lo, hi-1)], nil
	}

	a, b := s.suffixArray[lo], s.suffixArray[hi]
	l := 0
	for c := s.flat.charAt(a, l); c != terminator && c == s.flat.charAt(b, l); c = s.flat.charAt(a, l) {
		l++
	}
	return l, nil
}

// boundaries returns the half-open range of ranks whose suffixes start with query.
func (s *SuffixIndex) boundaries(query string) (int, int) {
	if query == "" {
		return 0, 0
	}

	n := len(s.suffixArray)
	l := s.rank(query)
	if l == n || s.flat.comparePrefix(s.suffixArray[l], query) != 0 {
		return l, l
	}

	if s.lcpRMQ != nil {
		// The min LCP over [l, l+i] is the prefix shared by ranks l and l+i+1,
		// and it only shrinks as i grows.
		r := sort.Search(n-l-1, func(i int) bool {
			return s.lcp[s.lcpRMQ.Query(l, l+i)] < len(query)
		})
		return l, l + r + 1
	}

	r := sort.Search(n-l, func(i int) bool {
		return s.flat.comparePrefix(s.suffixArray[l+i], query) > 0
	})
	return l, l + r
}

// Index returns every occurrence of query in suffix order.
// An empty query has no occurrences.
func (s *SuffixIndex) Index(query string) []Occurrence {
	l, r := s.boundaries(s.transform(query))
	if l == r {
		return nil
	}

	occurrences := make([]Occurrence, 0, r-l)
	for _, code := range s.suffixArray[l:r] {
		id, pos := s.flat.locate(code)
		occurrences = append(occurrences, Occurrence{Position: pos, StringID: id})
	}
	return occurrences
}

// MatchIDs returns the ids of the strings containing query, each once, in the
// order their first match appears in the suffix array.
// An empty query matches nothing.
func (s *SuffixIndex) MatchIDs(query string) []int {
	l, r := s.boundaries(s.transform(query))
	if l == r {
		return nil
	}

	var ids []int
	usedWord := make(map[int]bool)
	for _, code := range s.suffixArray[l:r] {
		id := s.flat.owner[code]
		if usedWord[id] {
			continue
		}
		usedWord[id] = true
		ids = append(ids, id)
	}
	return ids
}

// Match returns the strings containing query, deduplicated by string id.
func (s *SuffixIndex) Match(query string) []string {
	return s.wordsFor(s.MatchIDs(query))
}

// MatchK returns the ids of at most k distinct strings containing query.
func (s *SuffixIndex) MatchK(query string, k int) []int {
	l, r := s.boundaries(s.transform(query))
	if l == r || k <= 0 {
		return nil
	}

	// Find k distinct word matches for the pattern.
	matches := make([]int, 0, min(k, r-l))
	if s.prev != nil {
		return s.recursiveFindKMatches(l, l, r-1, k, matches)
	}

	usedWord := make(map[int]bool)
	for i := l; i < r && len(matches) < k; i++ {
		id := s.flat.owner[s.suffixArray[i]]
		if usedWord[id] {
			continue
		}
		usedWord[id] = true
		matches = append(matches, id)
	}
	return matches
}

// MatchKStrings is MatchK returning the original strings.
func (s *SuffixIndex) MatchKStrings(query string, k int) []string {
	return s.wordsFor(s.MatchK(query, k))
}

func (s *SuffixIndex) wordsFor(ids []int) []string {
	if len(ids) == 0 {
		return nil
	}
	matches := make([]string, len(ids))
	for i := range matches {
		matches[i] = s.words[ids[i]]
	}
	return matches
}

func (s *SuffixIndex) recursiveFindKMatches(baseL, l, r, k int, matches []int) []int {
	if k <= len(matches) || l > r {
		return matches
	}

	// prev[p] < l, since if prev[p] >= l, prev[p] ∈ [l, r] and we would have prev[prev[p]] < prev[p], a contradiction.
	p := s.prevRMQ.Query(l, r)

	// nothing in [l, r] is outside of the original l anymore, no more new elements.
	if s.prev[p] >= baseL {
		return matches
	}
	matches = append(matches, s.flat.owner[s.suffixArray[p]])
	matches = s.recursiveFindKMatches(baseL, l, p-1, k, matches)
	return s.recursiveFindKMatches(baseL, p+1, r, k, matches)
}
