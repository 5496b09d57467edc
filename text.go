package suffixindex

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// terminator is what charAt reports at and past the end of a string.
// It sorts below every byte, so a shorter suffix orders first.
const terminator = -1

// flatText is the flattened character space: every string followed by one
// terminator slot. A code is an index into this space.
type flatText struct {
	// text holds the concatenated strings; terminator slots hold 0 and are
	// never read as characters.
	text []byte
	// offsets[id] is the code of the first character of string id.
	offsets []int
	// ends[id] is the code of the terminator of string id.
	ends []int
	// owner[code] is the string id that code belongs to.
	owner []int
}

func newFlatText(texts []string) *flatText {
	total := 0
	offsets := make([]int, len(texts))
	ends := make([]int, len(texts))
	for i, s := range texts {
		offsets[i] = total
		ends[i] = total + len(s)
		total += len(s) + 1
	}

	text := make([]byte, total)
	owner := make([]int, total)
	for i, s := range texts {
		copy(text[offsets[i]:], s)
		for code := offsets[i]; code <= ends[i]; code++ {
			owner[code] = i
		}
	}

	return &flatText{
		text:    text,
		offsets: offsets,
		ends:    ends,
		owner:   owner,
	}
}

func (f *flatText) len() int {
	return len(f.text)
}

// charAt returns the d-th character of the suffix starting at code.
func (f *flatText) charAt(code, d int) int {
	pos := code + d
	if pos >= f.ends[f.owner[code]] {
		return terminator
	}
	return int(f.text[pos])
}

// locate maps a code to its string id and its offset within that string.
func (f *flatText) locate(code int) (id, pos int) {
	id = f.owner[code]
	return id, code - f.offsets[id]
}

// suffix returns the text from code to the end of its string.
func (f *flatText) suffix(code int) string {
	return string(f.text[code:f.ends[f.owner[code]]])
}

// comparePrefix compares the suffix at code with query, looking at no more
// than len(query) characters. It returns 0 when the suffix starts with query.
func (f *flatText) comparePrefix(code int, query string) int {
	for d := 0; d < len(query); d++ {
		c, q := f.charAt(code, d), int(query[d])
		if c < q {
			return -1
		}
		if c > q {
			return 1
		}
	}
	return 0
}

func applyTransforms(word string, foldCase bool, normalize bool) string {
	if foldCase {
		word = strings.ToLower(word)
	}
	if normalize {
		word = norm.NFC.String(word)
	}
	return word
}
