// Package corpus reads the fixed set of strings an index is built from.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmpty is returned when no lines remain after loading.
var ErrEmpty = errors.New("corpus: no entries")

// maxLineSize bounds a single entry.
const maxLineSize = 1024 * 1024

// Options controls how lines become entries.
type Options struct {
	// SkipBlank drops lines that are empty after trimming whitespace.
	SkipBlank bool
}

// Load reads one entry per line from r. Trailing carriage returns are stripped.
func Load(r io.Reader, opts Options) ([]string, error) {
	var entries []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if opts.SkipBlank && strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	return entries, nil
}

// LoadFile reads entries from the file at path.
func LoadFile(path string, opts Options) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
