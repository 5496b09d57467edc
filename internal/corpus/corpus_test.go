package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     Options
		expected []string
	}{
		{"plain lines", "Hello\nFellow\nYellow", Options{}, []string{"Hello", "Fellow", "Yellow"}},
		{"crlf", "Hello\r\nHero\r\n", Options{}, []string{"Hello", "Hero"}},
		{"keeps blanks", "a\n\nb\n", Options{}, []string{"a", "", "b"}},
		{"skips blanks", "a\n\n  \nb\n", Options{SkipBlank: true}, []string{"a", "b"}},
		{"keeps inner spaces", " a b \n", Options{SkipBlank: true}, []string{" a b "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(strings.NewReader(tt.input), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Load(strings.NewReader("\n \n"), Options{SkipBlank: true})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello world Hello\nFellow\n"), 0o644))

	got, err := LoadFile(path, Options{SkipBlank: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello world Hello", "Fellow"}, got)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = LoadFile(empty, Options{})
	assert.ErrorIs(t, err, ErrEmpty)
}
