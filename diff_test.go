package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedDiff(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		other string
		want  []string
	}{
		{
			name:  "stub outputs differ in marker line",
			base:  "[stubbed completion for a]\nX",
			other: "[stubbed completion for b]\nX",
			want: []string{
				"--- ", "+++ ", "@@ -1,2 +1,2 @@",
				"-[stubbed completion for a]", "+[stubbed completion for b]", " X",
			},
		},
		{
			name:  "single line replaced",
			base:  "a",
			other: "b",
			want:  []string{"--- ", "+++ ", "@@ -1 +1 @@", "-a", "+b"},
		},
		{
			name:  "identical texts",
			base:  "same\ntext",
			other: "same\ntext",
			want:  []string{},
		},
		{
			name:  "context is limited to three lines",
			base:  "1\n2\n3\n4\n5\n6\n7\n8\n9\n10",
			other: "1\n2\n3\n4\nFIVE\n6\n7\n8\n9\n10",
			want: []string{
				"--- ", "+++ ", "@@ -2,7 +2,7 @@",
				" 2", " 3", " 4", "-5", "+FIVE", " 6", " 7", " 8",
			},
		},
		{
			name:  "empty baseline",
			base:  "",
			other: "added",
			want:  []string{"--- ", "+++ ", "@@ -0,0 +1 @@", "+added"},
		},
		{
			name:  "appended line",
			base:  "one\ntwo",
			other: "one\ntwo\nthree",
			want:  []string{"--- ", "+++ ", "@@ -1,2 +1,3 @@", " one", " two", "+three"},
		},
		{
			name:  "trailing newline is not a line",
			base:  "one\n",
			other: "one",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnifiedDiff(tt.base, tt.other)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnifiedDiffLinePrefixes(t *testing.T) {
	base := strings.Repeat("shared line\n", 10) + "old ending"
	other := "new opening\n" + strings.Repeat("shared line\n", 10) + "new ending"

	lines := UnifiedDiff(base, other)
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "--- ", lines[0])
	assert.Equal(t, "+++ ", lines[1])

	for _, line := range lines[2:] {
		switch {
		case strings.HasPrefix(line, "@@ "):
		case strings.HasPrefix(line, "+"), strings.HasPrefix(line, "-"), strings.HasPrefix(line, " "):
		default:
			t.Errorf("unexpected diff line %q", line)
		}
	}
	assert.Contains(t, lines, "+new opening")
	assert.Contains(t, lines, "-old ending")
	assert.Contains(t, lines, "+new ending")
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb\r\n"))
	assert.Equal(t, []string{"a", ""}, splitLines("a\n\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\rb"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("same", "same"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 0.75, Similarity("abcd", "abcx"), 1e-9)
	assert.InDelta(t, 0.5, Similarity("检查草稿", "检查"), 1e-9)
}
