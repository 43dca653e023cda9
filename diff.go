package main

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
)

// diffContextLines is the number of unchanged lines kept around each hunk
const diffContextLines = 3

// UnifiedDiff returns the line-level unified diff turning base into other,
// one entry per output line without line terminators. The file headers
// are "--- " and "+++ " with empty names. Identical inputs yield an empty,
// non-nil slice.
func UnifiedDiff(base, other string) []string {
	diff := difflib.UnifiedDiff{
		A:       withTerminators(splitLines(base)),
		B:       withTerminators(splitLines(other)),
		Context: diffContextLines,
		Eol:     "\n",
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil || text == "" {
		return []string{}
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "@@") {
			lines = lines[i:]
			break
		}
	}
	return append([]string{"--- ", "+++ "}, lines...)
}

// Similarity returns 1 minus the normalised Levenshtein distance between
// a and b, in [0,1]. Two empty strings are identical.
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// splitLines breaks text on \n, \r\n and \r. A trailing terminator does not
// produce an extra empty line and empty text has no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func withTerminators(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}
