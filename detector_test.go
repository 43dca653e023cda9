package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDetectors(t *testing.T) {
	registry := NewDetectorRegistry([]DetectorOption{
		{ID: "consistency", Label: "Consistency", DefaultThreshold: 0.6},
		{ID: "readability", Label: "Readability", DefaultThreshold: 0.5},
	})

	selections := []DetectorSelection{
		{ID: "consistency", Enabled: true, Threshold: floatPtr(0.6)},
		{ID: "readability", Enabled: false, Threshold: floatPtr(0.5)},
		{ID: "compliance", Enabled: true},
		{ID: "custom", Enabled: true, Threshold: floatPtr(1)},
	}

	issues := registry.RunDetectors(selections, "short draft")

	assert.Equal(t, []DetectorIssue{
		{
			DetectorID: "consistency",
			Severity:   "medium",
			Summary:    "Stub finding for consistency (threshold=0.6).",
			Evidence:   "short draft",
		},
		{
			DetectorID: "compliance",
			Severity:   "medium",
			Summary:    "Stub finding for compliance (threshold=default).",
			Evidence:   "short draft",
		},
		{
			DetectorID: "custom",
			Severity:   "medium",
			Summary:    "Stub finding for custom (threshold=1.0).",
			Evidence:   "short draft",
		},
	}, issues)
}

func TestRunDetectorsIsDeterministic(t *testing.T) {
	registry := NewDetectorRegistry(nil)
	selections := []DetectorSelection{{ID: "a", Enabled: true}, {ID: "b", Enabled: true, Threshold: floatPtr(0.25)}}

	assert.Equal(t, registry.RunDetectors(selections, "content"), registry.RunDetectors(selections, "content"))
}

func TestRunDetectorsEmpty(t *testing.T) {
	issues := NewDetectorRegistry(nil).RunDetectors(nil, "content")
	require.NotNil(t, issues)
	assert.Empty(t, issues)

	issues = NewDetectorRegistry(nil).RunDetectors([]DetectorSelection{{ID: "off", Enabled: false}}, "content")
	assert.Empty(t, issues)
}

func TestDetectorEvidenceTruncation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "short", content: "abc", want: "abc"},
		{name: "exactly limit", content: strings.Repeat("x", 120), want: strings.Repeat("x", 120)},
		{name: "one over limit", content: strings.Repeat("x", 121), want: strings.Repeat("x", 120) + "..."},
		{name: "multibyte counts runes", content: strings.Repeat("检", 130), want: strings.Repeat("检", 120) + "..."},
		{name: "empty", content: "", want: ""},
	}

	registry := NewDetectorRegistry(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := registry.RunDetectors([]DetectorSelection{{ID: "d", Enabled: true}}, tt.content)
			require.Len(t, issues, 1)
			assert.Equal(t, tt.want, issues[0].Evidence)
		})
	}
}

func TestDetectorRegistryRegister(t *testing.T) {
	registry := NewDetectorRegistry([]DetectorOption{{ID: "compliance"}})
	registry.Register("compliance", DetectorFunc(func(content string, threshold *float64) []DetectorIssue {
		if !strings.Contains(content, "forbidden") {
			return nil
		}
		return []DetectorIssue{{DetectorID: "compliance", Severity: "high", Summary: "forbidden term", Evidence: "forbidden"}}
	}))

	selections := []DetectorSelection{{ID: "compliance", Enabled: true}, {ID: "readability", Enabled: true}}

	issues := registry.RunDetectors(selections, "a clean draft")
	require.Len(t, issues, 1)
	assert.Equal(t, "readability", issues[0].DetectorID)

	issues = registry.RunDetectors(selections, "a forbidden draft")
	require.Len(t, issues, 2)
	assert.Equal(t, "high", issues[0].Severity)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{0, "0.0"},
		{0.6, "0.6"},
		{2.5, "2.5"},
		{1234567, "1234567.0"},
		{1e-05, "1e-05"},
		{1e16, "1e+16"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in), "formatFloat(%v)", tt.in)
	}
}
