package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

const (
	evidenceLimit   = 120
	ellipsisMarker  = "..."
	defaultSeverity = "medium"
)

// Detector analyses content and reports findings. threshold is nil when
// the caller did not pick one.
type Detector interface {
	Evaluate(content string, threshold *float64) []DetectorIssue
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func(content string, threshold *float64) []DetectorIssue

func (f DetectorFunc) Evaluate(content string, threshold *float64) []DetectorIssue {
	return f(content, threshold)
}

// placeholderDetector emits a single medium-severity finding carrying an
// evidence excerpt. It does not analyse the content.
type placeholderDetector struct {
	id string
}

func (d placeholderDetector) Evaluate(content string, threshold *float64) []DetectorIssue {
	display := "default"
	if threshold != nil {
		display = formatFloat(*threshold)
	}
	return []DetectorIssue{{
		DetectorID: d.id,
		Severity:   defaultSeverity,
		Summary:    fmt.Sprintf("Stub finding for %s (threshold=%s).", d.id, display),
		Evidence:   truncateRunes(content, evidenceLimit, ellipsisMarker),
	}}
}

// DetectorRegistry resolves detector ids to implementations. Unknown ids
// resolve to a placeholder so callers may enable detectors the catalog
// does not list.
type DetectorRegistry struct {
	mu        sync.RWMutex
	detectors map[string]Detector
}

// NewDetectorRegistry registers a placeholder for every catalog detector.
func NewDetectorRegistry(options []DetectorOption) *DetectorRegistry {
	r := &DetectorRegistry{detectors: make(map[string]Detector, len(options))}
	for _, opt := range options {
		r.detectors[opt.ID] = placeholderDetector{id: opt.ID}
	}
	return r
}

// Register installs or replaces the detector for id.
func (r *DetectorRegistry) Register(id string, d Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors[id] = d
}

// Lookup returns the detector for id.
func (r *DetectorRegistry) Lookup(id string) Detector {
	if r != nil {
		r.mu.RLock()
		d, ok := r.detectors[id]
		r.mu.RUnlock()
		if ok {
			return d
		}
	}
	return placeholderDetector{id: id}
}

// RunDetectors evaluates every enabled selection, in order, against
// content. Disabled selections are skipped entirely.
func (r *DetectorRegistry) RunDetectors(selections []DetectorSelection, content string) []DetectorIssue {
	issues := make([]DetectorIssue, 0, len(selections))
	for _, sel := range selections {
		if !sel.Enabled {
			continue
		}
		issues = append(issues, r.Lookup(sel.ID).Evaluate(content, sel.Threshold)...)
	}
	return issues
}

// truncateRunes keeps the first limit runes of s and appends marker when
// anything was cut.
func truncateRunes(s string, limit int, marker string) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + marker
}

// formatFloat renders the shortest round-trip form of v and always keeps a
// fractional part (1.0, 0.6). Very small or large values use an exponent.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		format = 'g'
	}
	s := strconv.FormatFloat(v, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
