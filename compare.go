package main

import (
	"context"
	"strings"
	"time"
)

const compareSystemPrompt = "You are an assistant analysing inspection drafts."

// RunCompare asks every requested model to analyse the draft, diffs each
// answer against the first model's and runs the detector pass over all
// answers.
func RunCompare(ctx context.Context, completer Completer, detectors *DetectorRegistry, req CompareRequest) (*CompareResult, error) {
	if len(req.Models) == 0 {
		return nil, NewValidationError("At least one model must be selected for compare mode")
	}
	if dup, ok := firstDuplicate(req.Models); ok {
		return nil, NewValidationError("Model %s selected more than once", dup)
	}

	texts, err := GenerateAll(ctx, completer, req.Models, func(string, int) []ChatMessage {
		return []ChatMessage{
			{Role: RoleSystem, Content: compareSystemPrompt},
			{Role: RoleUser, Content: req.InputText},
		}
	})
	if err != nil {
		return nil, err
	}

	completions := make(map[string]string, len(req.Models))
	for i, model := range req.Models {
		completions[model] = texts[i]
	}

	issues := detectors.RunDetectors(req.Detectors, strings.Join(texts, "\n\n"))

	return &CompareResult{
		GeneratedAt:    time.Now().UTC(),
		Completions:    completions,
		Diffs:          buildDiffs(req.Models, texts),
		DetectorIssues: issues,
	}, nil
}

// buildDiffs diffs every text after the first against the first. A single
// text yields one snippet with an empty diff.
func buildDiffs(models, texts []string) []DiffSnippet {
	if len(texts) == 1 {
		return []DiffSnippet{{
			ModelID:         models[0],
			Content:         texts[0],
			HighlightedDiff: []string{},
			Similarity:      1,
		}}
	}

	baseline := texts[0]
	diffs := make([]DiffSnippet, 0, len(texts)-1)
	for i := 1; i < len(texts); i++ {
		diffs = append(diffs, DiffSnippet{
			ModelID:         models[i],
			Content:         texts[i],
			HighlightedDiff: UnifiedDiff(baseline, texts[i]),
			Similarity:      Similarity(baseline, texts[i]),
		})
	}
	return diffs
}

func firstDuplicate(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
