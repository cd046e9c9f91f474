package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// urlInText extracts http(s) and www URLs embedded in free-form text.
var urlInText = regexp.MustCompile(`(?i)\bhttps?://[^\s<>"']+|\bwww\.[^\s<>"']+`)

// extractURLs pulls URLs out of text, stripping trailing punctuation that
// belongs to the sentence rather than the URL.
func extractURLs(text string) []string {
	var urls []string
	for _, match := range urlInText.FindAllString(text, -1) {
		urls = append(urls, strings.TrimRight(match, ".,!;)"))
	}
	return urls
}

// probeURL runs a single probe, normalizing scheme-less www URLs first.
func probeURL(ctx context.Context, prober contract.Prober, rawURL string) schema.ProbeOutcome {
	target := strings.TrimSpace(rawURL)
	if strings.HasPrefix(strings.ToLower(target), "www.") {
		target = "https://" + target
	}
	return prober.Probe(ctx, target)
}

// invalidSoftwareRequirement flags requirements whose embedded URLs are
// unreachable or malformed.
func invalidSoftwareRequirement(prober contract.Prober) *check {
	return &check{
		id:       "P008",
		severity: schema.PitfallSeverity,
		desc:     "Software requirement references an invalid or unreachable URL",
		eval: func(ctx context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"checked_urls": nil,
				"invalid_urls": nil,
			}
			var checked []string
			var invalid []map[string]any
			for _, entry := range rec.Entries(schema.AttrRequirements) {
				value, ok := entry.ValueString()
				if !ok {
					continue
				}
				for _, rawURL := range extractURLs(value) {
					checked = append(checked, rawURL)
					outcome := probeURL(ctx, prober, rawURL)
					if outcome.IsAccessible {
						continue
					}
					detail := map[string]any{
						"url":    rawURL,
						"source": entry.Source(),
					}
					if outcome.StatusCode != nil {
						detail["status_code"] = *outcome.StatusCode
					}
					if outcome.Error != nil {
						detail["error"] = *outcome.Error
					}
					invalid = append(invalid, detail)
				}
			}
			if checked != nil {
				evidence["checked_urls"] = checked
			}
			if invalid != nil {
				evidence["invalid_urls"] = invalid
			}
			return len(invalid) > 0, evidence
		},
	}
}

// inaccessibleIssueTracker flags an issue tracker URL that does not respond
// successfully.
func inaccessibleIssueTracker(prober contract.Prober) *check {
	return &check{
		id:       "P011",
		severity: schema.PitfallSeverity,
		desc:     "Issue tracker URL is not accessible",
		eval: func(ctx context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"issue_tracker_url": nil,
				"source":            nil,
				"is_accessible":     nil,
				"status_code":       nil,
				"error":             nil,
			}
			for _, entry := range rec.Entries(schema.AttrIssueTracker) {
				value, ok := entry.ValueString()
				if !ok || strings.TrimSpace(value) == "" {
					continue
				}
				outcome := probeURL(ctx, prober, value)
				evidence["issue_tracker_url"] = strings.TrimSpace(value)
				evidence["source"] = entry.Source()
				evidence["is_accessible"] = outcome.IsAccessible
				if outcome.StatusCode != nil {
					evidence["status_code"] = *outcome.StatusCode
				}
				if outcome.Error != nil {
					evidence["error"] = *outcome.Error
				}
				return !outcome.IsAccessible, evidence
			}
			return false, evidence
		},
	}
}

// brokenContinuousIntegration flags a continuous integration URL that is
// malformed or unreachable.
func brokenContinuousIntegration(prober contract.Prober) *check {
	return &check{
		id:       "P015",
		severity: schema.PitfallSeverity,
		desc:     "Continuous integration URL is broken or unreachable",
		eval: func(ctx context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"ci_url":        nil,
				"source":        nil,
				"is_accessible": nil,
				"status_code":   nil,
				"error":         nil,
			}
			for _, entry := range rec.Entries(schema.AttrContinuousIntegration) {
				value, ok := entry.ValueString()
				if !ok || strings.TrimSpace(value) == "" {
					continue
				}
				outcome := probeURL(ctx, prober, value)
				evidence["ci_url"] = strings.TrimSpace(value)
				evidence["source"] = entry.Source()
				evidence["is_accessible"] = outcome.IsAccessible
				if outcome.StatusCode != nil {
					evidence["status_code"] = *outcome.StatusCode
				}
				if outcome.Error != nil {
					evidence["error"] = *outcome.Error
				}
				return !outcome.IsAccessible, evidence
			}
			return false, evidence
		},
	}
}
