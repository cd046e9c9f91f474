package rules

import (
	"context"
	"strings"

	"github.com/oeg-upm/metacheck/core/provenance"
	"github.com/oeg-upm/metacheck/schema"
)

// divergentRepository collects every metadata repository URL that disagrees
// with the repository reported by the hosting platform API. Unlike most
// checks it does not stop at the first hit: every divergent descriptor is
// evidence.
func divergentRepository() *check {
	return &check{
		id:       "P016",
		severity: schema.PitfallSeverity,
		desc:     "Metadata repository URL diverges from the actual repository",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"api_repository_url": nil,
				"divergent_entries":  nil,
			}
			apiEntry, ok := provenance.Find(rec, schema.AttrCodeRepository,
				provenance.And(provenance.FromAPI, provenance.HasValue))
			if !ok {
				return false, evidence
			}
			apiURL, ok := apiEntry.ValueString()
			if !ok || strings.TrimSpace(apiURL) == "" {
				return false, evidence
			}
			evidence["api_repository_url"] = apiURL
			apiNorm := NormalizeRepositoryURL(apiURL)

			var divergent []map[string]any
			for _, entry := range rec.Entries(schema.AttrCodeRepository) {
				if provenance.FromAPI(entry) {
					continue
				}
				value, ok := entry.ValueString()
				if !ok || strings.TrimSpace(value) == "" {
					continue
				}
				if NormalizeRepositoryURL(value) == apiNorm {
					continue
				}
				divergent = append(divergent, map[string]any{
					"repository_url": value,
					"source":         entry.Source(),
				})
			}
			if divergent != nil {
				evidence["divergent_entries"] = divergent
			}
			return len(divergent) > 0, evidence
		},
	}
}

// isGitRemoteShorthand reports whether a value is a bare host:path git
// remote shorthand instead of a full URL.
func isGitRemoteShorthand(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	lower := strings.ToLower(value)
	if strings.Contains(lower, "://") || strings.Contains(value, "@") {
		return false
	}
	colon := strings.Index(value, ":")
	if colon <= 0 || colon == len(value)-1 {
		return false
	}
	// A slash before the colon means the colon is part of a path, not a host
	if strings.Contains(value[:colon], "/") {
		return false
	}
	return true
}

// gitRemoteShorthand warns when a repository reference uses host:path
// shorthand that only git understands.
func gitRemoteShorthand() *check {
	return &check{
		id:       "W010",
		severity: schema.WarningSeverity,
		desc:     "Repository reference uses git remote shorthand instead of a URL",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"repository_value": nil,
				"source":           nil,
			}
			for _, entry := range rec.Entries(schema.AttrCodeRepository) {
				value, ok := entry.ValueString()
				if !ok || !isGitRemoteShorthand(value) {
					continue
				}
				evidence["repository_value"] = strings.TrimSpace(value)
				evidence["source"] = entry.Source()
				return true, evidence
			}
			return false, evidence
		},
	}
}
