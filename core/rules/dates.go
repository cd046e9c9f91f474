package rules

import (
	"context"
	"strings"
	"time"

	"github.com/oeg-upm/metacheck/core/provenance"
	"github.com/oeg-upm/metacheck/schema"
)

// dateLayouts are the timestamp formats seen across extraction sources.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseExtractionDate tries each known layout in order.
func parseExtractionDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// codemetaSourceLabel names where a codemeta date came from, distinguishing
// the parsed file from code parser output.
func codemetaSourceLabel(entry schema.ExtractionEntry) string {
	source := provenance.EffectiveSource(entry)
	if source != "" {
		return source
	}
	if entry.Technique() == schema.TechniqueCodeParser {
		return "codemeta.json (code_parser)"
	}
	return "codemeta.json"
}

// outdatedDateModified warns when the platform reports activity more than a
// day after the dateModified recorded in codemeta.
func outdatedDateModified() *check {
	return &check{
		id:       "W002",
		severity: schema.WarningSeverity,
		desc:     "Codemeta dateModified lags behind actual repository activity",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"api_date":        nil,
				"codemeta_date":   nil,
				"codemeta_source": nil,
				"difference_days": nil,
			}
			apiEntry, ok := provenance.Find(rec, schema.AttrDateUpdated,
				provenance.And(provenance.FromAPI, provenance.HasValue))
			if !ok {
				return false, evidence
			}
			codemetaEntry, ok := provenance.Find(rec, schema.AttrDateUpdated,
				provenance.And(provenance.FromCodemeta, provenance.HasValue))
			if !ok {
				return false, evidence
			}

			apiRaw, _ := apiEntry.ValueString()
			codemetaRaw, _ := codemetaEntry.ValueString()
			evidence["api_date"] = apiRaw
			evidence["codemeta_date"] = codemetaRaw
			evidence["codemeta_source"] = codemetaSourceLabel(codemetaEntry)

			apiDate, okAPI := parseExtractionDate(apiRaw)
			codemetaDate, okCodemeta := parseExtractionDate(codemetaRaw)
			if !okAPI || !okCodemeta {
				return false, evidence
			}

			// Whole days, truncated toward zero
			diffDays := int(apiDate.Sub(codemetaDate).Hours() / 24)
			evidence["difference_days"] = diffDays
			return diffDays > 1, evidence
		},
	}
}
