package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/oeg-upm/metacheck/core/provenance"
	"github.com/oeg-upm/metacheck/schema"
)

var (
	bareDOIPattern  = regexp.MustCompile(`(?i)^(doi:)?10\.\d+/.+$`)
	rawSWHIDPattern = regexp.MustCompile(`^swh:1:(cnt|dir|rel|rev|snp|ori):[0-9a-f]{40}$`)
	doiURLPattern   = regexp.MustCompile(`(?i)^https?://(dx\.)?doi\.org/10\.\d+/.+$`)
	httpURLPattern  = regexp.MustCompile(`(?i)^https?://\S+$`)
)

// isBareDOI reports whether an identifier is a DOI without a resolvable
// https://doi.org/ prefix.
func isBareDOI(value string) bool {
	return bareDOIPattern.MatchString(strings.TrimSpace(value))
}

// isRawSWHID reports whether an identifier is a Software Heritage ID given
// without a resolver URL.
func isRawSWHID(value string) bool {
	return rawSWHIDPattern.MatchString(strings.TrimSpace(value))
}

// isValidIdentifier reports whether a value is a resolvable identifier: a
// DOI in any spelling or an http(s) URL. Project names and other prose do
// not qualify.
func isValidIdentifier(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	if isBareDOI(trimmed) || doiURLPattern.MatchString(trimmed) {
		return true
	}
	return httpURLPattern.MatchString(trimmed)
}

// bareDOI flags identifiers written as bare DOIs instead of resolvable
// doi.org URLs.
func bareDOI() *check {
	return &check{
		id:       "P014",
		severity: schema.PitfallSeverity,
		desc:     "Identifier is a bare DOI instead of a resolvable URL",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"identifier": nil,
				"source":     nil,
			}
			for _, entry := range rec.Entries(schema.AttrIdentifier) {
				value, ok := entry.ValueString()
				if !ok || !isBareDOI(value) {
					continue
				}
				evidence["identifier"] = strings.TrimSpace(value)
				evidence["source"] = entry.Source()
				return true, evidence
			}
			return false, evidence
		},
	}
}

// rawSWHID flags identifiers written as raw Software Heritage IDs instead
// of resolver URLs.
func rawSWHID() *check {
	return &check{
		id:       "P018",
		severity: schema.PitfallSeverity,
		desc:     "Identifier is a raw SWHID instead of a resolver URL",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"identifier": nil,
				"source":     nil,
			}
			for _, entry := range rec.Entries(schema.AttrIdentifier) {
				value, ok := entry.ValueString()
				if !ok || !isRawSWHID(value) {
					continue
				}
				evidence["identifier"] = strings.TrimSpace(value)
				evidence["source"] = entry.Source()
				return true, evidence
			}
			return false, evidence
		},
	}
}

// identifierName warns when codemeta carries a name-like identifier while a
// proper resolvable identifier exists elsewhere in the record.
func identifierName() *check {
	return &check{
		id:       "W006",
		severity: schema.WarningSeverity,
		desc:     "Codemeta identifier is a name while a resolvable identifier exists elsewhere",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"codemeta_identifier":            nil,
				"codemeta_source":                nil,
				"other_identifier":               nil,
				"other_source":                   nil,
				"other_identifiers":              nil,
				"has_valid_identifier_elsewhere": false,
			}
			codemetaEntry, ok := provenance.Find(rec, schema.AttrIdentifier,
				provenance.And(provenance.FromCodemeta, provenance.HasValue))
			if !ok {
				return false, evidence
			}
			codemetaValue, ok := codemetaEntry.ValueString()
			if !ok {
				return false, evidence
			}
			evidence["codemeta_identifier"] = codemetaValue
			evidence["codemeta_source"] = provenance.EffectiveSource(codemetaEntry)

			var others []map[string]any
			for _, entry := range rec.Entries(schema.AttrIdentifier) {
				if provenance.FromCodemeta(entry) {
					continue
				}
				value, ok := entry.ValueString()
				if !ok || !isValidIdentifier(value) {
					continue
				}
				others = append(others, map[string]any{
					"identifier": strings.TrimSpace(value),
					"source":     entry.Source(),
				})
			}
			if others != nil {
				evidence["other_identifiers"] = others
				evidence["other_identifier"] = others[0]["identifier"]
				evidence["other_source"] = others[0]["source"]
				evidence["has_valid_identifier_elsewhere"] = true
			}
			return !isValidIdentifier(codemetaValue) && len(others) > 0, evidence
		},
	}
}

// emptyIdentifier warns when codemeta declares an identifier field with no
// usable value.
func emptyIdentifier() *check {
	return &check{
		id:       "W007",
		severity: schema.WarningSeverity,
		desc:     "Codemeta identifier field is empty",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"source": nil,
			}
			for _, entry := range rec.Entries(schema.AttrIdentifier) {
				if !provenance.FromCodemeta(entry) {
					continue
				}
				result := entry.Result()
				if result == nil {
					continue
				}
				raw, present := result["value"]
				if !present {
					continue
				}
				if str, isStr := raw.(string); raw == nil || (isStr && strings.TrimSpace(str) == "") {
					evidence["source"] = provenance.EffectiveSource(entry)
					return true, evidence
				}
			}
			return false, evidence
		},
	}
}
