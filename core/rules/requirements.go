package rules

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/oeg-upm/metacheck/core/provenance"
	"github.com/oeg-upm/metacheck/schema"
)

// versionOperators are the constraint operators that make a requirement
// string versioned even without a separate version field.
var versionOperators = []string{"==", ">=", "<=", "!=", "~=", ">", "<", "^", "~"}

// requirementHasVersion reports whether a requirement carries any version
// information, either as a version field or an inline constraint.
func requirementHasVersion(result map[string]any) bool {
	if version, ok := schema.AsString(result["version"]); ok && strings.TrimSpace(version) != "" {
		return true
	}
	value, _ := schema.AsString(result["value"])
	for _, op := range versionOperators {
		if strings.Contains(value, op) {
			return true
		}
	}
	return false
}

// requirementItems flattens a requirements entry: the result value may be a
// single requirement object or a list of them.
func requirementItems(entry schema.ExtractionEntry) []map[string]any {
	result := entry.Result()
	if result == nil {
		return nil
	}
	if list, ok := schema.AsList(result["value"]); ok {
		var items []map[string]any
		for _, raw := range list {
			if item, ok := schema.AsMap(raw); ok {
				items = append(items, item)
			}
		}
		if items != nil {
			return items
		}
	}
	return []map[string]any{result}
}

// unversionedRequirements warns when declared software requirements carry
// no version constraints at all.
func unversionedRequirements() *check {
	return &check{
		id:       "W001",
		severity: schema.WarningSeverity,
		desc:     "Software requirements are declared without version constraints",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"requirement": nil,
				"source":      nil,
				"has_version": nil,
			}
			entry, ok := provenance.Find(rec, schema.AttrRequirements, provenance.FromMetadataDescriptor)
			if !ok {
				return false, evidence
			}
			for _, item := range requirementItems(entry) {
				if requirementHasVersion(item) {
					continue
				}
				name, _ := schema.AsString(item["name"])
				if name == "" {
					name, _ = schema.AsString(item["value"])
				}
				evidence["requirement"] = name
				evidence["source"] = provenance.EffectiveSource(entry)
				evidence["has_version"] = false
				return true, evidence
			}
			evidence["has_version"] = true
			return false, evidence
		},
	}
}

var multiSpaceSplit = regexp.MustCompile(`\s{2,}`)

// splitPackedRequirements detects several package names packed into one
// requirement string. Wide gaps always split; single spaces split only when
// every token looks like a capitalized package name.
func splitPackedRequirements(value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if parts := multiSpaceSplit.Split(trimmed, -1); len(parts) > 1 {
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
		}
		return parts
	}
	tokens := strings.Fields(trimmed)
	if len(tokens) < 2 {
		return nil
	}
	for _, token := range tokens {
		first := []rune(token)[0]
		if !unicode.IsUpper(first) {
			return nil
		}
	}
	return tokens
}

// multipleRequirementsString warns when one requirement value is really a
// packed list of package names.
func multipleRequirementsString() *check {
	return &check{
		id:       "W005",
		severity: schema.WarningSeverity,
		desc:     "Multiple packages packed into a single requirement string",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"requirement_value": nil,
				"source":            nil,
				"split_packages":    nil,
			}
			for _, entry := range rec.Entries(schema.AttrRequirements) {
				value, ok := entry.ValueString()
				if !ok {
					continue
				}
				packages := splitPackedRequirements(value)
				if len(packages) < 2 {
					continue
				}
				evidence["requirement_value"] = value
				evidence["source"] = entry.Source()
				evidence["split_packages"] = packages
				return true, evidence
			}
			return false, evidence
		},
	}
}
