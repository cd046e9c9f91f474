package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/oeg-upm/metacheck/core/provenance"
	"github.com/oeg-upm/metacheck/schema"
)

// authorSeparators split a single author string that is really holding
// several names. Suffixes like ", Jr." are not separators.
var (
	authorSplitPattern = regexp.MustCompile(`(?i)\s+(?:and|&)\s+|[;\n]|,`)
	nameSuffixPattern  = regexp.MustCompile(`(?i)^(jr|sr|ii|iii|iv|phd|md)\.?$`)
)

// splitAuthorField breaks an author value on common multi-name separators,
// re-joining generational suffixes with the preceding name.
func splitAuthorField(value string) []string {
	raw := authorSplitPattern.Split(value, -1)
	var names []string
	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if nameSuffixPattern.MatchString(part) && len(names) > 0 {
			names[len(names)-1] += ", " + part
			continue
		}
		names = append(names, part)
	}
	return names
}

// multipleAuthorsSingleField flags metadata that crams several author names
// into one author field.
func multipleAuthorsSingleField() *check {
	return &check{
		id:       "P003",
		severity: schema.PitfallSeverity,
		desc:     "Multiple author names packed into a single author field",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"author_value": nil,
				"source":       nil,
				"split_names":  nil,
			}
			for _, entry := range rec.Entries(schema.AttrAuthors) {
				if !provenance.FromMetadataDescriptor(entry) {
					continue
				}
				value, ok := entry.ValueString()
				if !ok || strings.TrimSpace(value) == "" {
					continue
				}
				names := splitAuthorField(value)
				if len(names) < 2 {
					continue
				}
				evidence["author_value"] = value
				evidence["source"] = provenance.EffectiveSource(entry)
				evidence["split_names"] = names
				return true, evidence
			}
			return false, evidence
		},
	}
}

// bracketedAuthorList matches an author value that starts with a bracketed,
// comma-separated list, i.e. a serialized list leaking into a string field.
var bracketedAuthorList = regexp.MustCompile(`^\s*\[[^\[\]]*,[^\[\]]*\]`)

// authorNameList warns when the author field holds a stringified list of
// names instead of structured author entries.
func authorNameList() *check {
	return &check{
		id:       "W008",
		severity: schema.WarningSeverity,
		desc:     "Author field holds a stringified list instead of structured authors",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"author_value": nil,
				"source":       nil,
			}
			for _, entry := range rec.Entries(schema.AttrAuthors) {
				value, ok := entry.ValueString()
				if !ok {
					continue
				}
				if !bracketedAuthorList.MatchString(value) {
					continue
				}
				evidence["author_value"] = value
				evidence["source"] = entry.Source()
				return true, evidence
			}
			return false, evidence
		},
	}
}
