package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/oeg-upm/metacheck/schema"
)

// languageNoVersion collects programming languages that are declared with an
// explicitly null version. Languages missing the version field entirely are
// left alone.
func languageNoVersion() *check {
	return &check{
		id:       "W004",
		severity: schema.WarningSeverity,
		desc:     "Programming languages declared with a null version",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"languages": nil,
			}
			var unversioned []string
			for _, entry := range rec.Entries(schema.AttrProgrammingLanguages) {
				result := entry.Result()
				if result == nil {
					continue
				}
				name, ok := schema.AsString(result["name"])
				if !ok || strings.TrimSpace(name) == "" {
					continue
				}
				version, present := result["version"]
				if !present || version != nil {
					continue
				}
				unversioned = append(unversioned, name)
			}
			if unversioned != nil {
				evidence["languages"] = unversioned
			}
			return len(unversioned) > 0, evidence
		},
	}
}

// bareDomain matches word.tld hostnames written without a scheme.
var bareDomain = regexp.MustCompile(`(?i)\b[\w-]+\.(?:org|com|net)\b`)

// containsURL reports whether text embeds a URL in any common spelling.
func containsURL(text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "http://") || strings.Contains(lower, "https://") {
		return true
	}
	if strings.Contains(lower, "www.") {
		return true
	}
	return bareDomain.MatchString(text)
}

// developmentStatusURL warns when the development status field holds a URL
// instead of a status keyword.
func developmentStatusURL() *check {
	return &check{
		id:       "W009",
		severity: schema.WarningSeverity,
		desc:     "Development status field contains a URL instead of a status",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"status_value": nil,
				"source":       nil,
			}
			for _, entry := range rec.Entries(schema.AttrDevelopmentStatus) {
				value, ok := entry.ValueString()
				if !ok || !containsURL(value) {
					continue
				}
				evidence["status_value"] = value
				evidence["source"] = entry.Source()
				return true, evidence
			}
			return false, evidence
		},
	}
}
