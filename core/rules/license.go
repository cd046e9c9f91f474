package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/oeg-upm/metacheck/core/provenance"
	"github.com/oeg-upm/metacheck/schema"
)

// Placeholder tokens left behind by license templates. Keyword-bounded so
// ordinary punctuation ("Smith, Jr.") and markdown links never trigger.
var (
	anglePlaceholder   = regexp.MustCompile(`(?i)<[^<>]*(?:year|yyyy|name|author|owner|holder|program|organization|copyright)[^<>]*>`)
	bracketPlaceholder = regexp.MustCompile(`(?i)\[[^\[\]]*(?:year|yyyy|name|author|owner|holder|fullname|copyright)[^\[\]]*\]`)
)

// hasTemplatePlaceholders reports whether license text still carries template
// placeholder tokens.
func hasTemplatePlaceholders(content string) bool {
	if content == "" {
		return false
	}
	return anglePlaceholder.MatchString(content) || bracketPlaceholder.MatchString(content)
}

// licenseFileContent resolves the text of a license file whose source matches
// the given filename fragment.
func licenseFileContent(rec schema.MetadataRecord, fragment string) (content, source string, ok bool) {
	entry, found := provenance.Find(rec, schema.AttrLicense,
		provenance.And(provenance.SourceContains(fragment), provenance.HasValue))
	if !found {
		return "", "", false
	}
	text, isStr := entry.ValueString()
	if !isStr || text == "" {
		return "", "", false
	}
	return text, entry.Source(), true
}

// licenseTemplatePlaceholders flags canonical license files that were
// committed without filling in the template placeholders.
func licenseTemplatePlaceholders() *check {
	return &check{
		id:       "P002",
		severity: schema.PitfallSeverity,
		desc:     "License file still contains unfilled template placeholders",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"license_source":   nil,
				"has_placeholders": false,
			}
			content, source, ok := licenseFileContent(rec, "license.md")
			if !ok {
				return false, evidence
			}
			evidence["license_source"] = source
			found := hasTemplatePlaceholders(content)
			evidence["has_placeholders"] = found
			return found, evidence
		},
	}
}

var (
	licenseFileName = regexp.MustCompile(`(?i)^(license|licence|copying|copyright)(\.[a-z0-9]+)?$`)
	docFileName     = regexp.MustCompile(`(?i)^[\w.-]+\.(md|txt|rst)$`)
)

// isLocalFileLicense reports whether a license value references a local file
// instead of an SPDX identifier or a license URL.
func isLocalFileLicense(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	lower := strings.ToLower(value)
	if strings.Contains(lower, "://") {
		return false
	}
	if strings.Contains(value, " ") {
		// Spaces suggest a license name, not a path
		return false
	}
	if strings.HasPrefix(value, "./") || strings.HasPrefix(value, "../") {
		return true
	}
	if strings.ContainsAny(value, `/\`) {
		return true
	}
	return licenseFileName.MatchString(value) || docFileName.MatchString(value)
}

// localFileLicense flags structured metadata whose license field points at a
// file in the repository rather than naming the license.
func localFileLicense() *check {
	return &check{
		id:       "P006",
		severity: schema.PitfallSeverity,
		desc:     "Metadata license field references a local file instead of a license",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"license_value":        nil,
				"source":               nil,
				"metadata_source_file": nil,
				"is_local_file":        false,
			}
			for _, entry := range rec.Entries(schema.AttrLicense) {
				if !provenance.FromMetadataDescriptor(entry) {
					continue
				}
				value, ok := entry.ValueString()
				if !ok || !isLocalFileLicense(value) {
					continue
				}
				source := provenance.EffectiveSource(entry)
				evidence["license_value"] = value
				evidence["source"] = source
				evidence["metadata_source_file"] = provenance.DescriptorBasename(source)
				evidence["is_local_file"] = true
				return true, evidence
			}
			return false, evidence
		},
	}
}

// licenseGrantMarkers are phrases that indicate actual license terms are
// present, not just a copyright line.
var licenseGrantMarkers = []string{
	"permission is hereby granted",
	"licensed under",
	"apache license",
	"mit license",
	"gnu general public license",
	"mozilla public license",
	"redistribution and use",
	"this is free software",
	"terms and conditions",
}

// isCopyrightOnly reports whether license text amounts to a bare copyright
// statement with no license grant.
func isCopyrightOnly(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)
	if !strings.Contains(lower, "copyright") {
		return false
	}
	for _, marker := range licenseGrantMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	// A real license text is long; a bare copyright notice is not.
	return len(trimmed) < 400
}

// copyrightOnlyLicense flags license files that hold only a copyright
// statement and grant no rights at all.
func copyrightOnlyLicense() *check {
	return &check{
		id:       "P010",
		severity: schema.PitfallSeverity,
		desc:     "License file contains only a copyright statement, no license grant",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"license_source":    nil,
				"is_copyright_only": false,
			}
			content, source, ok := licenseFileContent(rec, "license")
			if !ok {
				return false, evidence
			}
			evidence["license_source"] = source
			only := isCopyrightOnly(content)
			evidence["is_copyright_only"] = only
			return only, evidence
		},
	}
}

// versionedLicenseFamilies are license families that are meaningless without
// a version qualifier.
var versionedLicenseFamilies = []string{"GPL", "LGPL", "AGPL"}

// licenseNoVersion flags version-required license families declared without
// a version (bare "GPL" instead of "GPL-3.0").
func licenseNoVersion() *check {
	return &check{
		id:       "P013",
		severity: schema.PitfallSeverity,
		desc:     "License family requires a version but none is specified",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"license":              nil,
				"source":               nil,
				"metadata_source_file": nil,
			}
			for _, entry := range rec.Entries(schema.AttrLicense) {
				if !provenance.FromMetadataDescriptor(entry) {
					continue
				}
				value, ok := entry.ValueString()
				if !ok {
					continue
				}
				trimmed := strings.ToUpper(strings.TrimSpace(value))
				for _, family := range versionedLicenseFamilies {
					if trimmed != family {
						continue
					}
					source := provenance.EffectiveSource(entry)
					evidence["license"] = strings.TrimSpace(value)
					evidence["source"] = source
					evidence["metadata_source_file"] = provenance.DescriptorBasename(source)
					return true, evidence
				}
			}
			return false, evidence
		},
	}
}

var dualLicenseIndicators = []string{
	"dual license", "dual-license", "dual licensed", "dual-licensed",
}

// dualLicenseMissingCodemeta warns when documentation announces dual
// licensing but codemeta declares fewer than two licenses.
func dualLicenseMissingCodemeta() *check {
	return &check{
		id:       "W003",
		severity: schema.WarningSeverity,
		desc:     "Dual licensing announced but codemeta declares fewer than two licenses",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"dual_license_indicator": false,
				"dual_license_source":    nil,
				"codemeta_license_count": 0,
			}

			codemetaCount := 0
			for _, entry := range rec.Entries(schema.AttrLicense) {
				if provenance.FromCodemeta(entry) {
					if _, ok := entry.Value(); ok {
						codemetaCount++
					}
					continue
				}
				value, ok := entry.ValueString()
				if !ok {
					continue
				}
				lower := strings.ToLower(value)
				for _, indicator := range dualLicenseIndicators {
					if strings.Contains(lower, indicator) {
						evidence["dual_license_indicator"] = true
						if evidence["dual_license_source"] == nil {
							evidence["dual_license_source"] = entry.Source()
						}
						break
					}
				}
			}
			evidence["codemeta_license_count"] = codemetaCount

			indicated, _ := evidence["dual_license_indicator"].(bool)
			return indicated && codemetaCount < 2, evidence
		},
	}
}
