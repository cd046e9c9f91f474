package rules

import (
	"context"
	"regexp"

	"github.com/oeg-upm/metacheck/core/provenance"
	"github.com/oeg-upm/metacheck/schema"
)

// structuredVersion resolves the first version value harvested from a
// structured-metadata descriptor, with its effective source.
func structuredVersion(rec schema.MetadataRecord) (version, source string, ok bool) {
	entry, found := provenance.Find(rec, schema.AttrVersion,
		provenance.And(provenance.FromMetadataDescriptor, provenance.HasValue))
	if !found {
		return "", "", false
	}
	v, isStr := entry.ValueString()
	if !isStr || v == "" {
		return "", "", false
	}
	return v, provenance.EffectiveSource(entry), true
}

// latestReleaseTag resolves the tag of the most recent release entry; the
// harvester emits releases newest first.
func latestReleaseTag(rec schema.MetadataRecord) (string, bool) {
	for _, entry := range rec.Entries(schema.AttrReleases) {
		if tag, ok := schema.AsString(entry["tag"]); ok && tag != "" {
			return tag, true
		}
		if tag, ok := entry.ResultString("tag"); ok && tag != "" {
			return tag, true
		}
	}
	return "", false
}

// versionMismatch flags repositories whose declared metadata version differs
// from the latest release tag after normalization.
func versionMismatch() *check {
	return &check{
		id:       "P001",
		severity: schema.PitfallSeverity,
		desc:     "Declared metadata version differs from the latest release tag",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"metadata_version":            nil,
				"metadata_source":             nil,
				"release_version":             nil,
				"normalized_metadata_version": nil,
				"normalized_release_version":  nil,
			}

			version, source, ok := structuredVersion(rec)
			if !ok {
				return false, evidence
			}
			tag, ok := latestReleaseTag(rec)
			if !ok {
				return false, evidence
			}

			normVersion := NormalizeVersion(version)
			normTag := NormalizeVersion(tag)
			evidence["metadata_version"] = version
			evidence["metadata_source"] = source
			evidence["release_version"] = tag
			evidence["normalized_metadata_version"] = normVersion
			evidence["normalized_release_version"] = normTag

			return normVersion != "" && normTag != "" && normVersion != normTag, evidence
		},
	}
}

// downloadVersionPatterns extract a version embedded in a download URL, most
// specific first.
var downloadVersionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/archive/v?(\d+(?:\.\d+)+(?:[.-][0-9a-zA-Z]+)*)\.(?:tar\.gz|zip|tar\.bz2)`),
	regexp.MustCompile(`[-_]v?(\d+(?:\.\d+)+(?:[.-][0-9a-zA-Z]+)*)\.(?:tar\.gz|zip|tar\.bz2)`),
	regexp.MustCompile(`/v?(\d+(?:\.\d+)+(?:[.-][0-9a-zA-Z]+)*)/`),
}

func versionFromDownloadURL(url string) string {
	for _, pat := range downloadVersionPatterns {
		if m := pat.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// outdatedDownloadURL flags download URLs pinned to a version older than the
// latest release.
func outdatedDownloadURL() *check {
	return &check{
		id:       "P012",
		severity: schema.PitfallSeverity,
		desc:     "Download URL is pinned to a version that differs from the latest release",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"download_url":               nil,
				"url_version":                nil,
				"release_version":            nil,
				"normalized_url_version":     nil,
				"normalized_release_version": nil,
			}

			tag, ok := latestReleaseTag(rec)
			if !ok {
				return false, evidence
			}
			normTag := NormalizeVersion(tag)

			for _, entry := range rec.Entries(schema.AttrDownloadURL) {
				url, ok := entry.ValueString()
				if !ok || url == "" {
					continue
				}
				urlVersion := versionFromDownloadURL(url)
				if urlVersion == "" {
					continue
				}
				normURL := NormalizeVersion(urlVersion)
				evidence["download_url"] = url
				evidence["url_version"] = urlVersion
				evidence["release_version"] = tag
				evidence["normalized_url_version"] = normURL
				evidence["normalized_release_version"] = normTag
				if normURL != normTag {
					return true, evidence
				}
				return false, evidence
			}
			return false, evidence
		},
	}
}

// codemetaVersionMismatch compares the codemeta version against every other
// structured-metadata version. Collector rule: all mismatches are reported,
// not just the first.
func codemetaVersionMismatch() *check {
	return &check{
		id:       "P017",
		severity: schema.PitfallSeverity,
		desc:     "codemeta.json version differs from other metadata descriptor versions",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"codemeta_version":    nil,
				"other_versions":      []map[string]any{},
				"mismatched_versions": []map[string]any{},
			}

			entry, found := provenance.Find(rec, schema.AttrVersion,
				provenance.And(provenance.FromCodemeta, provenance.HasValue))
			if !found {
				return false, evidence
			}
			codemetaVersion, ok := entry.ValueString()
			if !ok || codemetaVersion == "" {
				return false, evidence
			}
			evidence["codemeta_version"] = codemetaVersion
			normCodemeta := NormalizeVersion(codemetaVersion)

			others := provenance.FindAll(rec, schema.AttrVersion, provenance.And(
				provenance.FromMetadataDescriptor,
				provenance.Not(provenance.FromCodemeta),
				provenance.HasValue,
			))

			otherVersions := []map[string]any{}
			mismatched := []map[string]any{}
			for _, other := range others {
				v, ok := other.ValueString()
				if !ok || v == "" {
					continue
				}
				item := map[string]any{
					"source":  provenance.EffectiveSource(other),
					"version": v,
				}
				otherVersions = append(otherVersions, item)
				if NormalizeVersion(v) != normCodemeta {
					mismatched = append(mismatched, item)
				}
			}
			evidence["other_versions"] = otherVersions
			evidence["mismatched_versions"] = mismatched

			return len(mismatched) > 0, evidence
		},
	}
}
