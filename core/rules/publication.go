package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/oeg-upm/metacheck/core/provenance"
	"github.com/oeg-upm/metacheck/schema"
)

// archivePatterns identify software archive or release links that do not
// qualify as reference publications.
var archivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)zenodo\.org`),
	regexp.MustCompile(`(?i)figshare\.com`),
	regexp.MustCompile(`(?i)github\.com/.*/releases`),
	regexp.MustCompile(`(?i)sourceforge\.net`),
	regexp.MustCompile(`(?i)archive\.org`),
	regexp.MustCompile(`(?i)codeocean\.com`),
	regexp.MustCompile(`(?i)osf\.io`),
	regexp.MustCompile(`(?i)doi\.org/10\.5281`),
}

// isSoftwareArchive reports whether a reference looks like a software
// archive or release page rather than a publication.
func isSoftwareArchive(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	for _, pattern := range archivePatterns {
		if pattern.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// referencePublicationArchive flags a reference_publication that cites a
// software archive instead of an actual paper.
func referencePublicationArchive() *check {
	return &check{
		id:       "P005",
		severity: schema.PitfallSeverity,
		desc:     "Reference publication cites a software archive instead of a paper",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"reference_value": nil,
				"source":          nil,
				"is_archive":      false,
			}
			for _, entry := range rec.Entries(schema.AttrReferencePublication) {
				value, ok := entry.ValueString()
				if !ok || !isSoftwareArchive(value) {
					continue
				}
				evidence["reference_value"] = value
				evidence["source"] = entry.Source()
				evidence["is_archive"] = true
				return true, evidence
			}
			return false, evidence
		},
	}
}

// citationAttributes are attributes whose presence in CITATION.cff proves
// the file exists in the record.
var citationAttributes = []string{
	schema.AttrAuthors, "title", "description", schema.AttrVersion, schema.AttrLicense,
}

// citationFileExists reports whether any common attribute was extracted from
// a CITATION.cff file.
func citationFileExists(rec schema.MetadataRecord) bool {
	for _, attr := range citationAttributes {
		if _, ok := provenance.Find(rec, attr, provenance.SourceContains("citation.cff")); ok {
			return true
		}
	}
	return false
}

// citationMissingReferencePublication flags repositories whose codemeta
// declares a reference publication that the CITATION.cff omits.
func citationMissingReferencePublication() *check {
	return &check{
		id:       "P007",
		severity: schema.PitfallSeverity,
		desc:     "CITATION.cff omits the reference publication declared in codemeta",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"codemeta_has_reference":     false,
				"codemeta_reference":         nil,
				"citation_cff_exists":        false,
				"citation_cff_has_reference": false,
			}

			codemetaRef, hasCodemetaRef := provenance.Find(rec, schema.AttrReferencePublication,
				provenance.And(provenance.FromCodemeta, provenance.HasValue))
			evidence["codemeta_has_reference"] = hasCodemetaRef
			if !hasCodemetaRef {
				return false, evidence
			}
			if ref, ok := codemetaRef.ValueString(); ok {
				evidence["codemeta_reference"] = ref
			}

			cffExists := citationFileExists(rec)
			evidence["citation_cff_exists"] = cffExists
			if !cffExists {
				return false, evidence
			}

			_, cffHasRef := provenance.Find(rec, schema.AttrReferencePublication,
				provenance.SourceContains("citation.cff"))
			evidence["citation_cff_has_reference"] = cffHasRef
			return !cffHasRef, evidence
		},
	}
}
