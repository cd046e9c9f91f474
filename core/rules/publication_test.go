package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oeg-upm/metacheck/schema"
)

func TestIsSoftwareArchive(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"https://zenodo.org/record/1234567", true},             // Zenodo deposit
		{"https://doi.org/10.5281/zenodo.1234567", true},        // Zenodo DOI prefix
		{"https://figshare.com/articles/software/tool", true},   // figshare
		{"https://github.com/org/repo/releases/tag/v1.0", true}, // release page
		{"https://archive.org/details/tool", true},              // archive.org
		{"https://osf.io/abcde/", true},                         // OSF
		{"https://doi.org/10.1038/s41586-020-1234-5", false},    // journal DOI
		{"https://arxiv.org/abs/2101.00001", false},             // preprint
		{"Smith et al. (2021), Journal of Testing", false},      // citation text
		{"", false},                                             // empty
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, isSoftwareArchive(tt.value))
		})
	}
}

func TestReferencePublicationArchive(t *testing.T) {
	t.Run("archive reference triggers", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrReferencePublication: {
				entry("codemeta.json", schema.TechniqueCodeParser, val("https://zenodo.org/record/1234567")),
			},
		})
		finding := run(t, referencePublicationArchive(), rec)
		assert.Equal(t, "P005", finding.CheckID)
		assert.True(t, finding.HasIssue)
		assert.Equal(t, true, finding.Evidence["is_archive"])
	})

	t.Run("journal reference is clean", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrReferencePublication: {
				entry("codemeta.json", schema.TechniqueCodeParser, val("https://doi.org/10.1093/bioinformatics/btaa001")),
			},
		})
		finding := run(t, referencePublicationArchive(), rec)
		assert.False(t, finding.HasIssue)
	})
}

func TestCitationMissingReferencePublication(t *testing.T) {
	codemetaRef := entry("codemeta.json", schema.TechniqueCodeParser,
		val("https://doi.org/10.1000/paper"))

	t.Run("citation file omits the reference", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrReferencePublication: {codemetaRef},
			schema.AttrAuthors: {
				entry("CITATION.cff", schema.TechniqueCodeParser, val("Jane Smith")),
			},
		})
		finding := run(t, citationMissingReferencePublication(), rec)
		assert.Equal(t, "P007", finding.CheckID)
		assert.True(t, finding.HasIssue)
		assert.Equal(t, true, finding.Evidence["citation_cff_exists"])
		assert.Equal(t, false, finding.Evidence["citation_cff_has_reference"])
	})

	t.Run("citation file carries the reference", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrReferencePublication: {
				codemetaRef,
				entry("CITATION.cff", schema.TechniqueCodeParser, val("https://doi.org/10.1000/paper")),
			},
			schema.AttrAuthors: {
				entry("CITATION.cff", schema.TechniqueCodeParser, val("Jane Smith")),
			},
		})
		finding := run(t, citationMissingReferencePublication(), rec)
		assert.False(t, finding.HasIssue)
	})

	t.Run("no citation file at all", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrReferencePublication: {codemetaRef},
		})
		finding := run(t, citationMissingReferencePublication(), rec)
		assert.False(t, finding.HasIssue)
		assert.Equal(t, false, finding.Evidence["citation_cff_exists"])
	})

	t.Run("no codemeta reference", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrAuthors: {
				entry("CITATION.cff", schema.TechniqueCodeParser, val("Jane Smith")),
			},
		})
		finding := run(t, citationMissingReferencePublication(), rec)
		assert.False(t, finding.HasIssue)
	})

	t.Run("evidence keys are stable across outcomes", func(t *testing.T) {
		withRef := record(map[string][]any{
			schema.AttrReferencePublication: {codemetaRef},
			schema.AttrAuthors: {
				entry("CITATION.cff", schema.TechniqueCodeParser, val("Jane Smith")),
			},
		})
		withoutRef := record(map[string][]any{})

		flagged := run(t, citationMissingReferencePublication(), withRef)
		clean := run(t, citationMissingReferencePublication(), withoutRef)

		for _, key := range []string{
			"codemeta_has_reference",
			"codemeta_reference",
			"citation_cff_exists",
			"citation_cff_has_reference",
		} {
			assert.Contains(t, flagged.Evidence, key)
			assert.Contains(t, clean.Evidence, key)
		}
		assert.Equal(t, "https://doi.org/10.1000/paper", flagged.Evidence["codemeta_reference"])
		assert.Nil(t, clean.Evidence["codemeta_reference"])
	})
}
