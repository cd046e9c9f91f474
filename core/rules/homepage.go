package rules

import (
	"context"
	"strings"

	"github.com/oeg-upm/metacheck/core/provenance"
	"github.com/oeg-upm/metacheck/schema"
)

// homepageIndicators are URL fragments that suggest a project homepage or
// documentation site rather than a plain file link.
var homepageIndicators = []string{
	".readthedocs.io",
	".github.io",
	"wiki",
	"docs.",
	"documentation",
	".org",
	".com",
	".net",
}

// looksLikeHomepage reports whether a URL resembles a project homepage.
func looksLikeHomepage(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	if lower == "" {
		return false
	}
	for _, indicator := range homepageIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// readmeHomepage flags a readme_url that actually points at a homepage or
// documentation site instead of a README file.
func readmeHomepage() *check {
	return &check{
		id:       "P004",
		severity: schema.PitfallSeverity,
		desc:     "README URL points to a homepage instead of a README file",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"readme_url":  nil,
				"source":      nil,
				"is_homepage": false,
			}
			for _, entry := range rec.Entries(schema.AttrReadmeURL) {
				value, ok := entry.ValueString()
				if !ok || strings.TrimSpace(value) == "" {
					continue
				}
				lower := strings.ToLower(value)
				if strings.Contains(lower, "readme") || !looksLikeHomepage(value) {
					continue
				}
				evidence["readme_url"] = value
				evidence["source"] = entry.Source()
				evidence["is_homepage"] = true
				return true, evidence
			}
			return false, evidence
		},
	}
}

// repositoryHosts mark a URL as a source code repository. github.io is a
// pages host, not a repository, so it is checked before these.
var repositoryHosts = []string{
	"github.com/",
	"gitlab.com/",
	"bitbucket.org/",
	"sourceforge.net/projects/",
	"git.",
	".git",
}

// repoHomepageIndicators are broader than homepageIndicators: any hosted
// domain counts once repository hosts are excluded.
var repoHomepageIndicators = []string{
	".org/", ".com/", ".net/", ".io/",
	"www.", "docs.", "documentation", "readthedocs", "github.io",
}

// isHomepageNotRepository reports whether a code_repository value is a
// homepage rather than an actual repository URL.
func isHomepageNotRepository(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	if lower == "" {
		return false
	}
	if !strings.Contains(lower, "github.io") {
		for _, host := range repositoryHosts {
			if strings.Contains(lower, host) {
				return false
			}
		}
	}
	for _, indicator := range repoHomepageIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// coderepositoryHomepage flags structured metadata whose code repository
// field holds the project homepage instead of the repository.
func coderepositoryHomepage() *check {
	return &check{
		id:       "P009",
		severity: schema.PitfallSeverity,
		desc:     "Code repository field holds a homepage URL instead of a repository",
		eval: func(_ context.Context, rec schema.MetadataRecord) (bool, map[string]any) {
			evidence := map[string]any{
				"repository_url":       nil,
				"source":               nil,
				"metadata_source_file": nil,
				"is_homepage":          false,
			}
			for _, entry := range rec.Entries(schema.AttrCodeRepository) {
				if !provenance.FromMetadataDescriptor(entry) {
					continue
				}
				value, ok := entry.ValueString()
				if !ok || !isHomepageNotRepository(value) {
					continue
				}
				source := provenance.EffectiveSource(entry)
				evidence["repository_url"] = value
				evidence["source"] = source
				evidence["metadata_source_file"] = provenance.DescriptorBasename(source)
				evidence["is_homepage"] = true
				return true, evidence
			}
			return false, evidence
		},
	}
}
