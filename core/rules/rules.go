// Package rules holds the metadata quality check catalog. Every check is a
// fail-open pure function over one MetadataRecord: malformed or missing data
// yields a clean finding, never an error. Pattern tables are deliberately
// heuristic; known false-positive risks are noted per rule.
package rules

import (
	"context"
	"strings"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// check implements contract.Rule by delegating to an evaluation closure.
// The closure returns whether the issue was demonstrated plus the evidence
// map; the map must carry the check's full field set, nulled when
// inapplicable.
type check struct {
	id       string
	severity schema.Severity
	desc     string
	eval     func(ctx context.Context, rec schema.MetadataRecord) (bool, map[string]any)
}

var _ contract.Rule = &check{} // Compile-time check

func (c *check) ID() string                { return c.id }
func (c *check) Severity() schema.Severity { return c.severity }
func (c *check) Description() string       { return c.desc }

func (c *check) Evaluate(ctx context.Context, rec schema.MetadataRecord, fileName string) schema.Finding {
	hasIssue, evidence := c.eval(ctx, rec)
	return schema.Finding{
		CheckID:     c.id,
		Severity:    c.severity,
		Description: c.desc,
		HasIssue:    hasIssue,
		FileName:    fileName,
		Evidence:    evidence,
	}
}

// NormalizeVersion trims whitespace and strips a leading v/V when a digit
// follows it. Idempotent: NormalizeVersion(NormalizeVersion(x)) ==
// NormalizeVersion(x). Comparison stays normalized-string equality, never
// SemVer-aware ordering.
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if len(version) > 1 && (version[0] == 'v' || version[0] == 'V') && version[1] >= '0' && version[1] <= '9' {
		version = version[1:]
	}
	return version
}

// NormalizeRepositoryURL canonicalizes a repository URL for comparison:
// lowercase, git+ prefix stripped, SSH shorthand rewritten to HTTPS, .git
// suffix and trailing slash removed. Empty input normalizes to "".
func NormalizeRepositoryURL(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if u == "" {
		return ""
	}
	u = strings.TrimPrefix(u, "git+")
	if rest, ok := strings.CutPrefix(u, "git@"); ok {
		u = "https://" + strings.Replace(rest, ":", "/", 1)
	}
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, ".git")
	return strings.TrimSuffix(u, "/")
}
