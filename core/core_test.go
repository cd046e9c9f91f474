package core

import (
	"context"

	"github.com/oeg-upm/metacheck/schema"
)

// fakeRule is a minimal catalog rule for orchestration tests. trigger
// decides per record whether the issue fires.
type fakeRule struct {
	id       string
	severity schema.Severity
	trigger  func(rec schema.MetadataRecord) bool
	panics   bool
}

func (r *fakeRule) ID() string                { return r.id }
func (r *fakeRule) Severity() schema.Severity { return r.severity }
func (r *fakeRule) Description() string       { return "fake rule " + r.id }

func (r *fakeRule) Evaluate(_ context.Context, rec schema.MetadataRecord, fileName string) schema.Finding {
	if r.panics {
		panic("boom")
	}
	hasIssue := false
	if r.trigger != nil {
		hasIssue = r.trigger(rec)
	}
	return schema.Finding{
		CheckID:     r.id,
		Severity:    r.severity,
		Description: r.Description(),
		HasIssue:    hasIssue,
		FileName:    fileName,
		Evidence:    map[string]any{},
	}
}

func alwaysTrigger(schema.MetadataRecord) bool { return true }

func triggerWhenFlagged(rec schema.MetadataRecord) bool {
	flagged, _ := rec["flagged"].(bool)
	return flagged
}
