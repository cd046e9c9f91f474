// Package core runs the check catalog over metadata records and aggregates
// batch results.
package core

import (
	"context"
	"fmt"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// EvaluateRecord applies every catalog rule to one record, in catalog order.
// A rule that panics is isolated: it contributes a clean finding carrying
// the failure in its evidence, and the remaining rules still run.
func EvaluateRecord(ctx context.Context, catalog []contract.Rule, rec schema.MetadataRecord, fileName string) []schema.Finding {
	findings := make([]schema.Finding, 0, len(catalog))
	for _, rule := range catalog {
		findings = append(findings, evaluateSafely(ctx, rule, rec, fileName))
	}
	return findings
}

func evaluateSafely(ctx context.Context, rule contract.Rule, rec schema.MetadataRecord, fileName string) (finding schema.Finding) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("check %s panicked on %s: %v", rule.ID(), fileName, r)
			contract.LogWarn("Check evaluation failed", err)
			finding = schema.Finding{
				CheckID:     rule.ID(),
				Severity:    rule.Severity(),
				Description: rule.Description(),
				HasIssue:    false,
				FileName:    fileName,
				Evidence:    map[string]any{"evaluation_error": err.Error()},
			}
		}
	}()
	return rule.Evaluate(ctx, rec, fileName)
}
