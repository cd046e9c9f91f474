package core

import (
	"context"
	"time"

	"github.com/oeg-upm/metacheck/core/rules"
	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/internal/outwriter"
	"github.com/oeg-upm/metacheck/internal/recordio"
)

// ExecuteBatchEvaluation runs the check catalog over the configured inputs
// and writes the aggregate summary in the configured output format.
func ExecuteBatchEvaluation(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	catalog := rules.Catalog(BuildProber(cfg, mgr))
	report, err := RunBatch(ctx, cfg, catalog, recordio.Loader{}, mgr)
	if err != nil {
		return err
	}

	return outwriter.NewOutWriter().WriteSummary(report, cfg, time.Since(start))
}

// ExecuteCatalogListing prints the check catalog in the configured output
// format.
func ExecuteCatalogListing(cfg *contract.Config, mgr contract.StoreManager) error {
	catalog := rules.Catalog(BuildProber(cfg, mgr))
	return outwriter.NewOutWriter().WriteCatalog(catalog, cfg)
}
