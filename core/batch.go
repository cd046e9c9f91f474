package core

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/internal/recordio"
	"github.com/oeg-upm/metacheck/schema"
)

type repoJob struct {
	index int
	path  string
}

// RunBatch evaluates the full check catalog over every input record and
// folds the per-repository findings into an aggregate report. Records that
// fail to load are skipped with a warning; the batch fails only when not a
// single record is loadable.
func RunBatch(ctx context.Context, cfg *contract.Config, catalog []contract.Rule, source contract.RecordSource, mgr contract.StoreManager) (*schema.BatchReport, error) {
	files, err := recordio.CollectInputFiles(cfg.Inputs)
	if err != nil {
		return nil, err
	}

	var runID int64
	var resultsStore contract.ResultsStore
	if mgr != nil {
		resultsStore = mgr.GetResultsStore()
	}
	if resultsStore != nil {
		configParams := map[string]any{
			"inputs":      len(files),
			"workers":     cfg.Workers,
			"skip_probes": cfg.SkipProbes,
		}
		runID, err = resultsStore.BeginRun(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	results := evaluateAll(ctx, cfg, catalog, source, files)

	loaded := 0
	for _, r := range results {
		if !r.Skipped {
			loaded++
		}
	}
	if loaded == 0 {
		return nil, errors.New("no metadata records could be loaded")
	}

	if resultsStore != nil && runID > 0 {
		for _, r := range results {
			for _, finding := range r.Findings {
				if err := resultsStore.RecordFinding(runID, finding); err != nil {
					contract.LogWarn("Finding persistence failed", err)
				}
			}
		}
		if err := resultsStore.EndRun(runID, time.Now(), loaded); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	if cfg.FindingsDir != "" {
		for _, r := range results {
			if r.Skipped {
				continue
			}
			if _, err := recordio.WriteFindingsDoc(cfg.FindingsDir, r); err != nil {
				contract.LogWarn("Findings document write failed", err)
			}
		}
	}

	return &schema.BatchReport{
		Results:    results,
		Aggregate:  Aggregate(catalog, results),
		TotalRepos: loaded,
		Skipped:    len(results) - loaded,
	}, nil
}

// evaluateAll fans the input files out over a bounded worker pool and
// returns the per-repository results in input order.
func evaluateAll(ctx context.Context, cfg *contract.Config, catalog []contract.Rule, source contract.RecordSource, files []string) []schema.RepoResult {
	jobCh := make(chan repoJob, len(files))
	results := make([]schema.RepoResult, len(files))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for job := range jobCh {
				results[job.index] = evaluateOne(ctx, catalog, source, job.path)
			}
		})
	}

	for i, path := range files {
		jobCh <- repoJob{index: i, path: path}
	}
	close(jobCh)
	wg.Wait()

	return results
}

func evaluateOne(ctx context.Context, catalog []contract.Rule, source contract.RecordSource, path string) schema.RepoResult {
	rec, err := source.Load(path)
	if err != nil {
		contract.LogWarn("Skipping unreadable record", err)
		return schema.RepoResult{
			FileName:   path,
			Skipped:    true,
			SkipReason: err.Error(),
		}
	}
	return schema.RepoResult{
		FileName: path,
		Findings: EvaluateRecord(ctx, catalog, rec, path),
	}
}

// Aggregate counts how often each check triggered across the loaded
// repositories. Percentages are over loaded repositories only, rounded to
// two decimals.
func Aggregate(catalog []contract.Rule, results []schema.RepoResult) []schema.AggregateStat {
	total := 0
	triggered := make(map[string]int, len(catalog))
	for _, r := range results {
		if r.Skipped {
			continue
		}
		total++
		for _, finding := range r.Findings {
			if finding.HasIssue {
				triggered[finding.CheckID]++
			}
		}
	}

	stats := make([]schema.AggregateStat, 0, len(catalog))
	for _, rule := range catalog {
		count := triggered[rule.ID()]
		var pct float64
		if total > 0 {
			pct = math.Round(float64(count)/float64(total)*100*100) / 100
		}
		stats = append(stats, schema.AggregateStat{
			CheckID:        rule.ID(),
			Severity:       rule.Severity(),
			Description:    rule.Description(),
			CountTriggered: count,
			TotalRepos:     total,
			Percentage:     pct,
		})
	}
	return stats
}
