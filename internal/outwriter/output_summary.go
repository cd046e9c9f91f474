package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// WriteSummaryReport outputs the aggregate batch report, dispatching based
// on the output format configured.
func WriteSummaryReport(report *schema.BatchReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSummaryJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSVResults(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.SummaryFile, func(w io.Writer) error {
			return writeSummaryTable(report, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryJSONResults handles opening the file and calling the JSON writer.
func writeSummaryJSONResults(report *schema.BatchReport, cfg *contract.Config) error {
	return writeWithFile(cfg.SummaryFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON")
}

// writeSummaryCSVResults handles opening the file and calling the CSV writer.
func writeSummaryCSVResults(report *schema.BatchReport, cfg *contract.Config) error {
	header := []string{
		"check_id",
		"severity",
		"description",
		"count_triggered",
		"total_repos",
		"percentage",
	}
	return writeWithFile(cfg.SummaryFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, stat := range report.Aggregate {
				rec := []string{
					stat.CheckID,
					contract.GetPlainLabel(stat.Severity),
					stat.Description,
					strconv.Itoa(stat.CountTriggered),
					strconv.Itoa(stat.TotalRepos),
					fmt.Sprintf("%.2f", stat.Percentage),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeSummaryTable generates and writes the human-readable table.
func writeSummaryTable(report *schema.BatchReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Check", "Severity", "Triggered", "Total", "Percent", "Description"})
	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	maxDescWidth := getMaxDescriptionWidth()
	var data [][]string
	for _, stat := range report.Aggregate {
		label := contract.GetPlainLabel(stat.Severity)
		if cfg.UseColors {
			label = contract.GetColorLabel(stat.Severity, stat.CountTriggered)
		}
		data = append(data, []string{
			stat.CheckID,
			label,
			strconv.Itoa(stat.CountTriggered),
			strconv.Itoa(stat.TotalRepos),
			fmt.Sprintf("%.2f%%", stat.Percentage),
			truncateText(stat.Description, maxDescWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Evaluated %d repositories (%d skipped)\n", report.TotalRepos, report.Skipped); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Evaluation completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
