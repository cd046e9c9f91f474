package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// WriteCatalogListing outputs the check catalog, dispatching based on the
// output format configured.
func WriteCatalogListing(rules []contract.Rule, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.SummaryFile, func(w io.Writer) error {
			return writeJSON(w, catalogRenderModel(rules))
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"check_id", "severity", "description"}
		return writeWithFile(cfg.SummaryFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, rule := range rules {
					rec := []string{rule.ID(), contract.GetPlainLabel(rule.Severity()), rule.Description()}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.SummaryFile, func(w io.Writer) error {
			return writeCatalogTable(rules, w)
		}, "Wrote table")
	}
}

type catalogEntry struct {
	CheckID     string `json:"check_id"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

func catalogRenderModel(rules []contract.Rule) []catalogEntry {
	entries := make([]catalogEntry, 0, len(rules))
	for _, rule := range rules {
		entries = append(entries, catalogEntry{
			CheckID:     rule.ID(),
			Severity:    string(rule.Severity()),
			Description: rule.Description(),
		})
	}
	return entries
}

func writeCatalogTable(rules []contract.Rule, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Check", "Severity", "Description"})

	maxDescWidth := getMaxDescriptionWidth()
	var data [][]string
	for _, rule := range rules {
		data = append(data, []string{
			rule.ID(),
			contract.GetPlainLabel(rule.Severity()),
			truncateText(rule.Description(), maxDescWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "%d checks in catalog\n", len(rules)); err != nil {
		return err
	}
	return nil
}
