package iocache

import (
	"fmt"
	"time"

	"github.com/oeg-upm/metacheck/schema"
)

// PrintCacheStatus prints probe cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	fmt.Printf("Total Entries: %d\n", status.EntryCount)
	if status.EntryCount > 0 {
		fmt.Printf("Oldest Entry: %s\n", time.Unix(status.OldestUnix, 0).Format("2006-01-02 15:04:05"))
		fmt.Printf("Newest Entry: %s\n", time.Unix(status.NewestUnix, 0).Format("2006-01-02 15:04:05"))
	}
}

// PrintResultsStatus prints results store status information.
func PrintResultsStatus(status schema.ResultsStatus) {
	fmt.Printf("Results Backend: %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	fmt.Printf("Total Runs: %d\n", status.RunCount)
	fmt.Printf("Total Findings: %d\n", status.FindingCount)
}
