// Package main provides a performance benchmarking tool for the metacheck CLI.
// It measures batch evaluation times across record sets of different sizes,
// running each configuration multiple times, treating the first successful
// cached run as cold and averaging the rest as warm, and writing CSV output
// for performance analysis and documentation.
//
// Prerequisites:
// - metacheck binary installed and available in PATH
// - Extracted metadata record sets under the specified base directory,
//   one subdirectory of .json files per set
//
// Usage: go run benchmark/main.go [record-base-dir]
//
//	record-base-dir: Directory containing record set subdirectories
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of one benchmark run (no-cache average,
// cold run and average of warm runs).
type BenchmarkResult struct {
	RecordSet   string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RecordBase  string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [record-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RecordBase:  os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     8,
		NoCacheRuns: 3,
		CacheRuns:   4,
	}

	recordSets, err := collectRecordSets(config)
	if err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the probe cache so the cold run really is cold
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("metacheck", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config, recordSets)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// collectRecordSets verifies the metacheck binary exists and lists the
// record set subdirectories to benchmark.
func collectRecordSets(config BenchmarkConfig) ([]string, error) {
	if _, err := exec.LookPath("metacheck"); err != nil {
		return nil, fmt.Errorf("metacheck binary not found in PATH")
	}

	entries, err := os.ReadDir(config.RecordBase)
	if err != nil {
		return nil, fmt.Errorf("failed to read record base %s: %w", config.RecordBase, err)
	}

	var sets []string
	for _, entry := range entries {
		if entry.IsDir() {
			sets = append(sets, entry.Name())
		}
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no record set subdirectories found under %s", config.RecordBase)
	}
	return sets, nil
}

// runBenchmarks executes all benchmark tests across the record sets.
func runBenchmarks(config BenchmarkConfig, recordSets []string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d record sets, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(recordSets), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, set := range recordSets {
		fmt.Printf("Benchmarking %s\n", set)
		results = append(results, runBenchmarkSuite(config, set))
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache phases for one record set.
func runBenchmarkSuite(config BenchmarkConfig, recordSet string) BenchmarkResult {
	setPath := filepath.Join(config.RecordBase, recordSet)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, setPath, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs, every probe hits the network
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs, first fills the cache, rest reuse it
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		RecordSet:   recordSet,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes metacheck analyze multiple times with the specified
// cache backend and returns the cold time plus the warm times.
func runBenchmark(config BenchmarkConfig, setPath, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"analyze", setPath,
		"--cache-backend", cacheBackend,
		"--workers", fmt.Sprintf("%d", config.Workers),
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("metacheck", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes the benchmark results to a CSV file.
func saveResults(results []BenchmarkResult) error {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"record_set", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{r.RecordSet, r.NoCacheTime, r.ColdTime, r.WarmTime}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// printSummary prints a human-readable summary of the results.
func printSummary(results []BenchmarkResult) {
	fmt.Println("\nBenchmark summary:")
	for _, r := range results {
		fmt.Printf("  %-24s no-cache=%s cold=%s warm=%s\n",
			r.RecordSet, r.NoCacheTime, r.ColdTime, r.WarmTime)
	}
	fmt.Println("Results written to benchmark_results.csv")
}
