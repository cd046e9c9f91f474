// Package recordio loads extracted metadata records from disk and writes
// per-repository findings documents.
package recordio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// Loader reads metadata records from JSON files on disk.
type Loader struct{}

var _ contract.RecordSource = Loader{}

// Load parses one extraction output file into a metadata record. The file
// must hold a single JSON object keyed by attribute name.
func (Loader) Load(path string) (schema.MetadataRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return schema.MetadataRecord(raw), nil
}

// CollectInputFiles expands a mix of files and directories into a sorted,
// de-duplicated list of JSON record files. Directories are scanned one
// level deep for .json entries. Inaccessible inputs stay in the list so
// the load stage can skip them individually; only an empty expansion is
// an error.
func CollectInputFiles(inputs []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			// Kept in the list so the load stage warns and skips it
			contract.LogWarn("Input is not accessible", err)
			add(input)
			continue
		}
		if !info.IsDir() {
			add(input)
			continue
		}
		entries, err := os.ReadDir(input)
		if err != nil {
			contract.LogWarn("Input directory is not readable", err)
			add(input)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
				continue
			}
			add(filepath.Join(input, entry.Name()))
		}
	}

	if len(files) == 0 {
		return nil, errors.New("no input record files found")
	}
	sort.Strings(files)
	return files, nil
}

// WriteFindingsDoc writes the findings for one repository as a JSON document
// named after its input file.
func WriteFindingsDoc(dir string, result schema.RepoResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create findings dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(result.FileName), filepath.Ext(result.FileName))
	outPath := filepath.Join(dir, base+".findings.json")

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode findings for %s: %w", result.FileName, err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}
