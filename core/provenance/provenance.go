// Package provenance locates extraction entries by their source-file or
// technique provenance. Resolution is first-match in extraction order; the
// harvester assigns no confidence ordering, so no entry is assumed "best".
package provenance

import (
	"path"
	"strings"

	"github.com/oeg-upm/metacheck/schema"
)

// Predicate decides whether an entry qualifies for a rule.
type Predicate func(schema.ExtractionEntry) bool

// Find scans the attribute's entry list in extraction order and returns the
// first entry satisfying pred. The second return is false when the attribute
// is absent, not a list, or nothing matches; that is a normal value, not an
// error.
func Find(rec schema.MetadataRecord, attribute string, pred Predicate) (schema.ExtractionEntry, bool) {
	for _, entry := range rec.Entries(attribute) {
		if pred(entry) {
			return entry, true
		}
	}
	return nil, false
}

// FindAll returns every qualifying entry in extraction order. Used by the
// few collector rules that aggregate instead of stopping at the first match.
func FindAll(rec schema.MetadataRecord, attribute string, pred Predicate) []schema.ExtractionEntry {
	var out []schema.ExtractionEntry
	for _, entry := range rec.Entries(attribute) {
		if pred(entry) {
			out = append(out, entry)
		}
	}
	return out
}

// HasValue accepts entries whose result carries a value field.
func HasValue(e schema.ExtractionEntry) bool {
	_, ok := e.Value()
	return ok
}

// SourceContains matches the source string case-insensitively. Substring
// matching, not path parsing: harvester path formats vary between absolute,
// relative and bare filenames.
func SourceContains(fragment string) Predicate {
	frag := strings.ToLower(fragment)
	return func(e schema.ExtractionEntry) bool {
		return strings.Contains(strings.ToLower(e.Source()), frag)
	}
}

// Technique matches the technique label exactly.
func Technique(name string) Predicate {
	return func(e schema.ExtractionEntry) bool {
		return e.Technique() == name
	}
}

// EffectiveSource returns the entry's source string, falling back to the
// nested result.source some harvesters emit instead.
func EffectiveSource(e schema.ExtractionEntry) string {
	if s := e.Source(); s != "" {
		return s
	}
	s, _ := e.ResultString("source")
	return s
}

// FromMetadataDescriptor accepts entries coming from a recognized
// structured-metadata descriptor: either the code_parser technique, a
// technique named after a descriptor, or a descriptor filename appearing in
// the (effective) source string.
func FromMetadataDescriptor(e schema.ExtractionEntry) bool {
	technique := e.Technique()
	if technique == schema.TechniqueCodeParser {
		return true
	}
	source := strings.ToLower(EffectiveSource(e))
	for _, name := range schema.MetadataDescriptors {
		if technique == name || strings.Contains(source, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// FromAPI accepts entries derived from a repository hosting API.
func FromAPI(e schema.ExtractionEntry) bool {
	t := e.Technique()
	return t == schema.TechniqueGitHubAPI || t == schema.TechniqueGitLabAPI
}

// FromCodemeta accepts entries sourced from codemeta.json, either by source
// path or by the code_parser technique pointed at a codemeta file.
func FromCodemeta(e schema.ExtractionEntry) bool {
	source := strings.ToLower(e.Source())
	if strings.Contains(source, "codemeta.json") {
		return true
	}
	return e.Technique() == schema.TechniqueCodeParser && strings.Contains(source, "codemeta")
}

// And combines predicates; all must match.
func And(preds ...Predicate) Predicate {
	return func(e schema.ExtractionEntry) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Not inverts a predicate.
func Not(pred Predicate) Predicate {
	return func(e schema.ExtractionEntry) bool {
		return !pred(e)
	}
}

// DescriptorBasename extracts the descriptor filename from a source path,
// e.g. "repository/codemeta.json" -> "codemeta.json". Falls back to the
// path basename when no known descriptor matches.
func DescriptorBasename(source string) string {
	lower := strings.ToLower(source)
	for _, name := range schema.MetadataDescriptors {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name
		}
	}
	if source == "" {
		return ""
	}
	return path.Base(strings.ReplaceAll(source, "\\", "/"))
}
