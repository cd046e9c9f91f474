package schema

// Severity classifies a check: a pitfall is a definite defect, a warning a
// softer advisory signal. Both share the same finding contract.
type Severity string

// Severity values.
const (
	PitfallSeverity Severity = "pitfall"
	WarningSeverity Severity = "warning"
)

// DatabaseBackend identifies a durable storage backend.
type DatabaseBackend string

// Supported database backends.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidDatabaseBackends enumerates the accepted backend values.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// OutputMode identifies an output format for the batch summary.
type OutputMode string

// Supported output modes.
const (
	TextOut OutputMode = "text"
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// MetadataDescriptors is the fixed set of recognized structured-metadata
// descriptor files. Rules use it to tell machine-readable provenance apart
// from free-text documentation. Matching is case-insensitive substring
// matching against the source string because harvester path formats vary.
var MetadataDescriptors = []string{
	"codemeta.json",
	"DESCRIPTION",
	"composer.json",
	"package.json",
	"pom.xml",
	"pyproject.toml",
	"requirements.txt",
	"setup.py",
}

// Harvester technique labels the rules recognize.
const (
	TechniqueCodeParser = "code_parser"
	TechniqueGitHubAPI  = "GitHub_API"
	TechniqueGitLabAPI  = "GitLab_API"
)

// Record attribute names consumed by the catalog.
const (
	AttrVersion               = "version"
	AttrLicense               = "license"
	AttrAuthors               = "authors"
	AttrReleases              = "releases"
	AttrCodeRepository        = "code_repository"
	AttrIdentifier            = "identifier"
	AttrReadmeURL             = "readme_url"
	AttrReferencePublication  = "reference_publication"
	AttrRequirements          = "requirements"
	AttrIssueTracker          = "issue_tracker"
	AttrDownloadURL           = "download_url"
	AttrContinuousIntegration = "continuous_integration"
	AttrDateUpdated           = "date_updated"
	AttrProgrammingLanguages  = "programming_languages"
	AttrDevelopmentStatus     = "development_status"
)
