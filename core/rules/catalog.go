package rules

import (
	"github.com/oeg-upm/metacheck/internal/contract"
)

// Catalog returns every check in its canonical order: pitfalls first, then
// warnings, each by ascending identifier. The prober backs the checks that
// touch the network.
func Catalog(prober contract.Prober) []contract.Rule {
	return []contract.Rule{
		versionMismatch(),
		licenseTemplatePlaceholders(),
		multipleAuthorsSingleField(),
		readmeHomepage(),
		referencePublicationArchive(),
		localFileLicense(),
		citationMissingReferencePublication(),
		invalidSoftwareRequirement(prober),
		coderepositoryHomepage(),
		copyrightOnlyLicense(),
		inaccessibleIssueTracker(prober),
		outdatedDownloadURL(),
		licenseNoVersion(),
		bareDOI(),
		brokenContinuousIntegration(prober),
		divergentRepository(),
		codemetaVersionMismatch(),
		rawSWHID(),
		unversionedRequirements(),
		outdatedDateModified(),
		dualLicenseMissingCodemeta(),
		languageNoVersion(),
		multipleRequirementsString(),
		identifierName(),
		emptyIdentifier(),
		authorNameList(),
		developmentStatusURL(),
		gitRemoteShorthand(),
	}
}
