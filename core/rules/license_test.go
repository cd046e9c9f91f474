package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oeg-upm/metacheck/schema"
)

func TestHasTemplatePlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"year placeholder", "Copyright <year> <name of author>", true},
		{"yyyy placeholder", "Copyright <yyyy> Some Person", true},
		{"bracket fullname", "Copyright [fullname]", true},
		{"bracket year", "Copyright (c) [year] [name]", true},
		{"filled license", "Copyright (c) 2024 Jane Smith", false},
		{"name suffix is not a placeholder", "Copyright (c) 2024 John Smith, Jr.", false},
		{"markdown link survives", "See [the docs](https://example.org)", false},
		{"html tag without keyword", "<p>MIT License</p>", false},
		{"empty content", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasTemplatePlaceholders(tt.content))
		})
	}
}

func TestLicenseTemplatePlaceholders(t *testing.T) {
	t.Run("unfilled template triggers", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("LICENSE.md", "", val("MIT License\n\nCopyright <year> <name of copyright holder>")),
			},
		})
		finding := run(t, licenseTemplatePlaceholders(), rec)
		assert.Equal(t, "P002", finding.CheckID)
		assert.True(t, finding.HasIssue)
		assert.Equal(t, "LICENSE.md", finding.Evidence["license_source"])
	})

	t.Run("filled template is clean", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("LICENSE.md", "", val("MIT License\n\nCopyright (c) 2024 Jane Smith")),
			},
		})
		finding := run(t, licenseTemplatePlaceholders(), rec)
		assert.False(t, finding.HasIssue)
	})

	t.Run("plain LICENSE file is out of scope", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("LICENSE", "", val("Copyright <year> <name>")),
			},
		})
		finding := run(t, licenseTemplatePlaceholders(), rec)
		assert.False(t, finding.HasIssue)
	})
}

func TestIsLocalFileLicense(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"./LICENSE", true},          // relative path
		{"../LICENSE.txt", true},     // parent path
		{"docs/LICENSE", true},       // nested path
		{"LICENSE", true},            // canonical filename
		{"LICENSE.md", true},         // canonical filename with extension
		{"COPYING", true},            // GNU convention
		{"license.rst", true},        // doc extension
		{"MIT", false},               // SPDX identifier
		{"Apache-2.0", false},        // SPDX identifier
		{"https://opensource.org/licenses/MIT", false}, // URL
		{"MIT License", false},       // spaced license name
		{"", false},                  // empty
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, isLocalFileLicense(tt.value))
		})
	}
}

func TestLocalFileLicense(t *testing.T) {
	t.Run("descriptor pointing at local file triggers", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("package.json", schema.TechniqueCodeParser, val("./LICENSE")),
			},
		})
		finding := run(t, localFileLicense(), rec)
		assert.Equal(t, "P006", finding.CheckID)
		assert.True(t, finding.HasIssue)
		assert.Equal(t, "package.json", finding.Evidence["metadata_source_file"])
	})

	t.Run("spdx identifier is clean", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("package.json", schema.TechniqueCodeParser, val("Apache-2.0")),
			},
		})
		finding := run(t, localFileLicense(), rec)
		assert.False(t, finding.HasIssue)
	})

	t.Run("non-descriptor entries ignored", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("", schema.TechniqueGitHubAPI, val("./LICENSE")),
			},
		})
		finding := run(t, localFileLicense(), rec)
		assert.False(t, finding.HasIssue)
	})
}

func TestIsCopyrightOnly(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"bare copyright line", "Copyright (c) 2024 Jane Smith. All rights reserved.", true},
		{"copyright with grant", "Copyright (c) 2024 Jane Smith\n\nPermission is hereby granted, free of charge...", false},
		{"named license", "Copyright 2024\nLicensed under the Apache License, Version 2.0", false},
		{"no copyright at all", "This project is public domain.", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCopyrightOnly(tt.content))
		})
	}
}

func TestCopyrightOnlyLicense(t *testing.T) {
	t.Run("copyright-only file triggers", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("LICENSE", "", val("Copyright (c) 2024 ACME Corp. All rights reserved.")),
			},
		})
		finding := run(t, copyrightOnlyLicense(), rec)
		assert.Equal(t, "P010", finding.CheckID)
		assert.True(t, finding.HasIssue)
	})

	t.Run("full license text is clean", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("LICENSE", "", val("MIT License\n\nCopyright (c) 2024 ACME\n\nPermission is hereby granted...")),
			},
		})
		finding := run(t, copyrightOnlyLicense(), rec)
		assert.False(t, finding.HasIssue)
	})
}

func TestLicenseNoVersion(t *testing.T) {
	tests := []struct {
		name    string
		license string
		trigger bool
	}{
		{"bare GPL", "GPL", true},
		{"bare LGPL", "LGPL", true},
		{"bare AGPL lowercase", "agpl", true},
		{"versioned GPL", "GPL-3.0", false},
		{"versioned spelled out", "GPL-2.0-or-later", false},
		{"MIT never needs a version", "MIT", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record(map[string][]any{
				schema.AttrLicense: {
					entry("setup.py", schema.TechniqueCodeParser, val(tt.license)),
				},
			})
			finding := run(t, licenseNoVersion(), rec)
			assert.Equal(t, "P013", finding.CheckID)
			assert.Equal(t, tt.trigger, finding.HasIssue)
		})
	}
}

func TestDualLicenseMissingCodemeta(t *testing.T) {
	t.Run("announced dual license with one codemeta license", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("README.md", "", val("This project is dual-licensed under MIT and Apache-2.0.")),
				entry("codemeta.json", schema.TechniqueCodeParser, val("MIT")),
			},
		})
		finding := run(t, dualLicenseMissingCodemeta(), rec)
		assert.Equal(t, "W003", finding.CheckID)
		assert.True(t, finding.HasIssue)
		assert.Equal(t, 1, finding.Evidence["codemeta_license_count"])
	})

	t.Run("dual license fully declared", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("README.md", "", val("Dual licensed under MIT and Apache-2.0.")),
				entry("codemeta.json", schema.TechniqueCodeParser, val("MIT")),
				entry("codemeta.json", schema.TechniqueCodeParser, val("Apache-2.0")),
			},
		})
		finding := run(t, dualLicenseMissingCodemeta(), rec)
		assert.False(t, finding.HasIssue)
	})

	t.Run("no dual license language", func(t *testing.T) {
		rec := record(map[string][]any{
			schema.AttrLicense: {
				entry("README.md", "", val("Licensed under MIT.")),
				entry("codemeta.json", schema.TechniqueCodeParser, val("MIT")),
			},
		})
		finding := run(t, dualLicenseMissingCodemeta(), rec)
		assert.False(t, finding.HasIssue)
	})
}
