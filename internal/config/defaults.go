package config

import (
	"github.com/ariel-frischer/relkit/internal/bump"
	"github.com/ariel-frischer/relkit/internal/changelog"
)

// DefaultTagMessageFormat is the non-interactive fallback for the annotated
// tag message. It is deliberately not a config default: an empty configured
// message triggers the interactive prompt when stdin is a terminal.
const DefaultTagMessageFormat = "Release {version}"

// GetDefaults returns the built-in default configuration values.
// Keys use koanf dot notation.
func GetDefaults() map[string]any {
	return map[string]any{
		"path": ".",

		"bump.conventional_bump_mapping": bump.DefaultMapping,

		"changelog.to_ref":                    "HEAD",
		"changelog.commit_format":             changelog.DefaultCommitFormat,
		"changelog.changelog_format":          changelog.DefaultChangelogFormat,
		"changelog.conventional_type_mapping": changelog.DefaultTypeMapping,
	}
}
