// Package config loads zplspec.toml, the project-level manifest that points
// the spec compiler and CLI at a spec directory, schema file, output
// artifact paths, and an optional default printer profile.
package config

import "strings"

// Config is the decoded shape of zplspec.toml. Every field has a built-in
// default (see Default); a loaded file only needs to set what it wants to
// override.
type Config struct {
	// SpecDir is the directory of per-command spec files consumed by the
	// offline spec compiler (component C).
	SpecDir string `toml:"spec_dir"`
	// SchemaFile describes the permissible shape of a spec file.
	SchemaFile string `toml:"schema_file"`

	// TablesOut is where the canonical runtime parser tables are written.
	TablesOut string `toml:"tables_out"`
	// ConstraintsOut is where the tooling constraints bundle is written.
	ConstraintsOut string `toml:"constraints_out"`
	// DocsOut is where the tooling docs bundle is written.
	DocsOut string `toml:"docs_out"`
	// CoverageOut is where the present/missing field coverage report is
	// written.
	CoverageOut string `toml:"coverage_out"`

	// CacheDir holds the spec compiler's content-hash-keyed disk cache.
	CacheDir string `toml:"cache_dir"`

	// ProfilePath, if set, names a default printer profile document loaded
	// by commands that don't receive an explicit --profile flag.
	ProfilePath string `toml:"profile"`

	// MaxDiagnostics bounds how many diagnostics a CLI invocation reports
	// before truncating (0 means not set: WithDefaults replaces it with the
	// default).
	MaxDiagnostics int `toml:"max_diagnostics"`

	// Color is decoded from the file (nil means "not set in the file"), but
	// the CLI does not consult it: colored output is chosen by the --color
	// flag alone, whose auto mode uses terminal detection.
	Color *bool `toml:"color"`
}

// Default returns the built-in configuration used when zplspec.toml is
// absent, or to fill in fields a found file leaves unset.
func Default() Config {
	return Config{
		SpecDir:        "specs",
		SchemaFile:     "specs/schema.json",
		TablesOut:      "build/tables.json",
		ConstraintsOut: "build/constraints.json",
		DocsOut:        "build/docs.json",
		CoverageOut:    "build/coverage.json",
		CacheDir:       ".zplcache",
		MaxDiagnostics: 100,
	}
}

// WithDefaults fills every zero-value field of c from defaults, returning
// the merged result. c is left unmodified.
func (c Config) WithDefaults(defaults Config) Config {
	merged := c
	if strings.TrimSpace(merged.SpecDir) == "" {
		merged.SpecDir = defaults.SpecDir
	}
	if strings.TrimSpace(merged.SchemaFile) == "" {
		merged.SchemaFile = defaults.SchemaFile
	}
	if strings.TrimSpace(merged.TablesOut) == "" {
		merged.TablesOut = defaults.TablesOut
	}
	if strings.TrimSpace(merged.ConstraintsOut) == "" {
		merged.ConstraintsOut = defaults.ConstraintsOut
	}
	if strings.TrimSpace(merged.DocsOut) == "" {
		merged.DocsOut = defaults.DocsOut
	}
	if strings.TrimSpace(merged.CoverageOut) == "" {
		merged.CoverageOut = defaults.CoverageOut
	}
	if strings.TrimSpace(merged.CacheDir) == "" {
		merged.CacheDir = defaults.CacheDir
	}
	if strings.TrimSpace(merged.ProfilePath) == "" {
		merged.ProfilePath = defaults.ProfilePath
	}
	if merged.MaxDiagnostics == 0 {
		merged.MaxDiagnostics = defaults.MaxDiagnostics
	}
	if merged.Color == nil {
		merged.Color = defaults.Color
	}
	return merged
}

// ResolveString applies CLI-flag > config-value > built-in-default
// precedence for a single string setting. flag is the value a CLI flag was
// explicitly set to ("" means the flag was not passed).
func ResolveString(flag, configValue, fallback string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	if strings.TrimSpace(configValue) != "" {
		return configValue
	}
	return fallback
}

// ResolveInt applies CLI-flag > config-value > built-in-default precedence
// for a single integer setting. flagSet reports whether the CLI flag was
// explicitly passed, since 0 is a valid flag value distinct from "absent".
func ResolveInt(flag int, flagSet bool, configValue, fallback int) int {
	if flagSet {
		return flag
	}
	if configValue != 0 {
		return configValue
	}
	return fallback
}
