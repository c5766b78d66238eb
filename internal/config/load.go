package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrKind classifies a config load failure.
type ErrKind uint8

const (
	// ErrInvalidTOML means the file could not be parsed as TOML.
	ErrInvalidTOML ErrKind = iota
	// ErrNegativeMaxDiagnostics means max_diagnostics was set below zero.
	ErrNegativeMaxDiagnostics
)

// Error is a config load failure, reported out of band from the diagnostic
// bag since it describes tool misconfiguration rather than a ZPL source
// defect.
type Error struct {
	Kind ErrKind
	Path string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// FindManifest walks up from startDir looking for zplspec.toml, mirroring
// the corpus's project-manifest discovery walk.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "zplspec.toml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes zplspec.toml at path and merges it over Default().
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, &Error{Kind: ErrInvalidTOML, Path: path, Msg: fmt.Sprintf("failed to parse TOML: %v", err)}
	}
	if cfg.MaxDiagnostics < 0 {
		return Config{}, &Error{Kind: ErrNegativeMaxDiagnostics, Path: path, Msg: "max_diagnostics must not be negative"}
	}
	return cfg.WithDefaults(Default()), nil
}

// LoadFromDir finds zplspec.toml starting at startDir and loads it; when no
// manifest is found, it returns Default() with ok=false rather than an
// error, since an absent manifest is not a failure.
func LoadFromDir(startDir string) (cfg Config, ok bool, err error) {
	path, found, err := FindManifest(startDir)
	if err != nil {
		return Config{}, false, err
	}
	if !found {
		return Default(), false, nil
	}
	cfg, err = Load(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}
