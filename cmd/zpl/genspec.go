package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplspec/internal/config"
	"zplspec/internal/specgen"
)

var genspecUseCache bool

func init() {
	genspecCmd.Flags().BoolVar(&genspecUseCache, "cache", true, "read/write the spec compiler's disk cache")
}

var genspecCmd = &cobra.Command{
	Use:   "genspec",
	Short: "Compile the project's spec directory into canonical runtime tables",
	Args:  cobra.NoArgs,
	RunE:  runGenspec,
}

func runGenspec(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}

	schema, err := loadSpecSchema(cfg)
	if err != nil {
		return err
	}

	artifacts, fromCache, err := compileSpecDir(cmd.Context(), cfg, schema)
	if err != nil {
		return fmt.Errorf("genspec: %w", err)
	}

	if err := specgen.WriteArtifacts(artifacts, cfg.TablesOut, cfg.ConstraintsOut, cfg.DocsOut, cfg.CoverageOut); err != nil {
		return fmt.Errorf("genspec: %w", err)
	}

	source := "compiled"
	if fromCache {
		source = "cache"
	}
	fmt.Fprintf(os.Stdout, "genspec: wrote %s (%s), %s, %s, %s [%s]\n",
		cfg.TablesOut, source, cfg.ConstraintsOut, cfg.DocsOut, cfg.CoverageOut, cfg.SpecDir)
	return nil
}

func loadSpecSchema(cfg config.Config) (specgen.Schema, error) {
	if _, err := os.Stat(cfg.SchemaFile); err != nil {
		return specgen.DefaultSchema(), nil
	}
	return specgen.LoadSchema(cfg.SchemaFile)
}

// compileSpecDir runs the spec compiler, consulting the disk cache first
// when enabled; it returns whether the result was served from cache.
func compileSpecDir(ctx context.Context, cfg config.Config, schema specgen.Schema) (specgen.Artifacts, bool, error) {
	if !genspecUseCache {
		_, artifacts, err := specgen.Compile(ctx, cfg.SpecDir, schema)
		return artifacts, false, err
	}

	cache, err := specgen.OpenDiskCache(cfg.CacheDir)
	if err != nil {
		return specgen.Artifacts{}, false, err
	}
	hash, err := specgen.HashSpecDir(cfg.SpecDir)
	if err != nil {
		return specgen.Artifacts{}, false, err
	}
	if payload, ok, err := cache.Get(hash); err == nil && ok {
		var coverage specgen.CoverageReport
		if unmarshalErr := json.Unmarshal(payload.CoverageJSON, &coverage); unmarshalErr != nil {
			return specgen.Artifacts{}, false, fmt.Errorf("corrupt cached coverage report: %w", unmarshalErr)
		}
		return specgen.Artifacts{
			TablesJSON:      payload.TablesJSON,
			ConstraintsJSON: payload.ConstraintsJSON,
			DocsJSON:        payload.DocsJSON,
			Coverage:        coverage,
		}, true, nil
	}

	_, artifacts, err := specgen.Compile(ctx, cfg.SpecDir, schema)
	if err != nil {
		return specgen.Artifacts{}, false, err
	}
	_ = cache.Put(hash, artifacts)
	return artifacts, false, nil
}
