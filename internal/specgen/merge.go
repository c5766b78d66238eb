package specgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"zplspec/internal/tables"
)

// SchemaVersion is embedded in every compiled tables document's
// schema_version field, identifying the spec-file shape this build of
// the compiler understands (distinct from tables.FormatVersion, which
// versions the emitted wire document itself).
const SchemaVersion = "zplspec-spec/1"

type tablesDoc struct {
	SchemaVersion string        `json:"schema_version"`
	FormatVersion string        `json:"format_version"`
	Commands      []SpecCommand `json:"commands"`
}

// specFileGlobs match per-command spec files; both plain JSON and
// comment-bearing JSONC extensions are accepted since StripComments is a
// no-op on files with no comments.
var specFileGlobs = []string{"*.json", "*.jsonc"}

// listSpecFiles returns every spec file under dir, sorted for
// determinism ahead of the (also order-independent) concurrent parse.
func listSpecFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range specFileGlobs {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("specgen: glob %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// Compile runs the full offline spec compiler pipeline: parse every spec
// file under specDir concurrently (errgroup.Group), validate each
// against schema and its own cross-field rules, merge the results with
// cross-command validation, check for constraint-kind drift between the
// schema and internal/tables' code-level enum, assign stable indices in
// command-name order, and emit all four artifacts.
func Compile(ctx context.Context, specDir string, schema Schema) (*tables.ParserTables, Artifacts, error) {
	files, err := listSpecFiles(specDir)
	if err != nil {
		return nil, Artifacts{}, err
	}
	if len(files) == 0 {
		return nil, Artifacts{}, fmt.Errorf("specgen: no spec files found under %q", specDir)
	}

	if drift := ConstraintKindDrift(schema); len(drift) > 0 {
		return nil, Artifacts{}, &Error{Kind: ErrConstraintKindDrift, Path: specDir, Msg: fmt.Sprintf("constraint kind drift: %v", drift)}
	}

	cmds := make([]SpecCommand, len(files))
	fileErrs := make([][]*Error, len(files))

	g, _ := errgroup.WithContext(ctx)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			cmd, errs := LoadSpecFile(path, schema)
			cmds[i] = cmd
			fileErrs[i] = errs
			return nil
		})
	}
	// Parse errors are collected rather than short-circuited via the
	// errgroup's own error path, so one malformed file doesn't hide
	// sibling files' violations from the report.
	_ = g.Wait()

	var allErrs []*Error
	for _, errs := range fileErrs {
		allErrs = append(allErrs, errs...)
	}
	if len(allErrs) > 0 {
		return nil, Artifacts{}, combineErrors(allErrs)
	}

	if crossErrs := validateCrossCommand(cmds); len(crossErrs) > 0 {
		return nil, Artifacts{}, combineErrors(crossErrs)
	}

	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

	doc := tablesDoc{SchemaVersion: SchemaVersion, FormatVersion: tables.FormatVersion, Commands: cmds}
	tablesJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, Artifacts{}, fmt.Errorf("specgen: failed to marshal tables document: %w", err)
	}

	// Round-trip through tables.LoadBytes so the compiler exercises the
	// exact decode path every downstream consumer uses.
	compiled, err := tables.LoadBytes(tablesJSON)
	if err != nil {
		return nil, Artifacts{}, fmt.Errorf("specgen: compiled tables document failed to load: %w", err)
	}

	constraintsJSON, err := buildConstraintsBundle(cmds)
	if err != nil {
		return nil, Artifacts{}, err
	}
	docsJSON, err := buildDocsBundle(cmds)
	if err != nil {
		return nil, Artifacts{}, err
	}
	coverage := buildCoverageReport(cmds)

	artifacts := Artifacts{
		TablesJSON:      tablesJSON,
		ConstraintsJSON: constraintsJSON,
		DocsJSON:        docsJSON,
		Coverage:        coverage,
	}
	return compiled, artifacts, nil
}

// combineErrors joins multiple *Error values into a single error value
// for reporting; Compile's early returns mean no caller needs the
// individual *Error values once compilation has failed.
func combineErrors(errs []*Error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msg := fmt.Sprintf("%d spec errors:", len(errs))
	for _, e := range errs {
		msg += "\n  " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

// WriteArtifacts writes the four compiled artifacts to the paths named
// by a loaded internal/config.Config (tables/constraints/docs/coverage
// out paths).
func WriteArtifacts(a Artifacts, tablesOut, constraintsOut, docsOut, coverageOut string) error {
	coverageJSON, err := json.MarshalIndent(a.Coverage, "", "  ")
	if err != nil {
		return fmt.Errorf("specgen: failed to marshal coverage report: %w", err)
	}
	writes := []struct {
		path string
		data []byte
	}{
		{tablesOut, a.TablesJSON},
		{constraintsOut, a.ConstraintsJSON},
		{docsOut, a.DocsJSON},
		{coverageOut, coverageJSON},
	}
	for _, w := range writes {
		if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
			return fmt.Errorf("specgen: failed to create directory for %q: %w", w.path, err)
		}
		if err := os.WriteFile(w.path, w.data, 0o644); err != nil {
			return fmt.Errorf("specgen: failed to write %q: %w", w.path, err)
		}
	}
	return nil
}
