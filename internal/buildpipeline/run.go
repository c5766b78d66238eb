package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"zplspec"
	"zplspec/internal/diag"
	"zplspec/internal/profile"
	"zplspec/internal/source"
	"zplspec/internal/tables"
)

// PrintRequest configures one batch run: every file in Files is read from
// disk, parsed, validated, and (unless SkipFormat) re-formatted, each
// independently of the others.
type PrintRequest struct {
	Files      []string
	Tables     *tables.ParserTables
	Profile    *profile.Profile
	Format     zpl.FormatOptions
	SkipFormat bool
	Jobs       int
	Progress   ProgressSink
}

// PrintResult is one file's outcome.
type PrintResult struct {
	Path      string
	OK        bool
	Issues    []*diag.Diagnostic
	Files     *source.FileSet
	Formatted string
	Err       error
}

// Run processes req.Files concurrently, bounded by req.Jobs (0 or
// negative means GOMAXPROCS), emitting a queued/working/done-or-error
// Event sequence per stage per file to req.Progress.
func Run(ctx context.Context, req PrintRequest) ([]PrintResult, error) {
	if req.Tables == nil {
		req.Tables = tables.Builtin()
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	emitQueued(req.Progress, req.Files)

	results := make([]PrintResult, len(req.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range req.Files {
		i, path := i, path
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = processFile(req, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func processFile(req PrintRequest, path string) PrintResult {
	start := time.Now()
	src, err := os.ReadFile(path) // #nosec G304 -- path is caller-supplied
	if err != nil {
		emitFile(req.Progress, path, StageParse, StatusError, err, time.Since(start))
		return PrintResult{Path: path, Err: fmt.Errorf("read %q: %w", path, err)}
	}

	emitFile(req.Progress, path, StageParse, StatusWorking, nil, 0)
	parsed := zpl.ParseWithTables(string(src), req.Tables)
	if hasErrors(parsed.Diagnostics) {
		emitFile(req.Progress, path, StageParse, StatusError, nil, time.Since(start))
		return PrintResult{Path: path, Issues: parsed.Diagnostics, Files: parsed.Files}
	}
	emitFile(req.Progress, path, StageParse, StatusDone, nil, time.Since(start))

	emitFile(req.Progress, path, StageValidate, StatusWorking, nil, 0)
	res := zpl.Validate(parsed.Ast, req.Tables, req.Profile)
	issues := append(append([]*diag.Diagnostic{}, parsed.Diagnostics...), res.Issues...)
	if !res.OK {
		emitFile(req.Progress, path, StageValidate, StatusError, nil, time.Since(start))
		return PrintResult{Path: path, Issues: issues, Files: parsed.Files}
	}
	emitFile(req.Progress, path, StageValidate, StatusDone, nil, time.Since(start))

	result := PrintResult{Path: path, OK: true, Issues: issues, Files: parsed.Files}
	if req.SkipFormat {
		return result
	}

	emitFile(req.Progress, path, StageFormat, StatusWorking, nil, 0)
	formatted, err := zpl.Format(parsed.Ast, parsed.File, req.Tables, req.Format)
	if err != nil {
		emitFile(req.Progress, path, StageFormat, StatusError, err, time.Since(start))
		result.Err = err
		result.OK = false
		return result
	}
	emitFile(req.Progress, path, StageFormat, StatusDone, nil, time.Since(start))
	result.Formatted = formatted
	return result
}

func hasErrors(items []*diag.Diagnostic) bool {
	for _, d := range items {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}
