// Package zpl is the public facade over the ZPL toolchain core: parsing,
// validation, formatting, and diagnostic lookup, each a thin composition
// of internal/lexer, internal/parser, internal/validate, internal/format
// and internal/diag. It deliberately carries no CLI, transport, or
// output-formatting concerns — those live in cmd/zpl.
package zpl

import (
	"zplspec/internal/ast"
	"zplspec/internal/diag"
	"zplspec/internal/format"
	"zplspec/internal/parser"
	"zplspec/internal/profile"
	"zplspec/internal/source"
	"zplspec/internal/tables"
	"zplspec/internal/validate"
)

// ParseResult bundles a parsed Ast with every diagnostic the lexer and
// parser raised while building it (unrecognized bytes, malformed
// signatures, unclosed labels and the like).
type ParseResult struct {
	Ast         *ast.Ast
	File        *source.File
	Files       *source.FileSet
	Diagnostics []*diag.Diagnostic
}

// Parse lexes and parses source against the built-in command table.
// Parse never fails on malformed input: every problem in source becomes
// a diagnostic in the result rather than an error return.
func Parse(source string) ParseResult {
	return ParseWithTables(source, tables.Builtin())
}

// ParseWithTables lexes and parses source against an explicitly loaded
// table (for example one produced by internal/specgen or loaded from a
// tables.json file), so callers can validate against a non-default
// command set.
func ParseWithTables(src string, tbl *tables.ParserTables) ParseResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.zpl", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(1 << 16)
	reporter := diag.BagReporter{Bag: bag}
	p := parser.New(file, parser.Options{Reporter: reporter, Tables: tbl})
	doc := p.Parse()

	bag.Sort()
	bag.Dedup()
	return ParseResult{Ast: doc, File: file, Files: fs, Diagnostics: bag.Items()}
}

// ValidateResult is validate.Result re-exported under the facade so
// callers never need to import internal/validate directly.
type ValidateResult = validate.Result

// Validate walks an already-parsed Ast against tbl and an optional
// profile, producing issues in source order. A nil tbl makes Validate a
// no-op success, matching internal/validate's own behavior.
func Validate(doc *ast.Ast, tbl *tables.ParserTables, prof *profile.Profile) ValidateResult {
	return validate.Validate(doc, validate.Options{Tables: tbl, Profile: prof})
}

// ValidateSource composes Parse and Validate for callers that don't need
// the intermediate Ast: parser diagnostics and validator issues are
// merged and re-sorted into one source-ordered list.
func ValidateSource(src string, tbl *tables.ParserTables, prof *profile.Profile) ValidateResult {
	parsed := ParseWithTables(src, tbl)
	res := Validate(parsed.Ast, tbl, prof)

	bag := diag.NewBag(1 << 16)
	for _, d := range parsed.Diagnostics {
		bag.Add(d)
	}
	for _, d := range res.Issues {
		bag.Add(d)
	}
	bag.Sort()
	bag.Dedup()

	return ValidateResult{
		OK:             res.OK && !bag.HasErrors(),
		Issues:         bag.Items(),
		ResolvedLabels: res.ResolvedLabels,
	}
}

// FormatOptions is format.Options re-exported under the facade.
type FormatOptions = format.Options

// Format renders a parsed Ast back into normalized ZPL text. file is the
// source.File doc was parsed from (ParseResult.File), needed to recover
// raw ^GF payload bytes and ^FX comment text. tbl should be the same
// table doc was parsed/validated against.
func Format(doc *ast.Ast, file *source.File, tbl *tables.ParserTables, opt FormatOptions) (string, error) {
	return format.Format(doc, file, tbl, opt)
}

// FormatSource parses src fresh and formats the result, for callers that
// only want normalized text and don't need the Ast or diagnostics.
func FormatSource(src string, tbl *tables.ParserTables, opt FormatOptions) (string, error) {
	parsed := ParseWithTables(src, tbl)
	return Format(parsed.Ast, parsed.File, tbl, opt)
}

// Explain looks up a diagnostic id's (e.g. "SEM3004") human-readable
// title. The second return value is false for an unregistered id.
func Explain(id string) (string, bool) {
	return diag.Explain(id)
}

// KnownDiagnostics lists every registered diagnostic id in ascending
// order, for `zpl explain --list`.
func KnownDiagnostics() []string {
	return diag.KnownCodes()
}
