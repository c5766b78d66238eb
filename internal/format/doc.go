// Package format renders a parsed internal/ast.Ast back into normalized
// ZPL text: label/field-aware indentation, command/line compaction, and
// comment placement, all mechanical given a correct AST (SPEC_FULL.md's
// emitter is interface-level only). Spans the Ast itself doesn't retain
// content for — ^GF raw payload bytes, ^FX comment text — are copied
// verbatim from the source.File the Ast was parsed from.
package format
