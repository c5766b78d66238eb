// Package parser drives internal/lexer with a loaded command table to
// build an internal/ast.Ast: it resolves glued opcodes, splits argument
// text into signature slots with tri-state presence, tracks label
// (^XA/^XZ) and field (^FO.../^FS) boundaries, and applies runtime prefix
// and delimiter changes (^CC/~CC/^CT/~CT/^CD/~CD) to the lexer as soon as
// they take effect.
package parser

import (
	"zplspec/internal/ast"
	"zplspec/internal/diag"
	"zplspec/internal/lexer"
	"zplspec/internal/source"
	"zplspec/internal/tables"
	"zplspec/internal/token"
)

// Options configures a Parser.
type Options struct {
	Reporter diag.Reporter
	Tables   *tables.ParserTables
}

// Parser consumes a token stream and assembles an Ast, consulting Tables
// for each opcode's signature and structural role.
type Parser struct {
	lx   *lexer.Lexer
	b    *ast.Builder
	opts Options
}

// New creates a Parser reading file through a fresh Lexer wired with
// opts.Tables' opcode trie (if any).
func New(file *source.File, opts Options) *Parser {
	var matcher lexer.OpcodeMatcher
	if opts.Tables != nil {
		matcher = opts.Tables.Trie()
	}
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter, Matcher: matcher})
	return &Parser{lx: lx, b: ast.NewBuilder(ast.Hints{}), opts: opts}
}

// Parse consumes the entire token stream and returns the assembled Ast.
func (p *Parser) Parse() *ast.Ast {
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			break
		}
		p.parseOne(tok)
	}
	p.finishLabels()
	return p.b.Finish()
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	}
}

// finishLabels extends a still-open label's span out to EOF without
// closing it — it stays Unclosed for the validator to diagnose
// (SemaLabelUnclosed), but its Nodes and Span correctly include whatever
// trailing content came before end of input.
func (p *Parser) finishLabels() {
	if p.b.IsLabelOpen() {
		p.b.ExtendOpenLabel(p.lx.EmptySpan())
	}
}

// parseOne consumes exactly one command, or recovers past exactly one
// unrecognized byte. At top level, outside any command's own argument or
// data scanning, the lexer (in ModeNormal, expecting a prefix) only ever
// produces Prefix or Invalid tokens before EOF.
func (p *Parser) parseOne(tok token.Token) {
	if tok.Kind == token.Invalid {
		p.lx.Next()
		p.attachTrivia(tok)
		return
	}
	p.parseCommand()
}

// attachTrivia wires an Invalid/error token's leading trivia into the Ast
// as Trivia nodes so formatting can still reconstruct whitespace around a
// recovered error.
func (p *Parser) attachTrivia(tok token.Token) {
	for _, tr := range tok.Leading {
		id := p.b.NewTrivia(tr.Kind, tr.Span)
		p.ensureLabelOpen(tr.Span)
		p.b.PushNode(id)
	}
}

// ensureLabelOpen opens an implicit label if none is currently open, so
// content outside any ^XA/^XZ pair still lands somewhere.
func (p *Parser) ensureLabelOpen(sp source.Span) {
	if !p.b.IsLabelOpen() {
		p.b.OpenLabel(sp, true)
	}
}

func (p *Parser) parseCommand() {
	prefixTok := p.lx.Next()
	p.attachTrivia(prefixTok)

	opTok := p.lx.Peek()
	if opTok.Kind != token.Opcode {
		// Lexer already reported SynExpectedOpcode; nothing to build.
		p.lx.Next()
		return
	}
	opTok = p.lx.Next()
	opcode := opTok.Text

	switch opcode {
	case "XA":
		p.startLabel(prefixTok.Span.Cover(opTok.Span))
		p.skipArgs()
		return
	case "XZ":
		p.b.CloseLabel(opTok.Span)
		p.skipArgs()
		return
	}

	p.ensureLabelOpen(prefixTok.Span)

	entry, known := p.lookup(opcode)

	// A FieldData command (^FD/^FV) takes no comma-delimited argument
	// list of its own: everything up to the next command boundary is the
	// field's literal text, so the lexer must switch to ModeFieldData
	// before the generic arg scanner ever runs, or it would swallow that
	// text as one giant ArgBlob.
	if known && entry.FieldData {
		full := prefixTok.Span.Cover(opTok.Span)
		id := p.b.NewCommand(opcode, nil, full)
		p.b.PushNode(id)
		p.parseFieldData(entry)
		return
	}

	args, argsSpan := p.parseArgs(entry)
	full := prefixTok.Span.Cover(opTok.Span)
	if argsSpan != (source.Span{}) {
		full = full.Cover(argsSpan)
	}

	id := p.b.NewCommand(opcode, args, full)
	p.b.PushNode(id)

	if !known {
		return
	}
	p.applyStructuralEffects(entry, args)
}

func (p *Parser) startLabel(sp source.Span) {
	if p.b.IsLabelOpen() {
		if p.b.OpenLabelIsImplicit() {
			// An implicit label only exists to hold stray content found
			// before the first real ^XA; a genuine label start closes it
			// silently rather than flagging nesting.
			p.b.CloseLabel(sp)
		} else {
			p.report(diag.SynNestedLabelStart, diag.SevError, sp, "^XA encountered while a label is already open")
			p.b.CloseLabel(sp)
		}
	}
	p.b.OpenLabel(sp, false)
}

func (p *Parser) lookup(opcode string) (*tables.CommandEntry, bool) {
	if p.opts.Tables == nil {
		return nil, false
	}
	return p.opts.Tables.Lookup(opcode)
}

// parseArgs consumes the command's ArgBlob/Comma token run, splitting it
// into signature slots (or, for an unrecognized command, a single opaque
// slot holding the raw text). Presence is derived from token adjacency:
// two Commas back-to-back (or a Comma immediately after the opcode, or a
// boundary immediately after a Comma) mark an Empty slot; a slot never
// reached because the command ended first is Missing.
func (p *Parser) parseArgs(entry *tables.CommandEntry) ([]ast.ArgSlot, source.Span) {
	raw := p.collectRawSlots()
	if len(raw) == 0 {
		return nil, source.Span{}
	}
	span := raw[0].span
	for _, r := range raw[1:] {
		span = span.Cover(r.span)
	}

	if entry == nil {
		// Opaque command: keep the full argument text as one slot.
		full := raw[0].span.Cover(raw[len(raw)-1].span)
		text := ""
		for _, r := range raw {
			text += r.text
		}
		return []ast.ArgSlot{{Presence: p.presenceOf(raw[0]), Value: text, Span: full}}, span
	}

	slots := p.splitSignature(entry, raw)
	return slots, span
}

type rawSlot struct {
	text    string
	span    source.Span
	empty   bool // an Empty slot: reached (delimiter-bounded) but no text
}

func (p *Parser) presenceOf(r rawSlot) ast.Presence {
	if r.empty {
		return ast.Empty
	}
	return ast.Present
}

// collectRawSlots consumes ArgBlob/Comma tokens until the next command
// boundary or EOF, returning one rawSlot per argument position (including
// Empty ones between adjacent commas).
func (p *Parser) collectRawSlots() []rawSlot {
	var slots []rawSlot
	sawAny := false
	lastWasComma := false
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.ArgBlob:
			p.lx.Next()
			slots = append(slots, rawSlot{text: tok.Text, span: tok.Span})
			sawAny = true
			lastWasComma = false
		case token.Comma:
			p.lx.Next()
			if !sawAny || lastWasComma {
				slots = append(slots, rawSlot{span: tok.Span, empty: true})
			}
			sawAny = true
			lastWasComma = true
		default:
			if lastWasComma {
				slots = append(slots, rawSlot{span: tok.Span, empty: true})
			}
			return slots
		}
	}
}

// splitSignature maps raw argument slots onto entry's signature params,
// applying a split_rule expansion to any composite slot it covers.
func (p *Parser) splitSignature(entry *tables.CommandEntry, raw []rawSlot) []ast.ArgSlot {
	params := entry.Signature.Params
	out := make([]ast.ArgSlot, 0, len(params))

	rawIdx := 0
	for paramIdx := 0; paramIdx < len(params); paramIdx++ {
		param := params[paramIdx]

		if entry.SplitRule != nil && paramIdx == entry.SplitRule.ParamIndex {
			var src rawSlot
			if rawIdx < len(raw) {
				src = raw[rawIdx]
				rawIdx++
			} else {
				src = rawSlot{empty: false}
			}
			out = append(out, p.expandSplit(entry.SplitRule, params[paramIdx:], src)...)
			paramIdx += len(entry.SplitRule.Widths) - 1
			continue
		}

		if rawIdx >= len(raw) {
			out = append(out, ast.ArgSlot{Key: param.Key, Presence: ast.Missing})
			continue
		}
		src := raw[rawIdx]
		rawIdx++
		out = append(out, ast.ArgSlot{Key: param.Key, Presence: p.presenceOf(src), Value: src.text, Span: src.span})
	}

	// Any raw slots beyond the declared params are kept as trailing,
	// keyless overflow; the validator reports SemaTooManyArgs.
	for ; rawIdx < len(raw); rawIdx++ {
		src := raw[rawIdx]
		out = append(out, ast.ArgSlot{Presence: p.presenceOf(src), Value: src.text, Span: src.span})
	}
	return out
}

// expandSplit decomposes a glued composite slot (e.g. "0N" from ^A0N)
// into fixed-width sub-fields by character count, one ArgSlot per
// declared width, keyed from params in signature-declaration order.
func (p *Parser) expandSplit(rule *tables.SplitRule, params []tables.Arg, src rawSlot) []ast.ArgSlot {
	out := make([]ast.ArgSlot, 0, len(rule.Widths))
	text := src.text
	offset := uint32(0)
	if !src.span.Empty() {
		offset = src.span.Start
	}
	pos := 0
	for i, w := range rule.Widths {
		key := ""
		if i < len(params) {
			key = params[i].Key
		}
		end := pos + w
		if end > len(text) {
			end = len(text)
		}
		if pos >= len(text) {
			out = append(out, ast.ArgSlot{Key: key, Presence: ast.Missing})
			continue
		}
		val := text[pos:end]
		sp := source.Span{File: src.span.File, Start: offset + uint32(pos), End: offset + uint32(end)}
		pres := ast.Present
		if val == "" {
			pres = ast.Empty
		}
		out = append(out, ast.ArgSlot{Key: key, Presence: pres, Value: val, Span: sp})
		pos = end
	}
	return out
}

// skipArgs discards ^XA/^XZ's argument list (neither takes one in
// practice, but a malformed stream might still carry trailing commas).
func (p *Parser) skipArgs() {
	p.collectRawSlots()
}

// applyStructuralEffects drives mode switches and prefix/delimiter
// changes that take effect the moment this command's arguments are
// parsed, per the loaded table's structural flags.
func (p *Parser) applyStructuralEffects(entry *tables.CommandEntry, args []ast.ArgSlot) {
	if entry.RawPayload {
		p.parseRawPayload(entry, args)
	}

	if entry.ChangesFormatPrefix {
		if v, ok := firstArg(args); ok && len(v) == 1 {
			p.lx.SetFormatPrefix(v[0])
		}
	}
	if entry.ChangesControlPrefix {
		if v, ok := firstArg(args); ok && len(v) == 1 {
			p.lx.SetControlPrefix(v[0])
		}
	}
	if entry.ChangesDelimiter {
		if v, ok := firstArg(args); ok && len(v) == 1 {
			p.lx.SetDelimiter(v[0])
		}
	}
}

func firstArg(args []ast.ArgSlot) (string, bool) {
	if len(args) == 0 || args[0].Presence != ast.Present {
		return "", false
	}
	return args[0].Value, true
}

// parseFieldData switches the lexer into ModeFieldData to capture the
// command's payload (e.g. ^FD's text) as a single FieldData node, honoring
// the HexEscapeModifier flag set by an earlier ^FH in the same field.
func (p *Parser) parseFieldData(entry *tables.CommandEntry) {
	p.lx.SetMode(lexer.ModeFieldData)
	tok := p.lx.Next()
	if tok.Kind != token.FieldData {
		return
	}
	id := p.b.NewFieldData(tok.Text, entry.HexEscapeModifier, tok.Span)
	p.b.PushNode(id)
}

// parseRawPayload reads the declared byte-count argument (the Arg whose
// Key names the signature's length field) and switches the lexer into
// ModeRawData for exactly that many bytes.
func (p *Parser) parseRawPayload(entry *tables.CommandEntry, args []ast.ArgSlot) {
	n := rawPayloadLength(entry, args)
	p.lx.SetRawMode(n)
	tok := p.lx.Next()
	if tok.Kind != token.RawData {
		return
	}
	id := p.b.NewRawData(tok.Span)
	p.b.PushNode(id)
}

// rawPayloadLength picks the byte count to read for a RawPayload command:
// the Present slot keyed "total_bytes", or failing that "byte_count",
// whose text is an unsigned decimal number (the param's declared type is
// not consulted), defaulting to 0 (no payload captured) when absent or
// unparsable.
func rawPayloadLength(entry *tables.CommandEntry, args []ast.ArgSlot) uint32 {
	for _, want := range []string{"total_bytes", "byte_count"} {
		for i, param := range entry.Signature.Params {
			if param.Key != want || i >= len(args) {
				continue
			}
			if args[i].Presence != ast.Present {
				continue
			}
			if n, ok := parseUint(args[i].Value); ok {
				return n
			}
		}
	}
	return 0
}

func parseUint(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
		if n > 1<<32-1 {
			return 0, false
		}
	}
	return uint32(n), true
}
