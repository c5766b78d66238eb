package format

import (
	"errors"

	"zplspec/internal/ast"
	"zplspec/internal/diag"
	"zplspec/internal/parser"
	"zplspec/internal/source"
	"zplspec/internal/tables"
	"zplspec/internal/token"
)

// Format renders doc back into normalized ZPL text. sf is the source.File
// doc was parsed from — needed to recover ^GF raw-payload bytes and ^FX
// comment text, neither of which the Ast retains inline. tbl is the
// command table doc was validated against, if any; a nil table falls
// every command back to the format prefix and skips field-scoped
// indent/compaction (there is no OpensField/ClosesField to consult).
func Format(doc *ast.Ast, sf *source.File, tbl *tables.ParserTables, opt Options) (string, error) {
	if doc == nil {
		return "", errors.New("format: nil ast")
	}
	opt = opt.withDefaults()
	p := &printer{
		doc:           doc,
		tbl:           tbl,
		opt:           opt,
		w:             NewWriter(sf, opt),
		prefixFormat:  '^',
		prefixControl: '~',
		delim:         ',',
	}
	p.run()
	return string(p.w.Bytes()), nil
}

type printer struct {
	doc *ast.Ast
	tbl *tables.ParserTables
	opt Options
	w   *Writer

	fieldIndentLevel int

	// Device-mutable state, persisted across labels the same way a
	// physical printer's session state is: ^CC/~CC, ^CT/~CT and ^CD/~CD
	// change these for all subsequent commands, not just the label they
	// appear in.
	prefixFormat  byte
	prefixControl byte
	delim         byte
}

func (p *printer) run() {
	for _, label := range p.doc.Labels {
		p.printLabel(label)
	}
}

func (p *printer) printLabel(label ast.Label) {
	if !label.Implicit {
		if p.opt.Indent != IndentNone {
			p.w.IndentPush()
		}
		p.w.WriteString("^XA")
		p.w.Newline()
	}

	nodes := p.doc.LabelNodes(label)
	inField := false
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if n == nil {
			continue
		}
		switch n.Kind {
		case ast.NodeTrivia:
			p.printTrivia(n)
		case ast.NodeCommand:
			entry, known := p.lookup(n.Code)
			opensNow := known && entry.OpensField
			closesNow := known && entry.ClosesField

			p.setFieldIndent(inField || opensNow)
			p.printCommand(entry, known, n)

			if known && (entry.FieldData || entry.RawPayload) && i+1 < len(nodes) {
				if follower := nodes[i+1]; follower != nil &&
					(follower.Kind == ast.NodeFieldData || follower.Kind == ast.NodeRawData) {
					p.printPayload(follower)
					i++
				}
			}

			p.applyDeviceEffects(entry, known, n)

			if opensNow {
				inField = true
			}
			if closesNow {
				inField = false
			}
			p.endOfCommand(inField)
		case ast.NodeFieldData, ast.NodeRawData:
			// A payload not consumed above (e.g. one stranded by a parse
			// error recovering mid-field) still gets copied so no bytes
			// are silently dropped.
			p.printPayload(n)
		}
	}

	if !label.Implicit {
		p.setFieldIndent(false)
		if p.opt.Indent != IndentNone {
			p.w.IndentPop()
		}
		if !label.Unclosed {
			p.w.WriteString("^XZ")
			p.w.Newline()
		}
	}
}

// setFieldIndent pushes or pops the writer's indent level to match
// whether the cursor is inside an open field, only when IndentField asks
// for the extra nesting.
func (p *printer) setFieldIndent(inField bool) {
	want := 0
	if inField && p.opt.Indent == IndentField {
		want = 1
	}
	if want == p.fieldIndentLevel {
		return
	}
	if want > p.fieldIndentLevel {
		p.w.IndentPush()
	} else {
		p.w.IndentPop()
	}
	p.fieldIndentLevel = want
}

func (p *printer) lookup(code string) (*tables.CommandEntry, bool) {
	if p.tbl == nil {
		return nil, false
	}
	return p.tbl.Lookup(code)
}

// printCommand writes one command's prefix, opcode and argument list.
func (p *printer) printCommand(entry *tables.CommandEntry, known bool, n *ast.Node) {
	prefix := p.prefixFormat
	if known && entry.Category == "control" {
		prefix = p.prefixControl
	}
	p.w.WriteByte(prefix)
	p.w.WriteString(n.Code)
	args := n.Args
	if known && entry.SplitRule != nil {
		// Sub-fields a split_rule carved out of one glued slot are
		// written back glued, with no delimiter between them.
		at, w := entry.SplitRule.ParamIndex, len(entry.SplitRule.Widths)
		if at >= 0 && at+w <= len(args) {
			glued := ast.ArgSlot{Key: args[at].Key, Presence: ast.Missing}
			for _, s := range args[at : at+w] {
				if s.Presence == ast.Present {
					glued.Value += s.Value
					glued.Presence = ast.Present
				}
			}
			args = append(append(append([]ast.ArgSlot{}, args[:at]...), glued), args[at+w:]...)
		}
	}
	p.w.WriteString(renderArgs(args, p.delim))
}

// renderArgs joins slot values with delim, dropping any run of trailing
// Missing slots (canonical minimal form) and rendering an Empty slot as
// nothing between delimiters.
func renderArgs(args []ast.ArgSlot, delim byte) string {
	last := len(args) - 1
	for last >= 0 && args[last].Presence == ast.Missing {
		last--
	}
	if last < 0 {
		return ""
	}
	out := make([]byte, 0, 16)
	for i := 0; i <= last; i++ {
		if i > 0 {
			out = append(out, delim)
		}
		if args[i].Presence == ast.Present {
			out = append(out, args[i].Value...)
		}
	}
	return string(out)
}

// printPayload emits a FieldData or RawData node glued directly to its
// owning command: the lexer captures these as a literal run with no
// delimiter, so inserting any whitespace here would become part of the
// payload on re-parse.
func (p *printer) printPayload(n *ast.Node) {
	switch n.Kind {
	case ast.NodeFieldData:
		p.w.WriteString(n.Content)
	case ast.NodeRawData:
		p.w.CopySpan(n.Span)
	}
}

// printTrivia preserves a ^FX comment's literal text per the configured
// comment_placement; plain whitespace/newline trivia is dropped, since
// the printer regenerates all inter-command spacing itself.
func (p *printer) printTrivia(n *ast.Node) {
	if n.TriviaKind != token.TriviaLineComment {
		return
	}
	if p.opt.CommentPlacement == CommentLine {
		p.w.Newline()
		p.w.CopySpan(n.Span)
		p.w.Newline()
		return
	}
	p.w.Space()
	p.w.CopySpan(n.Span)
}

// applyDeviceEffects mirrors internal/validate's device-state tracking so
// later commands render with whatever prefix/delimiter is active at that
// point in the stream.
func (p *printer) applyDeviceEffects(entry *tables.CommandEntry, known bool, n *ast.Node) {
	if !known {
		return
	}
	if entry.ChangesFormatPrefix {
		if c, ok := firstArgByte(n); ok {
			p.prefixFormat = c
		}
	}
	if entry.ChangesControlPrefix {
		if c, ok := firstArgByte(n); ok {
			p.prefixControl = c
		}
	}
	if entry.ChangesDelimiter {
		if c, ok := firstArgByte(n); ok {
			p.delim = c
		}
	}
}

func firstArgByte(n *ast.Node) (byte, bool) {
	if len(n.Args) == 0 || n.Args[0].Presence != ast.Present || len(n.Args[0].Value) != 1 {
		return 0, false
	}
	return n.Args[0].Value[0], true
}

// endOfCommand decides whether the line breaks after the command just
// printed, per compaction: CompactionField keeps a run of in-field
// commands on one line.
func (p *printer) endOfCommand(inField bool) {
	if p.opt.Compaction == CompactionField && inField {
		return
	}
	p.w.Newline()
}

// CheckRoundTrip formats sf's already-parsed doc with opt, re-parses the
// result against tbl, and reports whether the two command sequences
// match — the testable round-trip property (structural equivalence after
// stripping trivia spans).
func CheckRoundTrip(sf *source.File, tbl *tables.ParserTables, doc *ast.Ast, opt Options, maxDiag int) (ok bool, msg string) {
	out, err := Format(doc, sf, tbl, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	fs2 := source.NewFileSetWithBase("")
	fid := fs2.AddVirtual(sf.Path, []byte(out))
	rebuiltFile := fs2.Get(fid)
	newBag := diag.NewBag(maxDiag)
	newDoc := parser.New(rebuiltFile, parser.Options{Reporter: &diag.BagReporter{Bag: newBag}, Tables: tbl}).Parse()
	if newBag.HasErrors() {
		return false, "fmt-check: reparse failed"
	}

	if !sameCommandSequence(doc, newDoc) {
		return false, "fmt-check: command sequence differs after round-trip"
	}
	return true, "fmt-check: OK"
}

func sameCommandSequence(a, b *ast.Ast) bool {
	ac := commandCodes(a)
	bc := commandCodes(b)
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if ac[i] != bc[i] {
			return false
		}
	}
	return true
}

func commandCodes(a *ast.Ast) []string {
	var out []string
	for _, label := range a.Labels {
		for _, n := range a.LabelNodes(label) {
			if n != nil && n.Kind == ast.NodeCommand {
				out = append(out, n.Code)
			}
		}
	}
	return out
}
