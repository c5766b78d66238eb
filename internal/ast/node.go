package ast

import (
	"zplspec/internal/source"
	"zplspec/internal/token"
)

// NodeKind discriminates the payload carried by a Node. The set is
// expected to grow (additional data-bearing variants for future command
// families); consumers must switch on Kind with a default case rather
// than assume these four are exhaustive.
type NodeKind uint8

const (
	// NodeCommand is a recognized or opaque command: a prefix byte, an
	// opcode, and its (possibly empty) argument list.
	NodeCommand NodeKind = iota
	// NodeFieldData is the literal text of a ^FD/^FV field, before
	// hex-escape decoding.
	NodeFieldData
	// NodeRawData is the payload bytes of a data-carrying command (e.g.
	// ^GF), which may span multiple physical chunks.
	NodeRawData
	// NodeTrivia is whitespace or a ^FX comment, preserved for formatting
	// and round-trip fidelity but ignored by validation.
	NodeTrivia
)

func (k NodeKind) String() string {
	switch k {
	case NodeCommand:
		return "Command"
	case NodeFieldData:
		return "FieldData"
	case NodeRawData:
		return "RawData"
	case NodeTrivia:
		return "Trivia"
	default:
		return "Unknown"
	}
}

// Presence distinguishes an argument slot that was never reached (Missing)
// from one that was reached but held nothing between two delimiters
// (Empty), from one that carried text (Present). The validator treats
// Missing and Empty differently: allowEmptyTrailing governs only the
// former.
type Presence uint8

const (
	// Missing means the command's argument list ended before this slot
	// was reached.
	Missing Presence = iota
	// Empty means the slot was reached — there was a delimiter marking
	// its position — but it held no text.
	Empty
	// Present means the slot held non-empty text.
	Present
)

func (p Presence) String() string {
	switch p {
	case Missing:
		return "Missing"
	case Empty:
		return "Empty"
	case Present:
		return "Present"
	default:
		return "Unknown"
	}
}

// ArgSlot is one positional (or, after split_rule expansion, composite)
// argument of a Command node.
type ArgSlot struct {
	// Key names the parameter per the command's signature, when known
	// (e.g. "font", "orientation"); empty for an opaque/unknown command
	// whose arguments are kept only as raw text.
	Key string
	// Presence is Missing/Empty/Present; see the type doc.
	Presence Presence
	// Value is the slot's raw text. Empty for Missing and Empty slots.
	Value string
	// Span covers the slot's text; zero-width (at the delimiter) for
	// Missing and Empty slots.
	Span source.Span
}

// Node is ZPL's tagged-union AST element. Exactly one of the payload
// groups below is meaningful, selected by Kind:
//
//   - NodeCommand:   Code, Args
//   - NodeFieldData: Content, HexEscaped
//   - NodeRawData:   (Span only; payload bytes are not retained past
//     validation, consumers re-slice the source by Span)
//   - NodeTrivia:    TriviaKind
type Node struct {
	Kind NodeKind
	Span source.Span

	// Code is the command's opcode text (e.g. "FO", "A0"), set only when
	// Kind == NodeCommand. Unknown commands still carry their matched
	// opcode text here; the parser never invents one.
	Code string
	// Args holds the command's parsed argument slots, set only when
	// Kind == NodeCommand. An opaque (unrecognized) command has at most
	// one slot: the full remaining argument text, untyped.
	Args []ArgSlot

	// Content is the field's literal text, set only when
	// Kind == NodeFieldData.
	Content string
	// HexEscaped reports whether Content should be decoded through the
	// enclosing ^FH indicator rather than taken verbatim.
	HexEscaped bool

	// TriviaKind classifies the whitespace/comment span, set only when
	// Kind == NodeTrivia.
	TriviaKind token.TriviaKind
}

// Arg returns the slot for key, and whether one was found.
func (n *Node) Arg(key string) (ArgSlot, bool) {
	for _, a := range n.Args {
		if a.Key == key {
			return a, true
		}
	}
	return ArgSlot{}, false
}
