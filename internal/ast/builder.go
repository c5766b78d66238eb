package ast

import (
	"zplspec/internal/source"
	"zplspec/internal/token"
)

// Hints provides a capacity hint for the node arena.
type Hints struct{ Nodes uint }

// Builder incrementally assembles an Ast as the parser walks the token
// stream. It owns exactly one open Label at a time; PushNode appends to
// whichever label is currently open.
type Builder struct {
	nodes  *Arena[Node]
	labels []Label

	openIdx int // index into labels of the currently open label, or -1
}

// NewBuilder creates a Builder with the given capacity hint (0 applies a
// default of 256 nodes).
func NewBuilder(hints Hints) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 8
	}
	return &Builder{
		nodes:   NewArena[Node](hints.Nodes),
		labels:  make([]Label, 0, 8),
		openIdx: -1,
	}
}

// OpenLabel starts a new Label at span and makes it the current target
// for PushNode. implicit marks a label synthesized to hold content found
// outside any ^XA/^XZ pair.
func (b *Builder) OpenLabel(span source.Span, implicit bool) LabelID {
	b.labels = append(b.labels, Label{Span: span, Implicit: implicit, Unclosed: true})
	b.openIdx = len(b.labels) - 1
	return LabelID(len(b.labels))
}

// CloseLabel marks the currently open label closed and extends its span
// to end. A no-op if no label is open.
func (b *Builder) CloseLabel(end source.Span) {
	if b.openIdx < 0 {
		return
	}
	b.labels[b.openIdx].Span = b.labels[b.openIdx].Span.Cover(end)
	b.labels[b.openIdx].Unclosed = false
	b.openIdx = -1
}

// IsLabelOpen reports whether a label is currently open for PushNode.
func (b *Builder) IsLabelOpen() bool { return b.openIdx >= 0 }

// OpenLabelIsImplicit reports whether the currently open label (if any)
// was synthesized to hold content outside any ^XA/^XZ pair, rather than
// opened by a real ^XA.
func (b *Builder) OpenLabelIsImplicit() bool {
	return b.openIdx >= 0 && b.labels[b.openIdx].Implicit
}

// ExtendOpenLabel widens the currently open label's span to cover end,
// without closing it — used at end of input to make a still-open label's
// span include its trailing content while leaving Unclosed true for the
// caller to diagnose.
func (b *Builder) ExtendOpenLabel(end source.Span) {
	if b.openIdx < 0 {
		return
	}
	b.labels[b.openIdx].Span = b.labels[b.openIdx].Span.Cover(end)
}

// NewCommand allocates a Command node and appends it to the open label.
func (b *Builder) NewCommand(code string, args []ArgSlot, span source.Span) NodeID {
	return b.push(Node{Kind: NodeCommand, Span: span, Code: code, Args: args})
}

// NewFieldData allocates a FieldData node and appends it to the open
// label.
func (b *Builder) NewFieldData(content string, hexEscaped bool, span source.Span) NodeID {
	return b.push(Node{Kind: NodeFieldData, Span: span, Content: content, HexEscaped: hexEscaped})
}

// NewRawData allocates a RawData node and appends it to the open label.
func (b *Builder) NewRawData(span source.Span) NodeID {
	return b.push(Node{Kind: NodeRawData, Span: span})
}

// NewTrivia allocates a Trivia node and appends it to the open label.
func (b *Builder) NewTrivia(kind token.TriviaKind, span source.Span) NodeID {
	return b.push(Node{Kind: NodeTrivia, Span: span, TriviaKind: kind})
}

// push allocates n in the shared arena and, if a label is currently
// open, appends its ID to that label.
func (b *Builder) push(n Node) NodeID {
	id := NodeID(b.nodes.Allocate(n))
	if b.openIdx >= 0 {
		b.labels[b.openIdx].Nodes = append(b.labels[b.openIdx].Nodes, id)
	}
	return id
}

// PushNode appends an already-allocated node ID to the currently open
// label (or the most recently closed one, if none is open — used for
// trailing Trivia after the final ^XZ).
func (b *Builder) PushNode(id NodeID) {
	if b.openIdx >= 0 {
		b.labels[b.openIdx].Nodes = append(b.labels[b.openIdx].Nodes, id)
		return
	}
	if len(b.labels) > 0 {
		last := len(b.labels) - 1
		b.labels[last].Nodes = append(b.labels[last].Nodes, id)
	}
}

// Finish returns the assembled Ast. Call after the token stream is
// exhausted; any still-open label is left Unclosed for the validator to
// diagnose.
func (b *Builder) Finish() *Ast {
	return &Ast{Nodes: b.nodes, Labels: b.labels}
}
