package ast

import "zplspec/internal/source"

// Label is the span between a ^XA and its matching ^XZ (inclusive),
// carrying the ordered nodes parsed within it. Content seen outside any
// ^XA/^XZ pair (before the first ^XA, or after a ^XZ) is still collected
// into a Label — flagged Implicit — so it has somewhere to live for
// diagnostic purposes. Content after a ^XA that input ends without
// closing stays in that ^XA's Label, flagged Unclosed.
type Label struct {
	Span     source.Span
	Nodes    []NodeID
	Implicit bool
	// Unclosed reports whether this label's ^XA never reached a matching
	// ^XZ before end of input. A label cut short by a nested ^XA is
	// closed there and is not flagged.
	Unclosed bool
}

// Ast is the root of a parsed ZPL document: an ordered sequence of
// Labels, each an ordered sequence of Nodes. Nodes live in a single
// shared arena so they can be referenced by ID from device-state
// resolution or diagnostics without duplicating content.
type Ast struct {
	Nodes  *Arena[Node]
	Labels []Label
}

// Node resolves a NodeID against the Ast's shared arena.
func (a *Ast) Node(id NodeID) *Node {
	if a == nil {
		return nil
	}
	return a.Nodes.Get(uint32(id))
}

// LabelNodes returns the resolved Node for each ID in a label, in order.
func (a *Ast) LabelNodes(l Label) []*Node {
	out := make([]*Node, 0, len(l.Nodes))
	for _, id := range l.Nodes {
		out = append(out, a.Node(id))
	}
	return out
}
