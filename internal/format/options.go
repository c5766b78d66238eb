package format

// IndentMode controls leading whitespace on each emitted line.
type IndentMode string

const (
	// IndentNone emits every line flush left.
	IndentNone IndentMode = "none"
	// IndentLabel indents one level while inside a ^XA/^XZ label.
	IndentLabel IndentMode = "label"
	// IndentField additionally indents one further level while inside
	// an open field (between an opens_field command and its closes_field).
	IndentField IndentMode = "field"
)

// CompactionMode controls how many commands share one output line.
type CompactionMode string

const (
	// CompactionNone puts one command (or data node) per line.
	CompactionNone CompactionMode = "none"
	// CompactionField runs every command between an opens_field command
	// and its closes_field together on one line; commands outside any
	// field still get one line each.
	CompactionField CompactionMode = "field"
)

// CommentPlacement controls where a ^FX comment lands relative to
// neighboring commands.
type CommentPlacement string

const (
	// CommentInline keeps a comment on the same line as what follows it.
	CommentInline CommentPlacement = "inline"
	// CommentLine forces a comment onto its own line.
	CommentLine CommentPlacement = "line"
)

// Options configures one Format call, matching SPEC_FULL.md's
// format(source, {indent, compaction, comment_placement}) signature.
type Options struct {
	Indent           IndentMode
	Compaction       CompactionMode
	CommentPlacement CommentPlacement
	IndentWidth      int
	UseTabs          bool
}

func (o Options) withDefaults() Options {
	if o.Indent == "" {
		o.Indent = IndentLabel
	}
	if o.Compaction == "" {
		o.Compaction = CompactionField
	}
	if o.CommentPlacement == "" {
		o.CommentPlacement = CommentLine
	}
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}
