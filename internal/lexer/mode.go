package lexer

// Mode selects how the lexer interprets upcoming bytes. The parser drives
// mode transitions: it alone knows, from the command table, which opcodes
// take free-form field text or a fixed-length raw payload.
type Mode uint8

const (
	// ModeNormal recognizes Prefix, Opcode, ArgBlob and Comma tokens.
	ModeNormal Mode = iota
	// ModeFieldData captures everything up to the next prefix byte as a
	// single FieldData token, for commands such as ^FD/^FV that carry
	// free-form field text.
	ModeFieldData
	// ModeRawData captures a fixed number of bytes verbatim as a single
	// RawData token, for commands such as ^GF/~DG that embed a payload
	// of a declared length, including bytes that would otherwise be
	// read as a prefix or delimiter.
	ModeRawData
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeFieldData:
		return "FieldData"
	case ModeRawData:
		return "RawData"
	default:
		return "Unknown"
	}
}

// OpcodeMatcher recognizes the opcode starting at the front of b, returning
// the number of bytes it spans. A zero result means no opcode matched at
// this position. Supplied by a loaded command table's opcode trie; when nil
// the lexer falls back to a fixed-width opcode.
type OpcodeMatcher interface {
	MatchOpcode(b []byte) int
}

// fallbackOpcodeWidth is used when no OpcodeMatcher is configured, or the
// matcher reports no match: most ZPL opcodes are exactly two bytes.
const fallbackOpcodeWidth = 2
