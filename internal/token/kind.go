package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a byte sequence the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Prefix represents a command prefix character: the format prefix
	// (default '^') or the control prefix (default '~'). Token.Text holds
	// the exact rune matched, since ^CC/^CD can change either one.
	Prefix
	// Opcode represents the one-to-three character command mnemonic that
	// immediately follows a Prefix token (e.g. "FO", "A0", "XA").
	Opcode
	// ArgBlob represents the raw, unsplit text of a single positional
	// argument: everything between one delimiter (or the opcode) and the
	// next delimiter, Prefix, or end of command. Splitting a composite
	// argument into sub-fields is the parser's job, not the lexer's.
	ArgBlob
	// Comma represents the active delimiter character separating
	// arguments. Token.Text holds the exact rune matched, since ^CD can
	// change it mid-stream.
	Comma
	// FieldData represents the literal text collected between a field-data
	// opening command (^FD) and its closing ^FS, before hex-escape
	// decoding.
	FieldData
	// RawData represents an uninterpreted binary payload following a
	// command that declares one (e.g. ^GF's graphic bytes), consumed for
	// an exact, pre-declared byte count.
	RawData
)
