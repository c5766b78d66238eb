package diag

import "fmt"

// Code is a stable, numeric diagnostic identifier. The numeric value is
// partitioned into families by thousand, mirroring the family convention
// used elsewhere in this codebase (Bag.Sort, diagfmt rendering, Explain).
type Code uint16

const (
	// UnknownCode is the zero value; never produced deliberately.
	UnknownCode Code = 0

	// Lexical (1000-1999): tokenizer-level problems, before any opcode
	// or argument structure is understood.
	LexInfo               Code = 1000
	LexUnknownByte        Code = 1001
	LexUnterminatedLabel  Code = 1002
	LexTokenTooLong       Code = 1003
	LexInvalidPrefixByte  Code = 1004
	LexInvalidDelimByte   Code = 1005
	LexUnterminatedFXNote Code = 1006
	LexControlCharInArg   Code = 1007

	// Syntax (2000-2999): token-stream shape problems caught by the
	// parser independent of any specific command's signature.
	SynInfo                 Code = 2000
	SynExpectedOpcode        Code = 2001
	SynExpectedArgOrComma    Code = 2002
	SynUnexpectedComma       Code = 2003
	SynUnexpectedPrefix      Code = 2004
	SynTrailingArgs          Code = 2005
	SynMissingLabelStart     Code = 2006
	SynMissingLabelEnd       Code = 2007
	SynNestedLabelStart      Code = 2008
	SynUnexpectedEOFInArgs   Code = 2009
	SynFieldDataOutsideField Code = 2010
	SynRawDataWithoutHeader  Code = 2011

	// Structural / validator (3000-3999): the command exists or doesn't,
	// and its argument shape against the loaded command table.
	SemaInfo                   Code = 3000
	SemaUnknownCommand         Code = 3001
	SemaTooManyArgs            Code = 3002
	SemaMissingRequiredArg     Code = 3003
	SemaArgTypeMismatch        Code = 3004
	SemaArgOutOfRange          Code = 3005
	SemaArgEnumMismatch        Code = 3006
	SemaArgRoundedToStep       Code = 3007
	SemaEmptyArgNotAllowed     Code = 3008
	SemaDeprecatedCommand      Code = 3009
	SemaUnknownEnumValue       Code = 3010
	SemaLabelUnclosed          Code = 3011
	SemaLabelEmptyField        Code = 3012
	SemaFieldDataTooLong       Code = 3013
	SemaBarcodeDataInvalid     Code = 3014
	SemaGraphicFieldBadByteCnt Code = 3015

	// Cross-command constraints (4000-4999): Order / Requires /
	// Incompatible / EmptyData / Range / Custom, evaluated against
	// device state accumulated across the whole label.
	ConstraintInfo            Code = 4000
	ConstraintOrderViolated   Code = 4001
	ConstraintRequiresMissing Code = 4002
	ConstraintIncompatible    Code = 4003
	ConstraintEmptyDataReq    Code = 4004
	ConstraintRangeViolated   Code = 4005
	ConstraintCustomFailed    Code = 4006
	ConstraintUnitMismatch    Code = 4007

	// Profile gates (5000-5999): tri-state feature support relative to
	// an optional printer profile.
	ProfileInfo                Code = 5000
	ProfileCommandUnsupported  Code = 5001
	ProfileCommandUnknown      Code = 5002
	ProfileArgUnsupported      Code = 5003
	ProfileDPIMismatch         Code = 5004
	ProfileFontUnavailable     Code = 5005
	ProfileBarcodeUnavailable  Code = 5006

	// I/O and artifact loading (6000-6999): problems loading command
	// tables, printer profiles, or spec-compiler inputs. These normally
	// surface as plain Go errors (see diag package doc), not Bag
	// diagnostics, but share the family numbering for Explain lookups.
	IOInfo                Code = 6000
	IOLoadTableError      Code = 6001
	IOLoadProfileError    Code = 6002
	IOLoadSpecError       Code = 6003
	IOTableVersionSkew    Code = 6004
	IOSpecSchemaViolation Code = 6005
	IOSpecDuplicateOpcode Code = 6006

	// Parser recovery (9000-9999): informational notes emitted while
	// resynchronizing after a syntax error, not errors themselves.
	RecoveryInfo            Code = 9000
	RecoverySkippedToCommand Code = 9001
	RecoverySkippedToLabel   Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:               "Lexical information",
	LexUnknownByte:        "Unrecognized byte outside any known token shape",
	LexUnterminatedLabel:  "Label opened with ^XA never closed with ^XZ",
	LexTokenTooLong:       "Token exceeds the maximum accepted length",
	LexInvalidPrefixByte:  "^CC/~CC requested an unusable prefix byte",
	LexInvalidDelimByte:   "^CD requested an unusable delimiter byte",
	LexUnterminatedFXNote: "^FX comment runs to end of input without a terminating ^FS",
	LexControlCharInArg:   "Control character inside an unescaped argument",

	SynInfo:                  "Syntax information",
	SynExpectedOpcode:        "Expected an opcode after the prefix character",
	SynExpectedArgOrComma:    "Expected an argument or a delimiter",
	SynUnexpectedComma:       "Unexpected delimiter outside an argument list",
	SynUnexpectedPrefix:      "Prefix character found where an argument was expected",
	SynTrailingArgs:          "Trailing arguments after the command's last recognized slot",
	SynMissingLabelStart:     "Command requires an open label (^XA) first",
	SynMissingLabelEnd:       "Input ends with a label still open",
	SynNestedLabelStart:      "^XA encountered while a label is already open",
	SynUnexpectedEOFInArgs:   "Input ends in the middle of an argument list",
	SynFieldDataOutsideField: "Field data encountered outside an active ^FD/^FV field",
	SynRawDataWithoutHeader:  "Raw payload bytes encountered without a preceding header command",

	SemaInfo:                   "Structural information",
	SemaUnknownCommand:         "Opcode not present in the loaded command table",
	SemaTooManyArgs:            "More arguments supplied than the command defines",
	SemaMissingRequiredArg:     "Required argument omitted",
	SemaArgTypeMismatch:        "Argument value does not match its declared type",
	SemaArgOutOfRange:          "Argument value falls outside its declared range",
	SemaArgEnumMismatch:        "Argument value is not one of the declared enum members",
	SemaArgRoundedToStep:       "Argument value rounded to the nearest declared step",
	SemaEmptyArgNotAllowed:     "Empty argument not permitted for this slot",
	SemaDeprecatedCommand:      "Command is marked deprecated in the loaded table",
	SemaUnknownEnumValue:       "Value not recognized as any declared enum member",
	SemaLabelUnclosed:          "Label never reached ^XZ",
	SemaLabelEmptyField:        "Field has no data between ^FD/^FV and ^FS",
	SemaFieldDataTooLong:       "Field data exceeds the command's declared maximum length",
	SemaBarcodeDataInvalid:     "Barcode field data violates its symbology's character set",
	SemaGraphicFieldBadByteCnt: "^GF byte counts do not agree with the supplied data length",

	ConstraintInfo:            "Constraint information",
	ConstraintOrderViolated:   "Command appears out of the order required relative to another command",
	ConstraintRequiresMissing: "Command requires another command earlier in the label",
	ConstraintIncompatible:    "Command is incompatible with another command present in the label",
	ConstraintEmptyDataReq:    "Constraint requires this argument to be empty in the current context",
	ConstraintRangeViolated:   "Constraint-level range check failed given current device state",
	ConstraintCustomFailed:    "Custom constraint expression evaluated to false",
	ConstraintUnitMismatch:    "Value does not agree with the unit system selected by ^MU",

	ProfileInfo:               "Profile information",
	ProfileCommandUnsupported: "Profile marks this command as unsupported on the target device",
	ProfileCommandUnknown:     "Profile has no entry for this command (treated as unknown support)",
	ProfileArgUnsupported:     "Profile marks this argument value as unsupported",
	ProfileDPIMismatch:        "Value assumes a print density the profile does not declare",
	ProfileFontUnavailable:    "Referenced font is not present in the profile's font list",
	ProfileBarcodeUnavailable: "Referenced barcode symbology is not present in the profile",

	IOInfo:                "I/O information",
	IOLoadTableError:      "Failed to load the command table",
	IOLoadProfileError:    "Failed to load the printer profile",
	IOLoadSpecError:       "Failed to load a per-command spec file",
	IOTableVersionSkew:    "Command table format_version is not supported by this build",
	IOSpecSchemaViolation: "Spec file does not conform to its schema",
	IOSpecDuplicateOpcode: "Two spec files declare the same opcode",

	RecoveryInfo:             "Recovery information",
	RecoverySkippedToCommand: "Skipped input up to the next recognizable command",
	RecoverySkippedToLabel:   "Skipped input up to the next label boundary",
}

// ID renders the code's stable string identifier, e.g. "LEX1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CON%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("REC%04d", ic)
	}
	return "E0000"
}

// Title returns the human-readable description registered for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
