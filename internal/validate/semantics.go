package validate

import (
	"fmt"

	"zplspec/internal/ast"
	"zplspec/internal/diag"
	"zplspec/internal/tables"
)

// checkSemantics runs per-command checks that don't fit the generic
// signature/constraint machinery: duplicate field numbers, home-position
// bounds against the profile's page, ^FH hex-escape decoding, ^GF
// byte-count arithmetic, and barcode data shape. follower is the node
// immediately after n in label order — for FieldData/RawPayload
// commands that is where the builder put the actual payload node, since
// ^FD/^GF's Command node itself carries only arguments.
func (v *validator) checkSemantics(entry *tables.CommandEntry, n *ast.Node, follower *ast.Node, hist *labelHistory, resolved resolvedArgs) {
	switch n.Code {
	case "FN":
		v.checkDuplicateFieldNumber(n, resolved)
	case "FO":
		v.checkHomePosition(n, resolved)
	case "GF":
		v.checkGraphicField(n, resolved, follower)
	case "BC":
		hist.barcodePending = true
		return
	}
	if entry.FieldData && follower != nil && follower.Kind == ast.NodeFieldData {
		if follower.HexEscaped {
			v.checkHexEscape(follower)
		}
		if hist.barcodePending {
			v.checkBarcodeData(follower)
		}
		hist.barcodePending = false
	}
}

func (v *validator) checkDuplicateFieldNumber(n *ast.Node, resolved resolvedArgs) {
	num, ok := resolved["number"]
	if !ok {
		return
	}
	if v.dev.SeenFieldNumber(num) {
		v.report(diag.SemaUnknownEnumValue, diag.SevError, n.Span,
			fmt.Sprintf("^FN%s reuses a field number already assigned earlier in the label", num))
	}
}

func (v *validator) checkHomePosition(n *ast.Node, resolved resolvedArgs) {
	if v.profile == nil || v.profile.Page == nil {
		return
	}
	x, xok := resolved["x"]
	y, yok := resolved["y"]
	xf, xgood := parseFloatOK(x)
	yf, ygood := parseFloatOK(y)
	if xok && xgood && (xf < 0 || xf > v.profile.Page.WidthDots) {
		v.report(diag.SemaArgOutOfRange, diag.SevError, n.Span,
			fmt.Sprintf("^FO: x=%g falls outside the profile's page width (%g dots)", xf, v.profile.Page.WidthDots))
	}
	if yok && ygood && (yf < 0 || yf > v.profile.Page.HeightDots) {
		v.report(diag.SemaArgOutOfRange, diag.SevError, n.Span,
			fmt.Sprintf("^FO: y=%g falls outside the profile's page height (%g dots)", yf, v.profile.Page.HeightDots))
	}
}

// checkHexEscape scans a hex-escaped field data payload for malformed
// "_xx" escape sequences — the marker byte must be followed by exactly
// two hex digits.
func (v *validator) checkHexEscape(fd *ast.Node) {
	s := fd.Content
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i+2 >= len(s) || !isHexDigit(s[i+1]) || !isHexDigit(s[i+2]) {
			v.report(diag.SemaArgTypeMismatch, diag.SevError, fd.Span,
				fmt.Sprintf("^FD: malformed hex escape at byte offset %d", i))
			return
		}
		i += 2
	}
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// checkGraphicField validates ^GF's declared byte count against the
// length of the raw payload node the parser captured immediately after
// it (which may be shorter than declared if input ran out).
func (v *validator) checkGraphicField(n *ast.Node, resolved resolvedArgs, payload *ast.Node) {
	totalStr, ok := resolved["total_bytes"]
	if !ok {
		return
	}
	total, ok := parseFloatOK(totalStr)
	if !ok {
		return
	}
	var captured int
	if payload != nil && payload.Kind == ast.NodeRawData {
		captured = int(payload.Span.Len())
	}
	if int(total) != captured {
		v.report(diag.SemaGraphicFieldBadByteCnt, diag.SevError, n.Span,
			fmt.Sprintf("^GF: declared total byte count %d does not match captured payload length %d", int(total), captured))
	}
}

func (v *validator) checkBarcodeData(fd *ast.Node) {
	if fd.Content == "" {
		v.report(diag.SemaBarcodeDataInvalid, diag.SevError, fd.Span, "barcode field data is empty")
	}
}
