package lexer

import (
	"zplspec/internal/diag"
	"zplspec/internal/source"
)

// Options configures a Lexer.
type Options struct {
	Reporter diag.Reporter
	Matcher  OpcodeMatcher
}

func (lx *Lexer) reportLex(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.reportLex(code, diag.SevError, sp, msg)
}
