package compiler

import (
	"github.com/mna/wisp/lang/machine"
	"github.com/mna/wisp/lang/scanner"
	"github.com/mna/wisp/lang/token"
)

// parser drives the single token of lookahead the Pratt grammar needs,
// reports diagnostics into an ErrorList, and owns the chain of in-progress
// funcCompiler and classState records (spec §4.2).
type parser struct {
	sc *scanner.Scanner
	gc *machine.GC

	prev scanner.TokenAndValue
	cur  scanner.TokenAndValue

	errs      token.ErrorList
	hadError  bool
	panicMode bool

	current *funcCompiler
	class   *classState
}

func (p *parser) position(pos token.Pos) token.Position {
	line, col := pos.LineCol()
	return token.Position{Line: line, Column: col}
}

// advance moves to the next token, reporting (and skipping) any illegal
// tokens the scanner produces along the way.
func (p *parser) advance() {
	p.prev = p.cur
	for {
		p.cur = p.sc.Scan()
		if p.cur.Token != token.ILLEGAL {
			break
		}
		p.errorAtCurrent(p.cur.Lit)
	}
}

func (p *parser) check(tok token.Token) bool { return p.cur.Token == tok }

func (p *parser) match(tok token.Token) bool {
	if !p.check(tok) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(tok token.Token, msg string) {
	if p.cur.Token == tok {
		p.advance()
		return
	}
	p.errorAtCurrent(msg)
}

func (p *parser) errorAtCurrent(msg string) { p.errorAt(p.cur, msg) }
func (p *parser) error(msg string)          { p.errorAt(p.prev, msg) }

// errorAt records a diagnostic at tv's position, implementing panic-mode
// recovery (spec §4.2): once an error is reported, further errors are
// swallowed until the parser resynchronizes at a statement boundary.
func (p *parser) errorAt(tv scanner.TokenAndValue, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	var full string
	switch tv.Token {
	case token.EOF:
		full = "at end: " + msg
	case token.ILLEGAL:
		// the lexeme already carries the scanner's own message
		full = ": " + msg
	default:
		full = "at '" + tv.Lit + "': " + msg
	}
	p.errs.Add(p.position(tv.Pos), full)
}

// synchronize skips tokens until it reaches a likely statement boundary,
// per spec §4.2's panic-mode recovery so one syntax error doesn't cascade
// into a wall of spurious diagnostics.
func (p *parser) synchronize() {
	p.panicMode = false
	for p.cur.Token != token.EOF {
		if p.prev.Token == token.SEMI {
			return
		}
		if token.SyncPoints[p.cur.Token] {
			return
		}
		p.advance()
	}
}
