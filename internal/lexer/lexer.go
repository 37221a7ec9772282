// Package lexer tokenizes fixture sources of the declaration language.
package lexer

import "fmt"

// Lexer scans one source buffer. The input is expected to be UTF-8; the
// grammar itself is ASCII.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
	look *Token // one-token lookahead buffer
}

// New returns a lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Peek returns the next significant token without consuming it.
func (lx *Lexer) Peek() Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

func (lx *Lexer) scan() Token {
	lx.skipTrivia()
	if lx.pos >= len(lx.src) {
		return Token{Kind: EOF, Line: lx.line, Col: lx.col}
	}
	line, col := lx.line, lx.col
	ch := lx.src[lx.pos]
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword(line, col)
	case isDigit(ch):
		return lx.scanNumber(line, col)
	case ch == '"':
		return lx.scanString(line, col)
	default:
		return lx.scanPunct(line, col)
	}
}

// skipTrivia consumes whitespace and `--` line comments.
func (lx *Lexer) skipTrivia() {
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.advance(1)
		case ch == '\n':
			lx.pos++
			lx.line++
			lx.col = 1
		case ch == '-' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '-':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
				lx.col++
			}
		default:
			return
		}
	}
}

func (lx *Lexer) advance(n int) {
	lx.pos += n
	lx.col += n
}

func (lx *Lexer) scanIdentOrKeyword(line, col int) Token {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentContinue(lx.src[lx.pos]) {
		lx.advance(1)
	}
	text := lx.src[start:lx.pos]
	if kw, ok := keywords[text]; ok {
		return Token{Kind: kw, Text: text, Line: line, Col: col}
	}
	return Token{Kind: Ident, Text: text, Line: line, Col: col}
}

func (lx *Lexer) scanNumber(line, col int) Token {
	start := lx.pos
	for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
		lx.advance(1)
	}
	return Token{Kind: Number, Text: lx.src[start:lx.pos], Line: line, Col: col}
}

func (lx *Lexer) scanString(line, col int) Token {
	lx.advance(1) // opening quote
	start := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '"' && lx.src[lx.pos] != '\n' {
		lx.advance(1)
	}
	text := lx.src[start:lx.pos]
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '"' {
		lx.advance(1)
	}
	return Token{Kind: String, Text: text, Line: line, Col: col}
}

func (lx *Lexer) scanPunct(line, col int) Token {
	two := ""
	if lx.pos+2 <= len(lx.src) {
		two = lx.src[lx.pos : lx.pos+2]
	}
	switch two {
	case ":=":
		lx.advance(2)
		return Token{Kind: Assign, Text: two, Line: line, Col: col}
	case "->":
		lx.advance(2)
		return Token{Kind: Arrow, Text: two, Line: line, Col: col}
	case "=>":
		lx.advance(2)
		return Token{Kind: FatArrow, Text: two, Line: line, Col: col}
	}
	ch := lx.src[lx.pos]
	lx.advance(1)
	one := string(ch)
	switch ch {
	case '(':
		return Token{Kind: LParen, Text: one, Line: line, Col: col}
	case ')':
		return Token{Kind: RParen, Text: one, Line: line, Col: col}
	case '{':
		return Token{Kind: LBrace, Text: one, Line: line, Col: col}
	case '}':
		return Token{Kind: RBrace, Text: one, Line: line, Col: col}
	case ':':
		return Token{Kind: Colon, Text: one, Line: line, Col: col}
	case '+':
		return Token{Kind: Plus, Text: one, Line: line, Col: col}
	case ',':
		return Token{Kind: Comma, Text: one, Line: line, Col: col}
	case '|':
		return Token{Kind: Pipe, Text: one, Line: line, Col: col}
	default:
		// surfaced by the parser as a compile error
		return Token{Kind: Invalid, Text: fmt.Sprintf("unexpected byte %q", ch), Line: line, Col: col}
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// Dots join namespaced names (Nat.add) into a single identifier token.
func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '.' || ch == '\''
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
