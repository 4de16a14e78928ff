// Package lexer provides tokenization of single ELVAS script statements.
//
// Statements never span lines: the section interpreter joins continued lines
// and strips comments before a statement reaches the lexer. A '#' seen here
// still ends the statement.
package lexer

import (
	"fmt"

	"github.com/kolkov/elvas/internal/token"
)

// Lexer tokenizes one statement.
type Lexer struct {
	src     []byte         // Source code
	ch      byte           // Current character (0 at EOF)
	offset  int            // Current byte offset
	pos     token.Position // Current position
	nextPos token.Position // Position of next character
}

// New creates a new Lexer for the given statement.
// Line is recorded in every token position; pass 0 when unknown.
func New(src []byte, line int) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   line,
			Column: 1,
		},
	}
	l.next() // Initialize first character
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src), 0)
}

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()

	pos := l.pos

	if l.eof() || l.ch == '#' {
		return Token{Type: token.EOF, Pos: pos}
	}

	switch l.ch {
	case '+':
		l.next()
		return Token{Type: token.ADD, Pos: pos, Value: "+"}
	case '-':
		l.next()
		return Token{Type: token.SUB, Pos: pos, Value: "-"}
	case '*':
		l.next()
		return Token{Type: token.MUL, Pos: pos, Value: "*"}
	case '/':
		l.next()
		return Token{Type: token.DIV, Pos: pos, Value: "/"}
	case '^':
		l.next()
		return Token{Type: token.POW, Pos: pos, Value: "^"}
	case '&':
		l.next()
		return Token{Type: token.AND, Pos: pos, Value: "&"}
	case '|':
		l.next()
		return Token{Type: token.OR, Pos: pos, Value: "|"}
	case '(':
		l.next()
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}
	case ',':
		l.next()
		return Token{Type: token.COMMA, Pos: pos, Value: ","}

	case '=':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.EQUALS, Pos: pos, Value: "=="}
		}
		return Token{Type: token.ASSIGN, Pos: pos, Value: "="}

	case ':':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.DEFINE, Pos: pos, Value: ":="}
		}
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unexpected ':'"}

	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.NOT_EQUALS, Pos: pos, Value: "!="}
		}
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unexpected '!'"}

	case '<':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.LTE, Pos: pos, Value: "<="}
		}
		return Token{Type: token.LESS, Pos: pos, Value: "<"}

	case '>':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.GTE, Pos: pos, Value: ">="}
		}
		return Token{Type: token.GREATER, Pos: pos, Value: ">"}

	case '"':
		return l.scanString(pos)

	case '.':
		if l.offset < len(l.src) && isDigit(l.src[l.offset]) {
			return l.scanNumber(pos)
		}
		l.next()
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unexpected '.'"}
	}

	if isDigit(l.ch) {
		return l.scanNumber(pos)
	}
	if isIdentStart(l.ch) {
		return l.scanIdent(pos)
	}

	ch := l.ch
	l.next()
	return Token{Type: token.ILLEGAL, Pos: pos, Value: fmt.Sprintf("unexpected character %q", ch)}
}

// ScanAll scans the whole statement. The last token is always EOF or the
// first ILLEGAL token.
func (l *Lexer) ScanAll() []Token {
	var toks []Token
	for {
		tok := l.Scan()
		toks = append(toks, tok)
		if tok.Type == token.EOF || tok.Type == token.ILLEGAL {
			return toks
		}
	}
}

// scanString scans a double-quoted literal. Contents are taken verbatim.
func (l *Lexer) scanString(pos token.Position) Token {
	l.next() // consume opening quote
	start := l.pos.Offset
	for !l.eof() && l.ch != '"' {
		l.next()
	}
	if l.eof() {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated string"}
	}
	value := string(l.src[start:l.pos.Offset])
	l.next() // consume closing quote
	return Token{Type: token.STRING, Pos: pos, Value: value}
}

func (l *Lexer) scanNumber(pos token.Position) Token {
	start := pos.Offset

	for isDigit(l.ch) {
		l.next()
	}
	if l.ch == '.' {
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
	}
	// Only consume e/E if followed by digit or +/- then digit, so that
	// "2e" is left for the parser to reject as a number followed by a name.
	if (l.ch == 'e' || l.ch == 'E') && l.hasValidExponent() {
		l.next()
		if l.ch == '+' || l.ch == '-' {
			l.next()
		}
		for isDigit(l.ch) {
			l.next()
		}
	}

	return Token{Type: token.NUMBER, Pos: pos, Value: string(l.src[start:l.pos.Offset])}
}

func (l *Lexer) scanIdent(pos token.Position) Token {
	start := pos.Offset
	for isIdentContinue(l.ch) {
		l.next()
	}
	name := string(l.src[start:l.pos.Offset])
	if name == "inf" {
		return Token{Type: token.NUMBER, Pos: pos, Value: name}
	}
	return Token{Type: token.LookupIdent(name), Pos: pos, Value: name}
}

// hasValidExponent checks if current e/E is followed by a valid exponent.
func (l *Lexer) hasValidExponent() bool {
	idx := l.offset
	if idx >= len(l.src) {
		return false
	}
	ch := l.src[idx]
	if isDigit(ch) {
		return true
	}
	if ch == '+' || ch == '-' {
		idx++
		if idx < len(l.src) && isDigit(l.src[idx]) {
			return true
		}
	}
	return false
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.next()
	}
}

// eof reports whether the input is exhausted. A NUL byte inside the
// input is an ordinary (illegal) character.
func (l *Lexer) eof() bool {
	return l.pos.Offset >= len(l.src)
}

func (l *Lexer) next() {
	l.pos = l.nextPos
	if l.offset >= len(l.src) {
		l.ch = 0
		return
	}
	l.ch = l.src[l.offset]
	l.offset++
	l.nextPos.Column++
	l.nextPos.Offset = l.offset
}

// Helper functions

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
