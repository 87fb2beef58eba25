/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

// Package scanner implements loxgo's hand-written, pull-based lexer. It hands
// tokens to the compiler one at a time, on demand, and never builds an
// intermediate token slice or AST.
package scanner

import (
	"fmt"

	"github.com/loxgo/loxgo/pkg/token"
)

// A Scanner tokenizes loxgo source code. It holds no owned storage: every
// Token.Lexeme it produces is a slice of the source string passed to New, so
// that string must outlive every Token derived from it.
type Scanner struct {
	// source is the whole input being scanned.
	source string

	// start marks the first byte of the token currently under construction.
	start int

	// current is the read cursor; it points just past the last byte consumed.
	current int

	// line is the source line the cursor is on.
	line int
}

// New returns a new Scanner over source, ready to produce tokens starting at
// line 1.
func New(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// Token scans and returns the next Token in the source. Returns an EOF token
// once the input is exhausted, and keeps returning it on further calls.
func (s *Scanner) Token() token.Token {
	s.skipWhitespace()
	s.start = s.current

	if s.isAtEnd() {
		return s.makeToken(token.EOF)
	}

	c := s.advance()

	if isAlpha(c) {
		return s.identifier()
	}
	if isDigit(c) {
		return s.number()
	}

	switch c {
	case '(':
		return s.makeToken(token.LeftParen)
	case ')':
		return s.makeToken(token.RightParen)
	case '{':
		return s.makeToken(token.LeftBrace)
	case '}':
		return s.makeToken(token.RightBrace)
	case ';':
		return s.makeToken(token.Semicolon)
	case ':':
		return s.makeToken(token.Colon)
	case ',':
		return s.makeToken(token.Comma)
	case '.':
		return s.makeToken(token.Dot)
	case '-':
		return s.makeToken(token.Minus)
	case '+':
		return s.makeToken(token.Plus)
	case '/':
		return s.makeToken(token.Slash)
	case '*':
		return s.makeToken(token.Star)
	case '!':
		return s.makeToken(s.twoCharKind('=', token.BangEqual, token.Bang))
	case '=':
		return s.makeToken(s.twoCharKind('=', token.EqualEqual, token.Equal))
	case '<':
		return s.makeToken(s.twoCharKind('=', token.LessEqual, token.Less))
	case '>':
		return s.makeToken(s.twoCharKind('=', token.GreaterEqual, token.Greater))
	case '"':
		return s.string()
	}

	return s.errorToken(fmt.Sprintf("Unexpected character '%c'.", c))
}

// twoCharKind consumes the next byte if it equals want, and returns twoKind;
// otherwise it leaves the cursor untouched and returns oneKind.
func (s *Scanner) twoCharKind(want byte, twoKind, oneKind token.Kind) token.Kind {
	if s.match(want) {
		return twoKind
	}
	return oneKind
}

// skipWhitespace advances past spaces, tabs, carriage returns, newlines
// (tracking line numbers), and `//` line comments.
func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case ' ', '\t', '\r':
			s.advance()
		case '\n':
			s.line++
			s.advance()
		case '/':
			if s.peekNext() == '/' {
				for s.peek() != '\n' && !s.isAtEnd() {
					s.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// identifier scans an IDENTIFIER or keyword token. The first letter has
// already been consumed.
func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	lexeme := s.source[s.start:s.current]
	if kind, ok := token.Keywords[lexeme]; ok {
		return s.makeToken(kind)
	}
	return s.makeToken(token.Identifier)
}

// number scans a NUMBER token: digits, optionally followed by '.' and more
// digits. There is no separate integer/float token kind -- every number is a
// 64-bit float at runtime.
func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	return s.makeToken(token.Number)
}

// string scans a STRING token. The opening '"' has already been consumed.
// Strings may span multiple lines; an unterminated string yields an ERROR
// token.
func (s *Scanner) string() token.Token {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.isAtEnd() {
		return s.errorToken("Unterminated string.")
	}

	s.advance() // the closing quote
	return s.makeToken(token.String)
}

//
// Cursor primitives
//

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) match(want byte) bool {
	if s.isAtEnd() || s.source[s.current] != want {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) makeToken(kind token.Kind) token.Token {
	return token.Token{
		Kind:   kind,
		Lexeme: s.source[s.start:s.current],
		Line:   s.line,
	}
}

// errorToken builds an ERROR token whose Lexeme carries the error message
// itself (there's no source text to point back to that would be more useful).
func (s *Scanner) errorToken(message string) token.Token {
	return token.Token{
		Kind:   token.Error,
		Lexeme: message,
		Line:   s.line,
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
