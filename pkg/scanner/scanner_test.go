package scanner_test

import (
	"testing"

	"github.com/loxgo/loxgo/pkg/scanner"
	"github.com/loxgo/loxgo/pkg/token"
)

func TestToken_Punctuation(t *testing.T) {
	input := `( ) { } , . - + ; / * :`

	tests := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Slash, token.Star, token.Colon, token.EOF,
	}

	s := scanner.New(input)
	for i, want := range tests {
		tok := s.Token()
		if tok.Kind != want {
			t.Fatalf("tests[%d]: expected kind %v, got %v (%q)", i, want, tok.Kind, tok.Lexeme)
		}
	}
}

func TestToken_OneOrTwoCharOperators(t *testing.T) {
	input := `! != = == < <= > >=`

	tests := []token.Kind{
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.EOF,
	}

	s := scanner.New(input)
	for i, want := range tests {
		tok := s.Token()
		if tok.Kind != want {
			t.Fatalf("tests[%d]: expected kind %v, got %v (%q)", i, want, tok.Kind, tok.Lexeme)
		}
	}
}

func TestToken_Keywords(t *testing.T) {
	input := `and class else false for fun if nil or print return super this true var const while switch case default`

	tests := []token.Kind{
		token.And, token.Class, token.Else, token.False, token.For, token.Fun,
		token.If, token.Nil, token.Or, token.Print, token.Return, token.Super,
		token.This, token.True, token.Var, token.Const, token.While,
		token.Switch, token.Case, token.Default, token.EOF,
	}

	s := scanner.New(input)
	for i, want := range tests {
		tok := s.Token()
		if tok.Kind != want {
			t.Fatalf("tests[%d]: expected kind %v, got %v (%q)", i, want, tok.Kind, tok.Lexeme)
		}
	}
}

func TestToken_Identifier(t *testing.T) {
	s := scanner.New("orchid_42")
	tok := s.Token()
	if tok.Kind != token.Identifier || tok.Lexeme != "orchid_42" {
		t.Fatalf("expected identifier 'orchid_42', got %v %q", tok.Kind, tok.Lexeme)
	}
}

func TestToken_Number(t *testing.T) {
	for _, lexeme := range []string{"0", "123", "3.14", "0.5"} {
		s := scanner.New(lexeme)
		tok := s.Token()
		if tok.Kind != token.Number || tok.Lexeme != lexeme {
			t.Fatalf("expected number %q, got %v %q", lexeme, tok.Kind, tok.Lexeme)
		}
	}
}

func TestToken_String(t *testing.T) {
	s := scanner.New(`"hello world"`)
	tok := s.Token()
	if tok.Kind != token.String || tok.Lexeme != `"hello world"` {
		t.Fatalf("expected string literal, got %v %q", tok.Kind, tok.Lexeme)
	}
}

func TestToken_StringSpansNewlines(t *testing.T) {
	s := scanner.New("\"line one\nline two\"\n1")
	tok := s.Token()
	if tok.Kind != token.String {
		t.Fatalf("expected string, got %v", tok.Kind)
	}

	next := s.Token()
	if next.Kind != token.Number || next.Line != 3 {
		t.Fatalf("expected number on line 3, got %v on line %v", next.Kind, next.Line)
	}
}

func TestToken_UnterminatedString(t *testing.T) {
	s := scanner.New(`"unterminated`)
	tok := s.Token()
	if tok.Kind != token.Error || tok.Lexeme != "Unterminated string." {
		t.Fatalf("expected unterminated string error, got %v %q", tok.Kind, tok.Lexeme)
	}
}

func TestToken_LineComment(t *testing.T) {
	s := scanner.New("// a comment\n1")
	tok := s.Token()
	if tok.Kind != token.Number || tok.Line != 2 {
		t.Fatalf("expected number on line 2, got %v on line %v", tok.Kind, tok.Line)
	}
}

func TestToken_LineTracking(t *testing.T) {
	s := scanner.New("1\n2\n\n3")
	wantLines := []int{1, 2, 4}
	for i, want := range wantLines {
		tok := s.Token()
		if tok.Line != want {
			t.Fatalf("tests[%d]: expected line %v, got %v", i, want, tok.Line)
		}
	}
}

func TestToken_EOFRepeats(t *testing.T) {
	s := scanner.New("")
	for i := 0; i < 3; i++ {
		tok := s.Token()
		if tok.Kind != token.EOF {
			t.Fatalf("call %d: expected EOF, got %v", i, tok.Kind)
		}
	}
}

func TestToken_UnexpectedCharacter(t *testing.T) {
	s := scanner.New("@")
	tok := s.Token()
	if tok.Kind != token.Error {
		t.Fatalf("expected error token, got %v", tok.Kind)
	}
}
