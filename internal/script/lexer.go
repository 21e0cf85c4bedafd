// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package script tokenises and parses the declarative text format that
// drives graphics-set round-tripping: a single-pass lexer with one-token
// lookahead, borrowing identifier slices from the source text and owning
// string-literal content.
package script

import (
	"fmt"
	"strconv"
)

type TokenKind int

const (
	TokenIdent TokenKind = iota
	TokenSymbol
	TokenString
	TokenInt
)

// Token is one lexical unit. Ident borrows a slice of the source text;
// Str is always owned, since its content may have been copied verbatim
// from between quotes with no corresponding source slice.
type Token struct {
	Kind TokenKind
	Ident  string
	Symbol byte
	Str    string
	Int    int64
	Line   int
}

// Lexer tokenises src with a single token of pushback.
type Lexer struct {
	src  string
	pos  int
	line int

	hasUngot bool
	ungot    Token
}

func New(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		if b == '\n' {
			l.line++
			l.pos++
			continue
		}
		if b == ' ' || b == '\t' || b == '\r' {
			l.pos++
			continue
		}
		return
	}
}

// NextToken returns the next token, consuming pushback first if present.
func (l *Lexer) NextToken() (Token, error) {
	if l.hasUngot {
		l.hasUngot = false
		return l.ungot, nil
	}
	return l.lex()
}

// PeekToken returns the next token without consuming it.
func (l *Lexer) PeekToken() (Token, error) {
	if l.hasUngot {
		return l.ungot, nil
	}
	tok, err := l.lex()
	if err != nil {
		return Token{}, err
	}
	l.ungot = tok
	l.hasUngot = true
	return tok, nil
}

// UngetToken pushes a token back; the lexer buffers only one.
func (l *Lexer) UngetToken(tok Token) {
	l.ungot = tok
	l.hasUngot = true
}

func (l *Lexer) lex() (Token, error) {
	l.skipWhitespace()

	line := l.line
	b, ok := l.peekByte()
	if !ok {
		return Token{}, fmt.Errorf("script:%d: unexpected end of input", line)
	}

	switch {
	case b == '"':
		return l.lexString(line)
	case b == '-' || isDigit(b):
		return l.lexNumberOrSymbol(line)
	case isIdentByte(b):
		return l.lexIdent(line)
	default:
		l.pos++
		return Token{Kind: TokenSymbol, Symbol: b, Line: line}, nil
	}
}

func (l *Lexer) lexString(line int) (Token, error) {
	l.pos++ // opening quote
	start := l.pos
	for {
		b, ok := l.peekByte()
		if !ok {
			return Token{}, fmt.Errorf("script:%d: unterminated string literal", line)
		}
		if b == '"' {
			s := l.src[start:l.pos]
			l.pos++ // closing quote
			return Token{Kind: TokenString, Str: string([]byte(s)), Line: line}, nil
		}
		if b == '\n' {
			l.line++
		}
		l.pos++
	}
}

func (l *Lexer) lexNumberOrSymbol(line int) (Token, error) {
	start := l.pos
	if b, _ := l.peekByte(); b == '-' {
		l.pos++
		next, ok := l.peekByte()
		if !ok || !isDigit(next) {
			// Lone '-' is a symbol, not the start of a number.
			return Token{Kind: TokenSymbol, Symbol: '-', Line: line}, nil
		}
	}
	for {
		b, ok := l.peekByte()
		if !ok || !isDigit(b) {
			break
		}
		l.pos++
	}
	v, err := strconv.ParseInt(l.src[start:l.pos], 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("script:%d: invalid integer literal %q: %w", line, l.src[start:l.pos], err)
	}
	return Token{Kind: TokenInt, Int: v, Line: line}, nil
}

func (l *Lexer) lexIdent(line int) (Token, error) {
	start := l.pos
	for {
		b, ok := l.peekByte()
		if !ok || !isIdentByte(b) {
			break
		}
		l.pos++
	}
	return Token{Kind: TokenIdent, Ident: l.src[start:l.pos], Line: line}, nil
}

// ExpectIdent fails unless the next token is the identifier name.
func (l *Lexer) ExpectIdent(name string) error {
	tok, err := l.NextToken()
	if err != nil {
		return err
	}
	if tok.Kind != TokenIdent || tok.Ident != name {
		return fmt.Errorf("script:%d: expected identifier %q, got %s", tok.Line, name, describe(tok))
	}
	return nil
}

// ExpectSymbol fails unless the next token is the single-character symbol ch.
func (l *Lexer) ExpectSymbol(ch byte) error {
	tok, err := l.NextToken()
	if err != nil {
		return err
	}
	if tok.Kind != TokenSymbol || tok.Symbol != ch {
		return fmt.Errorf("script:%d: expected symbol %q, got %s", tok.Line, string(ch), describe(tok))
	}
	return nil
}

// IsNextIdent reports whether the next token is the identifier name,
// without consuming it.
func (l *Lexer) IsNextIdent(name string) bool {
	tok, err := l.PeekToken()
	if err != nil {
		return false
	}
	return tok.Kind == TokenIdent && tok.Ident == name
}

// GetStringLiteral consumes and returns the next token's string content.
func (l *Lexer) GetStringLiteral() (string, error) {
	tok, err := l.NextToken()
	if err != nil {
		return "", err
	}
	if tok.Kind != TokenString {
		return "", fmt.Errorf("script:%d: expected string literal, got %s", tok.Line, describe(tok))
	}
	return tok.Str, nil
}

// GetIntLiteral consumes and returns the next token's integer value.
func (l *Lexer) GetIntLiteral() (int64, error) {
	tok, err := l.NextToken()
	if err != nil {
		return 0, err
	}
	if tok.Kind != TokenInt {
		return 0, fmt.Errorf("script:%d: expected integer literal, got %s", tok.Line, describe(tok))
	}
	return tok.Int, nil
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Ident)
	case TokenSymbol:
		return fmt.Sprintf("symbol %q", string(tok.Symbol))
	case TokenString:
		return fmt.Sprintf("string %q", tok.Str)
	case TokenInt:
		return fmt.Sprintf("integer %d", tok.Int)
	default:
		return "unknown token"
	}
}
