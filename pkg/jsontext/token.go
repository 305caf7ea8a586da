// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"fmt"
	"unicode/utf8"
)

// TokenKind is the kind of a lexical token.
type TokenKind int

const (
	TokenInvalid TokenKind = iota
	TokenBeginObject
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenColon
	TokenComma
	TokenString
	TokenNumber
	TokenLiteral
	TokenWhitespace
	TokenComment
	TokenEOF
)

var tokenKindNames = [...]string{
	TokenInvalid:     "invalid character",
	TokenBeginObject: "'{'",
	TokenEndObject:   "'}'",
	TokenBeginArray:  "'['",
	TokenEndArray:    "']'",
	TokenColon:       "':'",
	TokenComma:       "','",
	TokenString:      "string",
	TokenNumber:      "number",
	TokenLiteral:     "literal",
	TokenWhitespace:  "whitespace",
	TokenComment:     "comment",
	TokenEOF:         "end of input",
}

// String returns a description of the kind for use in messages.
func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexical token.
// Start and Length are byte offsets into the source text.
type Token struct {
	Kind   TokenKind
	Start  int
	Length int
	// Text is the raw source slice covered by the token.
	Text string
	// Err is non-zero if the token is malformed,
	// for example an unterminated string.
	Err ErrorKind
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Start + t.Length
}

// trivia reports whether the token carries no value.
func (t Token) trivia() bool {
	return t.Kind == TokenWhitespace || t.Kind == TokenComment
}

// Tokenizer produces tokens from source text on demand.
// It never fails: unrecognized input becomes a TokenInvalid.
type Tokenizer struct {
	src string
	pos int
}

// NewTokenizer returns a tokenizer positioned at the start of text.
func NewTokenizer(text string) *Tokenizer {
	return &Tokenizer{src: text}
}

// Offset returns the offset of the next token.
func (tz *Tokenizer) Offset() int {
	return tz.pos
}

// Next returns the next token, including whitespace and comments.
// At end of input it returns a zero-length TokenEOF, repeatedly.
func (tz *Tokenizer) Next() Token {
	start := tz.pos
	if start >= len(tz.src) {
		return Token{Kind: TokenEOF, Start: start}
	}

	c := tz.src[start]
	switch c {
	case '{':
		return tz.single(TokenBeginObject)
	case '}':
		return tz.single(TokenEndObject)
	case '[':
		return tz.single(TokenBeginArray)
	case ']':
		return tz.single(TokenEndArray)
	case ':':
		return tz.single(TokenColon)
	case ',':
		return tz.single(TokenComma)
	case ' ', '\t', '\n', '\r':
		for tz.pos < len(tz.src) && isSpace(tz.src[tz.pos]) {
			tz.pos++
		}
		return tz.token(TokenWhitespace, start, 0)
	case '"':
		return tz.scanString()
	case '/':
		return tz.scanComment()
	}

	switch {
	case c == '-' || isDigit(c):
		for tz.pos < len(tz.src) && isNumberByte(tz.src[tz.pos]) {
			tz.pos++
		}
		return tz.token(TokenNumber, start, 0)
	case isLiteralByte(c):
		for tz.pos < len(tz.src) && isLiteralByte(tz.src[tz.pos]) {
			tz.pos++
		}
		return tz.token(TokenLiteral, start, 0)
	}

	_, size := utf8.DecodeRuneInString(tz.src[start:])
	tz.pos += size
	return tz.token(TokenInvalid, start, ErrInvalidCharacter)
}

// NextSignificant returns the next token that is not whitespace.
// Comments are returned so the parser can decide whether they are allowed.
func (tz *Tokenizer) NextSignificant() Token {
	for {
		tok := tz.Next()
		if tok.Kind != TokenWhitespace {
			return tok
		}
	}
}

func (tz *Tokenizer) single(kind TokenKind) Token {
	start := tz.pos
	tz.pos++
	return tz.token(kind, start, 0)
}

func (tz *Tokenizer) token(kind TokenKind, start int, err ErrorKind) Token {
	return Token{
		Kind:   kind,
		Start:  start,
		Length: tz.pos - start,
		Text:   tz.src[start:tz.pos],
		Err:    err,
	}
}

// scanString scans a string token including its quotes.
// Escapes are not decoded here. A string that reaches the end
// of the line or the end of input is unterminated.
func (tz *Tokenizer) scanString() Token {
	start := tz.pos
	tz.pos++ // opening quote
	for tz.pos < len(tz.src) {
		switch tz.src[tz.pos] {
		case '"':
			tz.pos++
			return tz.token(TokenString, start, 0)
		case '\\':
			tz.pos++
			if tz.pos < len(tz.src) && tz.src[tz.pos] != '\n' {
				tz.pos++
			}
		case '\n':
			return tz.token(TokenString, start, ErrUnterminatedString)
		default:
			tz.pos++
		}
	}
	return tz.token(TokenString, start, ErrUnterminatedString)
}

// scanComment scans a // or /* */ comment.
// A lone slash is an invalid character.
func (tz *Tokenizer) scanComment() Token {
	start := tz.pos
	if start+1 >= len(tz.src) {
		tz.pos++
		return tz.token(TokenInvalid, start, ErrInvalidCharacter)
	}
	switch tz.src[start+1] {
	case '/':
		tz.pos += 2
		for tz.pos < len(tz.src) && tz.src[tz.pos] != '\n' {
			tz.pos++
		}
		return tz.token(TokenComment, start, 0)
	case '*':
		tz.pos += 2
		for tz.pos+1 < len(tz.src) {
			if tz.src[tz.pos] == '*' && tz.src[tz.pos+1] == '/' {
				tz.pos += 2
				return tz.token(TokenComment, start, 0)
			}
			tz.pos++
		}
		tz.pos = len(tz.src)
		return tz.token(TokenComment, start, ErrUnterminatedComment)
	default:
		tz.pos++
		return tz.token(TokenInvalid, start, ErrInvalidCharacter)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isNumberByte(c byte) bool {
	return isDigit(c) || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

func isLiteralByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || isDigit(c) || c == '_' || c == '$'
}
