// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsontext parses JSON text into a tree of nodes that
// remember where in the text they came from.
// Parsing does not stop at the first error: syntax errors are
// recorded on the [Document] and the tree is patched with
// placeholder nodes so that it can still be walked.
package jsontext

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// DefaultMaxDepth is the default limit on nested objects and arrays.
const DefaultMaxDepth = 1000

// ParseOptions describes parsing options.
// A nil *ParseOptions means the defaults.
type ParseOptions struct {
	// MaxDepth limits the nesting of objects and arrays.
	// Zero means DefaultMaxDepth.
	MaxDepth int
	// AllowComments permits // and /* */ comments.
	AllowComments bool
}

func (o *ParseOptions) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *ParseOptions) allowComments() bool {
	return o != nil && o.AllowComments
}

// Parse parses text into a Document identified by uri.
// Parse never fails: malformed input is recorded in the
// Errors of the result and replaced by placeholder nodes.
func Parse(uri, text string, opts *ParseOptions) *Document {
	p := &parser{
		tz:            NewTokenizer(text),
		text:          text,
		maxDepth:      opts.maxDepth(),
		allowComments: opts.allowComments(),
	}
	p.advance()

	doc := &Document{URI: uri, Text: text}
	if p.tok.Kind == TokenEOF {
		p.errorAt(ErrEmptyDocument, p.tok.Start, 0, "document contains no value")
	} else {
		root := p.parseValue()
		if p.tok.Kind != TokenEOF && !(root.Kind == Invalid && root.Start == p.tok.Start) {
			p.errorAt(ErrTrailingContent, p.tok.Start, len(text)-p.tok.Start, "unexpected content after top-level value")
		}
		if !root.IsPlaceholder() {
			doc.Root = root
		}
	}
	doc.Errors = p.errs
	return doc
}

// parser is a recursive-descent JSON parser with error recovery.
type parser struct {
	tz            *Tokenizer
	text          string
	maxDepth      int
	allowComments bool

	tok     Token // current significant token
	prevEnd int   // end of the previously consumed token
	depth   int
	errs    []ParseError
}

// advance moves to the next significant token.
// Comments are skipped here, and reported if not permitted.
func (p *parser) advance() {
	p.prevEnd = p.tok.End()
	for {
		tok := p.tz.NextSignificant()
		if tok.Kind == TokenComment {
			if tok.Err == ErrUnterminatedComment {
				p.errorTok(ErrUnterminatedComment, tok, "comment is not terminated")
			} else if !p.allowComments {
				p.errorTok(ErrCommentNotPermitted, tok, "comments are not permitted")
			}
			continue
		}
		p.tok = tok
		return
	}
}

func (p *parser) errorAt(kind ErrorKind, start, length int, msg string) {
	p.errs = append(p.errs, ParseError{
		Kind:    kind,
		Start:   start,
		Length:  length,
		Message: msg,
	})
}

func (p *parser) errorTok(kind ErrorKind, tok Token, msg string) {
	p.errorAt(kind, tok.Start, tok.Length, msg)
}

// placeholder returns an error placeholder covering tok.
func placeholder(tok Token) *Node {
	return &Node{Kind: Invalid, Start: tok.Start, Length: tok.Length}
}

// parseValue parses a single value starting at the current token.
// Closing brackets, commas and end of input are left unconsumed
// for the enclosing container to handle.
func (p *parser) parseValue() *Node {
	tok := p.tok
	switch tok.Kind {
	case TokenBeginObject:
		return p.parseObject()
	case TokenBeginArray:
		return p.parseArray()
	case TokenString:
		n := p.stringNode(tok)
		p.advance()
		return n
	case TokenNumber:
		n := p.numberNode(tok)
		p.advance()
		return n
	case TokenLiteral:
		var n *Node
		switch tok.Text {
		case "true", "false":
			n = &Node{Kind: Boolean, Start: tok.Start, Length: tok.Length, Bool: tok.Text == "true"}
		case "null":
			n = &Node{Kind: Null, Start: tok.Start, Length: tok.Length}
		default:
			p.errorTok(ErrUnexpectedToken, tok, fmt.Sprintf("invalid literal %q", tok.Text))
			n = placeholder(tok)
		}
		p.advance()
		return n
	case TokenInvalid:
		p.errorTok(ErrInvalidCharacter, tok, fmt.Sprintf("invalid character %q", tok.Text))
		p.advance()
		return placeholder(tok)
	case TokenColon:
		p.errorTok(ErrUnexpectedToken, tok, "expected value, found ':'")
		p.advance()
		return placeholder(tok)
	default:
		p.errorTok(ErrUnexpectedToken, tok, fmt.Sprintf("expected value, found %s", tok.Kind))
		return &Node{Kind: Invalid, Start: tok.Start}
	}
}

// enter increments the nesting depth.
// If the limit is exceeded, it skips the container at the current
// token and returns a placeholder for it.
func (p *parser) enter() *Node {
	if p.depth >= p.maxDepth {
		open := p.tok
		p.errorTok(ErrDepthLimit, open, fmt.Sprintf("nesting depth exceeds limit of %d", p.maxDepth))
		p.skipBalanced()
		return &Node{Kind: Invalid, Start: open.Start, Length: p.prevEnd - open.Start}
	}
	p.depth++
	return nil
}

func (p *parser) parseObject() *Node {
	if n := p.enter(); n != nil {
		return n
	}
	defer func() { p.depth-- }()

	open := p.tok
	p.advance()
	n := &Node{Kind: Object, Start: open.Start}
	var comma *Token
	for {
		tok := p.tok
		switch tok.Kind {
		case TokenEndObject:
			if comma != nil {
				p.errorTok(ErrTrailingComma, *comma, "trailing comma before '}'")
			}
			p.advance()
			n.Length = tok.End() - n.Start
			return n
		case TokenEndArray:
			p.errorTok(ErrUnexpectedToken, tok, "expected '}', found ']'")
			n.Length = p.prevEnd - n.Start
			return n
		case TokenEOF:
			p.errorTok(ErrUnterminated, open, "object is not terminated")
			n.Length = p.prevEnd - n.Start
			return n
		case TokenComma:
			p.errorTok(ErrUnexpectedToken, tok, "expected property name, found ','")
			p.advance()
			continue
		case TokenString:
		default:
			p.errorTok(ErrUnexpectedToken, tok, fmt.Sprintf("expected property name, found %s", tok.Kind))
			p.skipTo()
			if p.tok.Kind == TokenComma {
				c := p.tok
				comma = &c
				p.advance()
			}
			continue
		}

		key := p.stringNode(tok)
		p.advance()
		comma = nil

		var value *Node
		if p.tok.Kind == TokenColon {
			p.advance()
			value = p.parseValue()
		} else {
			p.errorAt(ErrExpectedColon, key.Start, key.Length, fmt.Sprintf("expected ':' after property name %s", tok.Text))
			switch p.tok.Kind {
			case TokenComma, TokenEndObject, TokenEndArray, TokenEOF:
				value = &Node{Kind: Invalid, Start: p.tok.Start}
			default:
				value = p.parseValue()
			}
		}
		n.Members = append(n.Members, Member{Key: key, Value: value})

		switch next := p.tok; next.Kind {
		case TokenComma:
			comma = &next
			p.advance()
		case TokenEndObject, TokenEndArray, TokenEOF:
		case TokenString:
			p.errorTok(ErrExpectedComma, next, "expected ',' or '}' after object member, found string")
		default:
			p.errorTok(ErrExpectedComma, next, fmt.Sprintf("expected ',' or '}' after object member, found %s", next.Kind))
			p.skipTo()
			if p.tok.Kind == TokenComma {
				c := p.tok
				comma = &c
				p.advance()
			}
		}
	}
}

func (p *parser) parseArray() *Node {
	if n := p.enter(); n != nil {
		return n
	}
	defer func() { p.depth-- }()

	open := p.tok
	p.advance()
	n := &Node{Kind: Array, Start: open.Start}
	var comma *Token
	for {
		tok := p.tok
		switch tok.Kind {
		case TokenEndArray:
			if comma != nil {
				p.errorTok(ErrTrailingComma, *comma, "trailing comma before ']'")
			}
			p.advance()
			n.Length = tok.End() - n.Start
			return n
		case TokenEndObject:
			p.errorTok(ErrUnexpectedToken, tok, "expected ']', found '}'")
			n.Length = p.prevEnd - n.Start
			return n
		case TokenEOF:
			p.errorTok(ErrUnterminated, open, "array is not terminated")
			n.Length = p.prevEnd - n.Start
			return n
		case TokenComma:
			p.errorTok(ErrUnexpectedToken, tok, "expected value, found ','")
			n.Items = append(n.Items, &Node{Kind: Invalid, Start: tok.Start})
			comma = &tok
			p.advance()
			continue
		}

		n.Items = append(n.Items, p.parseValue())
		comma = nil

		switch next := p.tok; next.Kind {
		case TokenComma:
			comma = &next
			p.advance()
		case TokenEndArray, TokenEndObject, TokenEOF:
		case TokenString, TokenNumber, TokenLiteral, TokenBeginObject, TokenBeginArray:
			p.errorTok(ErrExpectedComma, next, fmt.Sprintf("expected ',' or ']' after array element, found %s", next.Kind))
		default:
			p.errorTok(ErrExpectedComma, next, fmt.Sprintf("expected ',' or ']' after array element, found %s", next.Kind))
			p.skipTo()
			if p.tok.Kind == TokenComma {
				c := p.tok
				comma = &c
				p.advance()
			}
		}
	}
}

// skipTo skips tokens up to the next comma or closing bracket
// that is not nested inside the skipped text.
func (p *parser) skipTo() {
	nest := 0
	for {
		switch p.tok.Kind {
		case TokenEOF:
			return
		case TokenBeginObject, TokenBeginArray:
			nest++
		case TokenEndObject, TokenEndArray:
			if nest == 0 {
				return
			}
			nest--
		case TokenComma:
			if nest == 0 {
				return
			}
		}
		p.advance()
	}
}

// skipBalanced skips the container starting at the current token,
// without recursion.
func (p *parser) skipBalanced() {
	nest := 0
	for {
		switch p.tok.Kind {
		case TokenEOF:
			return
		case TokenBeginObject, TokenBeginArray:
			nest++
		case TokenEndObject, TokenEndArray:
			nest--
			if nest <= 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

func (p *parser) stringNode(tok Token) *Node {
	n := &Node{Kind: String, Start: tok.Start, Length: tok.Length}
	body := tok.Text[1:]
	if tok.Err == ErrUnterminatedString {
		p.errorTok(ErrUnterminatedString, tok, "string is not terminated")
	} else {
		body = body[:len(body)-1]
	}
	n.Str = p.decodeString(body, tok.Start+1)
	return n
}

// decodeString decodes the escapes in the body of a string
// that starts at offset off. Bad escapes are reported and
// replaced by U+FFFD.
func (p *parser) decodeString(body string, off int) string {
	if !needsDecode(body) {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c < 0x20 {
			p.errorAt(ErrControlCharacter, off+i, 1, fmt.Sprintf("invalid control character %q in string", c))
			sb.WriteByte(c)
			i++
			continue
		}
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			p.errorAt(ErrInvalidEscape, off+i, 1, "incomplete escape sequence")
			sb.WriteRune(utf8.RuneError)
			break
		}
		switch e := body[i+1]; e {
		case '"', '\\', '/':
			sb.WriteByte(e)
			i += 2
		case 'b':
			sb.WriteByte('\b')
			i += 2
		case 'f':
			sb.WriteByte('\f')
			i += 2
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		case 't':
			sb.WriteByte('\t')
			i += 2
		case 'u':
			r, size, ok := escapedRune(body[i:])
			if !ok {
				p.errorAt(ErrInvalidEscape, off+i, size, fmt.Sprintf("invalid unicode escape %q", body[i:i+size]))
				r = utf8.RuneError
			}
			sb.WriteRune(r)
			i += size
		default:
			_, size := utf8.DecodeRuneInString(body[i+1:])
			p.errorAt(ErrInvalidEscape, off+i, 1+size, fmt.Sprintf("invalid escape sequence %q", body[i:i+1+size]))
			sb.WriteRune(utf8.RuneError)
			i += 1 + size
		}
	}
	return sb.String()
}

// needsDecode reports whether body contains an escape
// or a control character.
func needsDecode(body string) bool {
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' || body[i] < 0x20 {
			return true
		}
	}
	return false
}

// escapedRune decodes a \uXXXX escape at the start of s,
// combining a surrogate pair if one follows.
// It returns the number of bytes consumed.
func escapedRune(s string) (rune, int, bool) {
	r1, ok := readHex4(s[2:])
	if !ok {
		return utf8.RuneError, min(len(s), 2+countHex(s[2:])), false
	}
	if !utf16.IsSurrogate(r1) {
		return r1, 6, true
	}
	if r1 >= 0xdc00 || len(s) < 12 || s[6] != '\\' || s[7] != 'u' {
		return utf8.RuneError, 6, false
	}
	r2, ok := readHex4(s[8:])
	if !ok {
		return utf8.RuneError, 6, false
	}
	r := utf16.DecodeRune(r1, r2)
	if r == utf8.RuneError {
		return r, 6, false
	}
	return r, 12, true
}

func readHex4(s string) (rune, bool) {
	if len(s) < 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func countHex(s string) int {
	n := 0
	for n < len(s) && n < 4 && strings.IndexByte("0123456789abcdefABCDEF", s[n]) >= 0 {
		n++
	}
	return n
}

func (p *parser) numberNode(tok Token) *Node {
	if msg := checkNumber(tok.Text); msg != "" {
		p.errorTok(ErrInvalidNumber, tok, fmt.Sprintf("invalid number %q: %s", tok.Text, msg))
		return &Node{Kind: Invalid, Start: tok.Start, Length: tok.Length, Raw: tok.Text}
	}
	f, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		p.errorTok(ErrNumberOutOfRange, tok, fmt.Sprintf("number %s is out of range", tok.Text))
		return &Node{Kind: Invalid, Start: tok.Start, Length: tok.Length, Raw: tok.Text}
	}
	return &Node{Kind: Number, Start: tok.Start, Length: tok.Length, Num: f, Raw: tok.Text}
}

// checkNumber checks s against the JSON number grammar.
// It returns a description of the problem, or "".
func checkNumber(s string) string {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i >= len(s) || !isDigit(s[i]):
		return "missing integer digits"
	case s[i] == '0':
		i++
		if i < len(s) && isDigit(s[i]) {
			return "leading zero"
		}
	default:
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}

	if i < len(s) && s[i] == '.' {
		i++
		j := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == j {
			return "missing digits after decimal point"
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		j := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == j {
			return "missing exponent digits"
		}
	}

	if i != len(s) {
		return fmt.Sprintf("unexpected %q", s[i])
	}
	return ""
}
