// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import "fmt"

// ErrorKind classifies a syntax error.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrUnexpectedToken
	ErrInvalidCharacter
	ErrUnterminatedString
	ErrUnterminatedComment
	ErrUnterminated
	ErrExpectedColon
	ErrExpectedComma
	ErrTrailingComma
	ErrTrailingContent
	ErrEmptyDocument
	ErrInvalidEscape
	ErrControlCharacter
	ErrInvalidNumber
	ErrNumberOutOfRange
	ErrDepthLimit
	ErrCommentNotPermitted
	ErrFetch
)

var errorKindNames = [...]string{
	ErrNone:                "none",
	ErrUnexpectedToken:     "unexpected token",
	ErrInvalidCharacter:    "invalid character",
	ErrUnterminatedString:  "unterminated string",
	ErrUnterminatedComment: "unterminated comment",
	ErrUnterminated:        "unterminated value",
	ErrExpectedColon:       "expected colon",
	ErrExpectedComma:       "expected comma",
	ErrTrailingComma:       "trailing comma",
	ErrTrailingContent:     "trailing content",
	ErrEmptyDocument:       "empty document",
	ErrInvalidEscape:       "invalid escape",
	ErrControlCharacter:    "control character in string",
	ErrInvalidNumber:       "invalid number",
	ErrNumberOutOfRange:    "number out of range",
	ErrDepthLimit:          "depth limit exceeded",
	ErrCommentNotPermitted: "comment not permitted",
	ErrFetch:               "fetch failed",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is a recoverable syntax error found while parsing.
// Start and Length are byte offsets and always lie within the source text.
type ParseError struct {
	Kind    ErrorKind
	Start   int
	Length  int
	Message string
}

// Error implements the error interface.
func (pe *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", pe.Start, pe.Message)
}
