// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"sort"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

// Document is a parsed JSON text.
// It is immutable once built and safe for concurrent use.
type Document struct {
	// URI identifies the document. It is used as a cache key
	// and as the base for resolving relative references.
	URI string
	// Text is the source text.
	Text string
	// Root is the top-level value, or nil if the text
	// did not contain any value.
	Root *Node
	// Errors lists the syntax errors in source order.
	Errors []ParseError

	once  sync.Once
	lines []int // byte offset of the start of each line
	ascii bool
}

// NewFailedDocument returns an empty document for a text that
// could not be retrieved. It has no root and a single error.
func NewFailedDocument(uri, message string) *Document {
	return &Document{
		URI: uri,
		Errors: []ParseError{{
			Kind:    ErrFetch,
			Message: message,
		}},
	}
}

// Valid reports whether the document parsed without errors.
func (d *Document) Valid() bool {
	return d.Root != nil && len(d.Errors) == 0
}

func (d *Document) index() {
	d.once.Do(func() {
		d.lines = append(d.lines, 0)
		d.ascii = true
		for i := 0; i < len(d.Text); i++ {
			switch c := d.Text[i]; {
			case c == '\n':
				d.lines = append(d.lines, i+1)
			case c >= utf8.RuneSelf:
				d.ascii = false
			}
		}
	})
}

// CharOffset converts a byte offset into a character offset,
// counting UTF-16 code units as JavaScript and .NET strings do.
// A character outside the Basic Multilingual Plane counts twice.
func (d *Document) CharOffset(off int) int {
	off = min(max(off, 0), len(d.Text))
	d.index()
	if d.ascii {
		return off
	}
	n := 0
	for _, r := range d.Text[:off] {
		n += utf16.RuneLen(r)
	}
	return n
}

// ByteOffset converts a character offset, as returned by
// CharOffset, back into a byte offset. An offset inside a
// surrogate pair maps to the start of the character.
func (d *Document) ByteOffset(chars int) int {
	d.index()
	if d.ascii {
		return min(max(chars, 0), len(d.Text))
	}
	n := 0
	for i, r := range d.Text {
		n += utf16.RuneLen(r)
		if n > chars {
			return i
		}
	}
	return len(d.Text)
}

// Position returns the 1-based line and column of a byte offset.
// The column counts Unicode code points.
func (d *Document) Position(off int) (line, col int) {
	off = min(max(off, 0), len(d.Text))
	d.index()
	i := sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > off }) - 1
	return i + 1, utf8.RuneCountInString(d.Text[d.lines[i]:off]) + 1
}

// Line returns the text of the 1-based line, without its newline.
func (d *Document) Line(line int) string {
	d.index()
	if line < 1 || line > len(d.lines) {
		return ""
	}
	start := d.lines[line-1]
	end := len(d.Text)
	if line < len(d.lines) {
		end = d.lines[line] - 1
	}
	if end > start && d.Text[end-1] == '\r' {
		end--
	}
	return d.Text[start:end]
}
