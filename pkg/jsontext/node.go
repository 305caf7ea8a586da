// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the kind of a parse tree node.
type Kind int

const (
	// Invalid is the kind of an error placeholder.
	// It marks a position where the parser expected a value
	// but could not build one.
	Invalid Kind = iota
	Object
	Array
	String
	Number
	Boolean
	Null
)

var kindNames = [...]string{
	Invalid: "invalid",
	Object:  "object",
	Array:   "array",
	String:  "string",
	Number:  "number",
	Boolean: "boolean",
	Null:    "null",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a value in a parse tree.
// Start and Length are byte offsets into the document text
// and exclude surrounding whitespace.
// A Node is owned by its parent and is never modified after parsing.
type Node struct {
	Kind   Kind
	Start  int
	Length int

	// Str is the decoded value of a String.
	Str string
	// Num is the value of a Number.
	Num float64
	// Raw is the source text of a Number.
	Raw string
	// Bool is the value of a Boolean.
	Bool bool

	// Members holds the members of an Object in source order.
	// Duplicate keys are preserved.
	Members []Member
	// Items holds the elements of an Array.
	Items []*Node
}

// Member is an object member. Key is always a String node,
// or an Invalid node if the key was malformed.
type Member struct {
	Key   *Node
	Value *Node
}

// End returns the offset just past the node.
func (n *Node) End() int {
	return n.Start + n.Length
}

// IsPlaceholder reports whether n is an error placeholder.
func (n *Node) IsPlaceholder() bool {
	return n == nil || n.Kind == Invalid
}

// Lookup returns the value of the member named key.
// If the key appears more than once the last one wins.
func (n *Node) Lookup(key string) (*Node, bool) {
	if n == nil || n.Kind != Object {
		return nil, false
	}
	for i := len(n.Members) - 1; i >= 0; i-- {
		m := n.Members[i]
		if m.Key.Kind == String && m.Key.Str == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the distinct member names of an object
// in order of first appearance.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != Object {
		return nil
	}
	seen := make(map[string]bool, len(n.Members))
	keys := make([]string, 0, len(n.Members))
	for _, m := range n.Members {
		if m.Key.Kind != String || seen[m.Key.Str] {
			continue
		}
		seen[m.Key.Str] = true
		keys = append(keys, m.Key.Str)
	}
	return keys
}

// IsInteger reports whether n is a number with no fractional part.
func (n *Node) IsInteger() bool {
	return n != nil && n.Kind == Number && !math.IsInf(n.Num, 0) && math.Trunc(n.Num) == n.Num
}

// String returns a short rendering of the node for messages.
// Containers are abbreviated.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case String:
		return strconv.Quote(n.Str)
	case Number:
		return n.Raw
	case Boolean:
		return strconv.FormatBool(n.Bool)
	case Null:
		return "null"
	case Object:
		return fmt.Sprintf("object with %d members", len(n.Members))
	case Array:
		return fmt.Sprintf("array of length %d", len(n.Items))
	default:
		return "invalid value"
	}
}

// Shape returns a canonical rendering of the tree structure rooted at n.
// Two parses of equivalent text have the same shape.
// Offsets are not included.
func Shape(n *Node) string {
	var sb strings.Builder
	writeShape(&sb, n)
	return sb.String()
}

func writeShape(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	switch n.Kind {
	case Object:
		sb.WriteByte('{')
		for i, m := range n.Members {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeShape(sb, m.Key)
			sb.WriteByte(':')
			writeShape(sb, m.Value)
		}
		sb.WriteByte('}')
	case Array:
		sb.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeShape(sb, item)
		}
		sb.WriteByte(']')
	case Number:
		sb.WriteString(strconv.FormatFloat(n.Num, 'g', -1, 64))
	case Invalid:
		sb.WriteString("<invalid>")
	default:
		sb.WriteString(n.String())
	}
}

// Equal reports whether two nodes are structurally equal.
// Numbers compare by value, objects compare without regard
// to member order, and for duplicate keys the last one wins.
// Placeholders are never equal to anything.
func Equal(a, b *Node) bool {
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Null:
		return true
	case Boolean:
		return a.Bool == b.Bool
	case Number:
		return a.Num == b.Num
	case String:
		return a.Str == b.Str
	case Array:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case Object:
		ak, bk := a.Keys(), b.Keys()
		if len(ak) != len(bk) {
			return false
		}
		for _, k := range ak {
			av, _ := a.Lookup(k)
			bv, ok := b.Lookup(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
