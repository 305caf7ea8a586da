// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"strings"
	"time"
)

// dateTimeFormat requires an RFC 3339 date-time.
func dateTimeFormat(s string) error {
	date, rest, ok := strings.Cut(s, "T")
	if !ok {
		date, rest, ok = strings.Cut(s, "t")
	}
	if !ok || !isValidDate(date) || !isValidTime(rest) {
		return fmt.Errorf("%q is not a valid date-time", s)
	}
	return nil
}

// dateFormat requires an RFC 3339 full-date, YYYY-MM-DD.
func dateFormat(s string) error {
	if !isValidDate(s) {
		return fmt.Errorf("%q is not a valid date", s)
	}
	return nil
}

// timeFormat requires an RFC 3339 full-time.
func timeFormat(s string) error {
	if !isValidTime(s) {
		return fmt.Errorf("%q is not a valid time", s)
	}
	return nil
}

// num parses a run of exactly n ASCII digits at the start of s.
func num(s string, n int) (int, bool) {
	if len(s) < n {
		return 0, false
	}
	v := 0
	for i := range n {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

func isValidDate(s string) bool {
	if len(s) != len("2006-01-02") || s[4] != '-' || s[7] != '-' {
		return false
	}
	year, ok1 := num(s, 4)
	month, ok2 := num(s[5:], 2)
	day, ok3 := num(s[8:], 2)
	if !ok1 || !ok2 || !ok3 || month < 1 || month > 12 || day < 1 {
		return false
	}
	// Day 0 of the following month is the last day of this one.
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return day <= last
}

// isValidTime reports whether s is HH:MM:SS[.frac](Z|+HH:MM|-HH:MM).
// A leap second is accepted only at 23:59:60 UTC.
func isValidTime(s string) bool {
	if len(s) < len("15:04:05Z") || s[2] != ':' || s[5] != ':' {
		return false
	}
	hour, ok1 := num(s, 2)
	minute, ok2 := num(s[3:], 2)
	second, ok3 := num(s[6:], 2)
	if !ok1 || !ok2 || !ok3 || hour > 23 || minute > 59 || second > 60 {
		return false
	}

	rest := s[8:]
	if strings.HasPrefix(rest, ".") {
		i := 1
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 1 {
			return false
		}
		rest = rest[i:]
	}

	offset := 0
	switch {
	case rest == "Z" || rest == "z":
	case len(rest) == len("+07:00") && (rest[0] == '+' || rest[0] == '-') && rest[3] == ':':
		oh, ok1 := num(rest[1:], 2)
		om, ok2 := num(rest[4:], 2)
		if !ok1 || !ok2 || oh > 23 || om > 59 {
			return false
		}
		offset = oh*60 + om
		if rest[0] == '+' {
			offset = -offset
		}
	default:
		return false
	}

	if second == 60 {
		utc := ((hour*60+minute+offset)%(24*60) + 24*60) % (24 * 60)
		return utc == 23*60+59
	}
	return true
}
