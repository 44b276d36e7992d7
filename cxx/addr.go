// Copyright 2012 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cxx

import (
	"errors"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// The evaluator below implements the file address syntax of sam and acme
// (see http://9p.io/sys/doc/sam/sam.html Table II) using Go regular
// expressions, always in (?m) mode:
//
//	/re/    the next match of re
//	n       line n
//	#n      the empty string after rune n
//	a+b a-b b searched or counted forward (backward) from a
//	a,b     from the start of a to the end of b

// addrToByteRange evaluates addr starting at offset start in data and
// returns the byte range it denotes.
func addrToByteRange(addr string, start int, data []byte) (lo, hi int, err error) {
	if addr == "" {
		return start, len(data), nil
	}
	var (
		dir      byte
		prev     byte
		runeAddr bool
	)
	lo, hi = start, start
	for addr != "" && err == nil {
		c := addr[0]
		switch {
		case c == ',':
			if len(addr) == 1 {
				return lo, len(data), nil
			}
			_, hi, err = addrToByteRange(addr[1:], hi, data)
			return lo, hi, err

		case c == '+' || c == '-':
			if prev == '+' || prev == '-' {
				lo, hi, err = addrNumber(data, lo, hi, prev, 1, runeAddr)
			}
			dir = c

		case c == '$':
			lo, hi = len(data), len(data)
			if len(addr) > 1 {
				dir = '+'
			}

		case c == '#':
			runeAddr = true

		case '0' <= c && c <= '9':
			i := 1
			for i < len(addr) && '0' <= addr[i] && addr[i] <= '9' {
				i++
			}
			var n int
			if n, err = strconv.Atoi(addr[:i]); err != nil {
				break
			}
			lo, hi, err = addrNumber(data, lo, hi, dir, n, runeAddr)
			dir, runeAddr, prev = 0, false, c
			addr = addr[i:]
			continue

		case c == '/':
			i, j := 1, 0
		Scan:
			for ; i < len(addr); i++ {
				switch addr[i] {
				case '\\':
					i++
				case '/':
					j = i + 1
					break Scan
				}
			}
			if j == 0 {
				j = i
			}
			lo, hi, err = addrRegexp(data, hi, dir, addr[1:min(i, len(addr))])
			prev = c
			addr = addr[j:]
			continue

		default:
			err = errors.New("invalid address syntax near " + string(c))
		}
		prev = c
		addr = addr[1:]
	}
	if err == nil && dir != 0 {
		lo, hi, err = addrNumber(data, lo, hi, dir, 1, runeAddr)
	}
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// addrNumber moves n lines (or runes, if runeAddr) in direction dir:
// forward from hi for '+' or 0, backward from lo for '-'.
// Direction 0 counts from the start of data. Line n+1 of a file
// ending in a newline is the empty string at len(data); line 0 is
// the empty string at 0.
func addrNumber(data []byte, lo, hi int, dir byte, n int, runeAddr bool) (int, int, error) {
	if dir == 0 {
		lo, hi, dir = 0, 0, '+'
	}
	if runeAddr {
		return addrRunes(data, lo, hi, dir, n)
	}
	switch dir {
	case '+':
		if hi > 0 && data[hi-1] != '\n' {
			hi = lineEnd(data, hi)
		}
		lo = hi
		for ; n > 0; n-- {
			if hi == len(data) {
				if n == 1 {
					return hi, hi, nil
				}
				return 0, 0, errors.New("address out of range")
			}
			lo, hi = hi, lineEnd(data, hi)
		}
		return lo, hi, nil

	case '-':
		lo = lineStart(data, lo)
		hi = lo
		for ; n > 0; n-- {
			if lo == 0 {
				if n == 1 {
					return 0, 0, nil
				}
				return 0, 0, errors.New("address out of range")
			}
			lo, hi = lineStart(data, lo-1), lo
		}
		return lo, hi, nil
	}
	return 0, 0, errors.New("invalid address direction " + string(dir))
}

// addrRunes moves n runes forward from hi or backward from lo.
func addrRunes(data []byte, lo, hi int, dir byte, n int) (int, int, error) {
	pos := hi
	if dir == '-' {
		pos = lo
	}
	for ; n > 0; n-- {
		var size int
		if dir == '-' {
			_, size = utf8.DecodeLastRune(data[:pos])
			pos -= size
		} else {
			_, size = utf8.DecodeRune(data[pos:])
			pos += size
		}
		if size == 0 {
			return 0, 0, errors.New("address out of range")
		}
	}
	return pos, pos, nil
}

// lineStart returns the offset of the start of the line containing pos.
func lineStart(data []byte, pos int) int {
	for pos > 0 && data[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the offset just past the newline ending the line
// containing pos, or len(data) if that line is unterminated.
func lineEnd(data []byte, pos int) int {
	for pos < len(data) && data[pos] != '\n' {
		pos++
	}
	if pos < len(data) {
		pos++
	}
	return pos
}

// addrRegexp finds pattern searching forward from hi, wrapping around
// to the start of data once.
func addrRegexp(data []byte, hi int, dir byte, pattern string) (int, int, error) {
	re, err := regexp.Compile("(?m:" + pattern + ")")
	if err != nil {
		return 0, 0, err
	}
	if dir == '-' {
		return 0, 0, errors.New("reverse search not implemented")
	}
	m := re.FindIndex(data[hi:])
	if m != nil {
		m[0] += hi
		m[1] += hi
	} else if hi > 0 {
		m = re.FindIndex(data)
	}
	if m == nil {
		return 0, 0, errors.New("no match for " + pattern)
	}
	return m[0], m[1], nil
}
