// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements a Diff function that compares two inputs
// line by line and reports the result in unified diff format.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// context is the number of unchanged lines shown around each change.
const context = 3

type line struct {
	op   byte // ' ', '-' or '+'
	text string
}

// Diff returns a unified diff of old and new, or nil if they are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	a, b, lines := linesToRunes(old, new)
	diffs := diffmatchpatch.New().DiffMainRunes(a, b, false)

	var ops []line
	for _, d := range diffs {
		var op byte
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = ' '
		case diffmatchpatch.DiffDelete:
			op = '-'
		case diffmatchpatch.DiffInsert:
			op = '+'
		}
		for _, r := range d.Text {
			ops = append(ops, line{op, lines[lineIndex(r)]})
		}
	}
	ops = deletesFirst(ops)

	var out bytes.Buffer
	fmt.Fprintf(&out, "diff %s %s\n--- %s\n+++ %s\n", oldName, newName, oldName, newName)
	writeHunks(&out, ops)
	return out.Bytes(), nil
}

// linesToRunes encodes each distinct line of old and new as one rune,
// so that a rune diff of the results is a line diff of the inputs.
// lines maps each rune's index back to its line, newline removed.
func linesToRunes(old, new []byte) (a, b []rune, lines []string) {
	index := make(map[string]rune)
	encode := func(text []byte) []rune {
		var rs []rune
		for _, l := range strings.SplitAfter(string(text), "\n") {
			if l == "" {
				continue
			}
			l = strings.TrimSuffix(l, "\n")
			r, ok := index[l]
			if !ok {
				r = lineRune(len(lines))
				index[l] = r
				lines = append(lines, l)
			}
			rs = append(rs, r)
		}
		return rs
	}
	a = encode(old)
	b = encode(new)
	return a, b, lines
}

// lineRune and lineIndex skip the surrogate range, which does not
// survive conversion to a string.
func lineRune(i int) rune {
	if i >= 0xD800 {
		i += 0x800
	}
	return rune(i)
}

func lineIndex(r rune) int {
	if r >= 0xE000 {
		r -= 0x800
	}
	return int(r)
}

// deletesFirst reorders each run of changed lines so that removals
// precede additions, as diff -u prints them.
func deletesFirst(ops []line) []line {
	out := make([]line, 0, len(ops))
	for i := 0; i < len(ops); {
		if ops[i].op == ' ' {
			out = append(out, ops[i])
			i++
			continue
		}
		j := i
		for j < len(ops) && ops[j].op != ' ' {
			j++
		}
		for _, l := range ops[i:j] {
			if l.op == '-' {
				out = append(out, l)
			}
		}
		for _, l := range ops[i:j] {
			if l.op == '+' {
				out = append(out, l)
			}
		}
		i = j
	}
	return out
}

func writeHunks(out *bytes.Buffer, ops []line) {
	// oldAt[i] and newAt[i] count the old and new lines before ops[i].
	oldAt := make([]int, len(ops)+1)
	newAt := make([]int, len(ops)+1)
	for i, l := range ops {
		oldAt[i+1], newAt[i+1] = oldAt[i], newAt[i]
		if l.op != '+' {
			oldAt[i+1]++
		}
		if l.op != '-' {
			newAt[i+1]++
		}
	}

	for i := 0; i < len(ops); {
		if ops[i].op == ' ' {
			i++
			continue
		}
		start := max(0, i-context)
		end := i
		for end < len(ops) {
			if ops[end].op != ' ' {
				end++
				continue
			}
			// Extend across a short run of context to the next change.
			j := end
			for j < len(ops) && ops[j].op == ' ' {
				j++
			}
			if j < len(ops) && j-end <= 2*context {
				end = j
				continue
			}
			break
		}
		stop := min(len(ops), end+context)

		oldN, newN := oldAt[stop]-oldAt[start], newAt[stop]-newAt[start]
		fmt.Fprintf(out, "@@ -%s +%s @@\n", hunkRange(oldAt[start], oldN), hunkRange(newAt[start], newN))
		for _, l := range ops[start:stop] {
			fmt.Fprintf(out, "%c%s\n", l.op, l.text)
		}
		i = stop
	}
}

func hunkRange(before, n int) string {
	if n == 0 {
		return fmt.Sprintf("%d,0", before)
	}
	if n == 1 {
		return fmt.Sprintf("%d", before+1)
	}
	return fmt.Sprintf("%d,%d", before+1, n)
}

var (
	delColor  = color.New(color.FgRed)
	addColor  = color.New(color.FgGreen)
	hunkColor = color.New(color.FgCyan)
	headColor = color.New(color.Bold)
)

// Colorize highlights a unified diff for a terminal. When color output
// is disabled (for example, stdout is not a terminal) it returns d as is.
func Colorize(d []byte) []byte {
	if color.NoColor {
		return d
	}
	var out bytes.Buffer
	for _, l := range strings.SplitAfter(string(d), "\n") {
		body := strings.TrimSuffix(l, "\n")
		nl := l[len(body):]
		switch {
		case strings.HasPrefix(body, "diff "), strings.HasPrefix(body, "--- "), strings.HasPrefix(body, "+++ "):
			out.WriteString(headColor.Sprint(body))
		case strings.HasPrefix(body, "@@"):
			out.WriteString(hunkColor.Sprint(body))
		case strings.HasPrefix(body, "-"):
			out.WriteString(delColor.Sprint(body))
		case strings.HasPrefix(body, "+"):
			out.WriteString(addColor.Sprint(body))
		default:
			out.WriteString(body)
		}
		out.WriteString(nl)
	}
	return out.Bytes()
}
