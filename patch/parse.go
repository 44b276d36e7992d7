// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package patch reads the replacement streams written by rawptr
// rewrite, possibly concatenated from many runs, and applies them to
// the source tree one file at a time.
package patch

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"rsc.io/rawptr/refactor"
)

// A Set is the merged, deduplicated edits for a tree.
type Set struct {
	files map[string]*File
}

// A File is every edit for one file.
type File struct {
	Name         string
	Replacements []refactor.Replacement
	Headers      []string

	seen map[string]bool
}

// Parse reads replacement streams from r.
//
// Only records inside a complete BEGIN/END block are kept: a block
// cut short by a crashed run is dropped whole. The same record
// produced by several units (for a shared header) is kept once.
func Parse(r io.Reader) (*Set, error) {
	s := &Set{files: make(map[string]*File)}
	var (
		block   []string
		inBlock bool
		lineno  int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 16<<20)
	for sc.Scan() {
		lineno++
		line := sc.Text()
		switch {
		case line == refactor.BeginEdits:
			block, inBlock = block[:0], true
		case line == refactor.EndEdits:
			if !inBlock {
				return nil, fmt.Errorf("line %d: %s without %s", lineno, refactor.EndEdits, refactor.BeginEdits)
			}
			for _, rec := range block {
				if err := s.add(rec); err != nil {
					return nil, err
				}
			}
			inBlock = false
		case inBlock:
			block = append(block, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Set) add(rec string) error {
	f := strings.SplitN(rec, refactor.Sep, 5)
	if len(f) != 5 {
		return fmt.Errorf("malformed record %q", rec)
	}
	tag, name := f[0], f[1]
	file := s.files[name]
	if file == nil {
		file = &File{Name: name, seen: make(map[string]bool)}
		s.files[name] = file
	}
	if file.seen[rec] {
		return nil
	}
	file.seen[rec] = true

	switch tag {
	case refactor.ReplaceTag:
		off, err1 := strconv.Atoi(f[2])
		n, err2 := strconv.Atoi(f[3])
		if err1 != nil || err2 != nil || off < 0 || n < 0 {
			return fmt.Errorf("malformed record %q", rec)
		}
		file.Replacements = append(file.Replacements, refactor.Replacement{
			File:   name,
			Offset: off,
			Length: n,
			Text:   strings.ReplaceAll(f[4], "\x00", "\n"),
		})
	case refactor.IncludeTag:
		file.Headers = append(file.Headers, f[4])
	default:
		return fmt.Errorf("unknown record type %q", tag)
	}
	return nil
}

// Files returns the files with edits, sorted by name.
func (s *Set) Files() []*File {
	var list []*File
	for _, f := range s.files {
		list = append(list, f)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Len returns the number of files with edits.
func (s *Set) Len() int { return len(s.files) }
