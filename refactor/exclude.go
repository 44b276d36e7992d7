// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Exclusions is a set of fully-qualified field names that are never
// rewritten. It is read-only once loaded; a nil *Exclusions is empty.
//
// The file format is one name per line, like
//
//	autofill::AddressField::address1_  # some comment
//	WTF::HashTable::table_
//
// '#' starts a comment. Blank and comment-only lines are ignored.
// Templates are listed without their template arguments.
type Exclusions struct {
	names map[string]bool
}

// ParseExclusions reads an exclusion list.
func ParseExclusions(r io.Reader) (*Exclusions, error) {
	e := &Exclusions{names: make(map[string]bool)}
	s := bufio.NewScanner(r)
	for s.Scan() {
		line, _, _ := strings.Cut(s.Text(), "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		e.names[line] = true
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadExclusions reads the exclusion list in the named file.
func LoadExclusions(file string) (*Exclusions, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("cannot open the exclude-fields file: %w", err)
	}
	defer f.Close()
	e, err := ParseExclusions(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return e, nil
}

// Contains reports whether the qualified name is excluded.
func (e *Exclusions) Contains(qualName string) bool {
	return e != nil && e.names[qualName]
}

// Len returns the number of excluded names.
func (e *Exclusions) Len() int {
	if e == nil {
		return 0
	}
	return len(e.names)
}
