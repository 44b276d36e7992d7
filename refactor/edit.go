// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import "fmt"

// A Replacement replaces Length bytes at Offset in File with Text.
type Replacement struct {
	File   string
	Offset int
	Length int
	Text   string

	// Include asks for the wrapper's header to be included in File.
	Include bool
}

func (r Replacement) String() string {
	return fmt.Sprintf("%s:#%d,#%d -> %q", r.File, r.Offset, r.Offset+r.Length, r.Text)
}

// End returns the offset just past the replaced text.
func (r Replacement) End() int { return r.Offset + r.Length }

// An Edit is the ordered list of replacements for one file.
type Edit struct {
	Name         string
	Replacements []Replacement

	seen map[Replacement]bool
}

// add appends rep unless an identical replacement is already queued,
// and reports whether it did.
func (e *Edit) add(rep Replacement) bool {
	if e.seen[rep] {
		return false
	}
	if e.seen == nil {
		e.seen = make(map[Replacement]bool)
	}
	e.seen[rep] = true
	e.Replacements = append(e.Replacements, rep)
	return true
}

// overlap returns two replacements whose ranges overlap, if any.
// Insertions conflict only with a replacement strictly containing
// their position.
func (e *Edit) overlap() (a, b Replacement, ok bool) {
	for i, x := range e.Replacements {
		for _, y := range e.Replacements[i+1:] {
			if x.Offset < y.End() && y.Offset < x.End() {
				return x, y, true
			}
			if x.Length == 0 && y.Offset < x.Offset && x.Offset < y.End() ||
				y.Length == 0 && x.Offset < y.Offset && y.Offset < x.End() {
				return x, y, true
			}
		}
	}
	return Replacement{}, Replacement{}, false
}
