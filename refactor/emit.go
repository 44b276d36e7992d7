// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bufio"
	"fmt"
	"strings"
)

// Markers and record tags of the output stream. A unit's block looks
// like
//
//	==== BEGIN EDITS ====
//	r:::<file>:::<offset>:::<length>:::<text>
//	include-user-header:::<file>:::-1:::-1:::<header>
//	==== END EDITS ====
//
// Newlines in <text> are written as NUL bytes so that every record is
// one line.
const (
	BeginEdits    = "==== BEGIN EDITS ===="
	EndEdits      = "==== END EDITS ===="
	Sep           = ":::"
	ReplaceTag    = "r"
	IncludeTag    = "include-user-header"
	newlineEscape = "\x00"
)

// Flush writes the unit's block to r.Stdout.
//
// Nothing at all is written for a unit whose language has no class
// templates (C, Objective-C, assembly, IR and the like), whatever the
// analysis found.
//
// The first replacement that asks for an include in a file is followed
// by an include record, once per file for the whole run.
func (r *Refactor) Flush(p *Pass) error {
	if !p.Lang.HasClasses() {
		r.Log.Debug("suppressing output", "unit", p.Unit.Name, "lang", p.Lang)
		return nil
	}
	for _, ed := range p.Edits() {
		if a, b, ok := ed.overlap(); ok {
			internalError("overlapping replacements %v and %v", a, b)
		}
	}

	w := bufio.NewWriter(r.Stdout)
	fmt.Fprintln(w, BeginEdits)
	for _, ed := range p.Edits() {
		for _, rep := range ed.Replacements {
			text := strings.ReplaceAll(rep.Text, "\n", newlineEscape)
			fmt.Fprintf(w, "%s%s%s%s%d%s%d%s%s\n", ReplaceTag, Sep, rep.File, Sep, rep.Offset, Sep, rep.Length, Sep, text)
			if rep.Include && r.Config.Include != "" && !r.included[rep.File] {
				r.included[rep.File] = true
				fmt.Fprintf(w, "%s%s%s%s-1%s-1%s%s\n", IncludeTag, Sep, rep.File, Sep, Sep, Sep, r.Config.Include)
			}
		}
	}
	fmt.Fprintln(w, EndEdits)
	return w.Flush()
}
