// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"rsc.io/rawptr/cxx"
)

// A Pass is the analysis of one translation unit: the verdict for each
// field and the edits to make, grouped by file.
type Pass struct {
	r    *Refactor
	Unit *cxx.Unit
	Lang cxx.Language

	// edits is keyed by file name. files lists the keys in the order
	// their first edit was made.
	edits map[string]*Edit
	files []string

	// Verdicts maps each field declaration seen to its Reason.
	Verdicts map[*cxx.Node]Reason

	// uses are member expressions in a context that needs the
	// accessor, if their field is rewritten.
	uses []*cxx.Node
}

// Run analyzes the unit in a single traversal.
//
// Run fails only if the unit breaks the frontend contract by naming
// zero or several input files. A unit whose language cannot host the
// wrapper is analyzed like any other; Flush prints nothing for it.
// That includes a language Run does not recognize, which is logged.
func (r *Refactor) Run(u *cxx.Unit) (*Pass, error) {
	lang, err := u.Language()
	if err != nil {
		return nil, err
	}
	if lang == cxx.LangUnknown {
		in, _ := u.Input()
		r.Log.Warn("unknown language, output suppressed", "unit", u.Name, "language", in.Language)
	}
	p := &Pass{
		r:        r,
		Unit:     u,
		Lang:     lang,
		edits:    make(map[string]*Edit),
		Verdicts: make(map[*cxx.Node]Reason),
	}
	cxx.Inspect(u, func(n *cxx.Node, stack []*cxx.Node) bool {
		switch n.Kind {
		case cxx.FieldDecl:
			p.field(n, stack)
		default:
			p.uses = append(p.uses, p.affectedUses(n)...)
		}
		return true
	})
	p.rewriteUses()

	log := r.Log.With("unit", u.Name)
	accepted := 0
	for _, reason := range p.Verdicts {
		if reason == Accepted {
			accepted++
		}
	}
	log.Debug("analyzed unit", "lang", lang, "fields", len(p.Verdicts), "accepted", accepted, "files", len(p.files))
	return p, nil
}

// field classifies a field declaration and, if it is accepted,
// queues the rewrite of its declared type.
func (p *Pass) field(n *cxx.Node, stack []*cxx.Node) {
	reason := p.r.Classify(n, stack)
	p.Verdicts[n] = reason
	if reason != Accepted {
		p.r.Log.Debug("skipping field", "field", qualName(n), "reason", string(reason))
		return
	}
	rep, ok := p.r.declReplacement(n)
	if !ok {
		p.r.Log.Debug("skipping field", "field", qualName(n), "reason", "name not in declaration text")
		p.Verdicts[n] = InMacro
		return
	}
	p.add(rep)
}

// Accepted reports whether field was accepted for rewriting.
func (p *Pass) Accepted(field *cxx.Node) bool {
	reason, ok := p.Verdicts[field]
	return ok && reason == Accepted
}

func (p *Pass) add(rep Replacement) {
	ed := p.edits[rep.File]
	if ed == nil {
		ed = &Edit{Name: rep.File}
		p.edits[rep.File] = ed
		p.files = append(p.files, rep.File)
	}
	ed.add(rep)
}

// Edits returns the per-file edits in the order files were first
// touched.
func (p *Pass) Edits() []*Edit {
	var list []*Edit
	for _, name := range p.files {
		list = append(list, p.edits[name])
	}
	return list
}
