// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"strings"

	"rsc.io/rawptr/cxx"
)

// isThirdParty reports whether a declaration in the named file belongs
// to code outside the rewrite.
func (c ThirdPartyConfig) isThirdParty(file string) bool {
	file = strings.ReplaceAll(file, `\`, "/")
	for _, s := range c.AlwaysThirdParty {
		if s != "" && strings.Contains(file, s) {
			return true
		}
	}
	for _, s := range c.FirstParty {
		if s != "" && strings.Contains(file, s) {
			return false
		}
	}
	return c.Marker != "" && strings.Contains(file, c.Marker)
}

// inExternC reports whether the innermost linkage block around a
// declaration is extern "C".
func inExternC(stack []*cxx.Node) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		if n := stack[i]; n.Kind == cxx.LinkageSpecDecl {
			return n.IsExternC()
		}
	}
	return false
}

// isImplicit reports whether field has no text of its own: it backs a
// lambda capture, or sits in an implicitly instantiated template.
func isImplicit(field *cxx.Node, stack []*cxx.Node) bool {
	if field.Implicit {
		return true
	}
	if p := cxx.Parent(stack); p != nil && p.Lambda {
		return true
	}
	for _, n := range stack {
		if n.IsImplicitSpecialization() {
			return true
		}
	}
	return false
}

// qualName returns the name the exclusion file uses for field.
func qualName(field *cxx.Node) string {
	if field.QualName != "" {
		return field.QualName
	}
	return field.Name
}

// InScope applies the location policy to field, whose ancestors are
// stack. The checks are independent; the first failing one is reported.
func (r *Refactor) InScope(field *cxx.Node, stack []*cxx.Node) Reason {
	checkField(field)
	var file string
	if field.Begin.IsFile() {
		file = field.Begin.File
	}
	switch {
	case r.Config.ThirdParty.isThirdParty(file):
		return ThirdParty
	case field.Begin.Macro:
		return InMacro
	case inExternC(stack):
		return InExternC
	case isImplicit(field, stack):
		return Implicit
	case r.Exclusions.Contains(qualName(field)):
		return Excluded
	}
	return Accepted
}

// Classify runs the type classifier and the location policy on field.
func (r *Refactor) Classify(field *cxx.Node, stack []*cxx.Node) Reason {
	record := cxx.Parent(stack)
	if record == nil || !record.IsRecord() {
		internalError("%v is not inside a record", field)
	}
	if reason := Eligible(field, record); reason != Accepted {
		return reason
	}
	return r.InScope(field, stack)
}
