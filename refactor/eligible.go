// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import "rsc.io/rawptr/cxx"

// A Reason says why a field is left alone. The empty Reason accepts.
type Reason string

const (
	Accepted           Reason = ""
	NotPointer         Reason = "not a pointer"
	UnsupportedPointee Reason = "unsupported pointee type"
	SharedTypeLoc      Reason = "type shared with another declarator"
	ThirdParty         Reason = "third-party location"
	InMacro            Reason = "declared in macro expansion"
	InExternC          Reason = "inside extern \"C\""
	Implicit           Reason = "implicit declaration"
	Excluded           Reason = "listed in exclusion file"
)

// eligibleType reports whether t is a single-level pointer whose
// pointee the wrapper can hold. Function, member-pointer, character
// and array pointees are rejected after alias resolution, as are
// classes that delete operator new and tags declared inline with the
// field.
func eligibleType(t *cxx.Type) Reason {
	if !t.IsPointer() {
		return NotPointer
	}
	pointee := t.Pointee()
	if pointee == nil {
		internalError("pointer type without pointee")
	}
	u := pointee.Desugar()
	if u == nil {
		internalError("pointee %q resolves to nothing", pointee.Name)
	}
	switch u.Kind {
	case cxx.TypeFunction, cxx.TypeMemberPointer, cxx.TypeArray:
		return UnsupportedPointee
	case cxx.TypeRecord, cxx.TypeEnum:
		if u.Tag != nil && (u.Tag.Inline || u.Tag.DeletedNew) {
			return UnsupportedPointee
		}
	}
	if u.IsChar() {
		return UnsupportedPointee
	}
	return Accepted
}

// hasUniqueTypeLoc reports whether no other field of record starts its
// type at the same location as field. In
//
//	struct S { int f; int f2, f3; };
//
// f qualifies, f2 and f3 do not: rewriting either would rewrite the
// shared specifier for both.
func hasUniqueTypeLoc(field, record *cxx.Node) bool {
	self := *field.TypeLoc
	for _, f := range record.Inner {
		if f == field || f.Kind != cxx.FieldDecl {
			continue
		}
		if f.TypeLoc == nil {
			internalError("%v has no type location", f)
		}
		if f.TypeLoc.File == self.File && f.TypeLoc.Offset == self.Offset && f.TypeLoc.Macro == self.Macro {
			return false
		}
	}
	return true
}

// Eligible classifies the declared type of field, a member of record.
func Eligible(field, record *cxx.Node) Reason {
	checkField(field)
	if r := eligibleType(field.Type); r != Accepted {
		return r
	}
	if !hasUniqueTypeLoc(field, record) {
		return SharedTypeLoc
	}
	return Accepted
}

// checkField panics if field lacks what the frontend must supply.
func checkField(field *cxx.Node) {
	switch {
	case field.Kind != cxx.FieldDecl:
		internalError("%v is not a field", field)
	case field.Type == nil:
		internalError("%v has no type", field)
	case field.Begin == nil:
		internalError("%v has no begin location", field)
	case field.Loc == nil:
		internalError("%v has no name location", field)
	case field.TypeLoc == nil:
		internalError("%v has no type location", field)
	}
}
