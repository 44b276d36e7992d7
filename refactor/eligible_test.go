// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"strings"
	"testing"

	"rsc.io/rawptr/cxx"
)

func builtin(name string) *cxx.Type   { return &cxx.Type{Kind: cxx.TypeBuiltin, Name: name} }
func pointerTo(t *cxx.Type) *cxx.Type { return &cxx.Type{Kind: cxx.TypePointer, Elem: t} }
func typedef(name string, t *cxx.Type) *cxx.Type {
	return &cxx.Type{Kind: cxx.TypeTypedef, Name: name, Elem: t}
}

var eligibleTypeTests = []struct {
	name string
	t    *cxx.Type
	want Reason
}{
	{"int", builtin("int"), NotPointer},
	{"int*", pointerTo(builtin("int")), Accepted},
	{"int**", pointerTo(pointerTo(builtin("int"))), Accepted},
	{"void*", pointerTo(builtin("void")), Accepted},
	{"Class*", pointerTo(&cxx.Type{Kind: cxx.TypeRecord, Name: "ns::Class"}), Accepted},
	{"Enum*", pointerTo(&cxx.Type{Kind: cxx.TypeEnum, Name: "Enum"}), Accepted},
	{"char*", pointerTo(builtin("char")), UnsupportedPointee},
	{"const char*", pointerTo(&cxx.Type{Kind: cxx.TypeBuiltin, Name: "char", Const: true}), UnsupportedPointee},
	{"wchar_t*", pointerTo(builtin("wchar_t")), UnsupportedPointee},
	{"char16_t*", pointerTo(builtin("char16_t")), UnsupportedPointee},
	{"uint8_t*", pointerTo(typedef("uint8_t", builtin("unsigned char"))), UnsupportedPointee},
	{"Fn*", pointerTo(typedef("Fn", &cxx.Type{Kind: cxx.TypeFunction})), UnsupportedPointee},
	{"void(*)()", pointerTo(&cxx.Type{Kind: cxx.TypeFunction}), UnsupportedPointee},
	{"int S::**", pointerTo(&cxx.Type{Kind: cxx.TypeMemberPointer, Elem: builtin("int")}), UnsupportedPointee},
	{"int(*)[4]", pointerTo(&cxx.Type{Kind: cxx.TypeArray, Elem: builtin("int")}), UnsupportedPointee},
	{"NoNew*", pointerTo(&cxx.Type{Kind: cxx.TypeRecord, Name: "NoNew", Tag: &cxx.Tag{DeletedNew: true}}), UnsupportedPointee},
	{"struct{}*", pointerTo(&cxx.Type{Kind: cxx.TypeElaborated, Elem: &cxx.Type{Kind: cxx.TypeRecord, Tag: &cxx.Tag{Inline: true}}}), UnsupportedPointee},
	{"enum{}*", pointerTo(&cxx.Type{Kind: cxx.TypeEnum, Tag: &cxx.Tag{Inline: true}}), UnsupportedPointee},
	{"IntPtr", typedef("IntPtr", pointerTo(builtin("int"))), NotPointer},
	{"CheckedPtr<int>", &cxx.Type{Kind: cxx.TypeRecord, Name: "CheckedPtr<int>"}, NotPointer},
}

func TestEligibleType(t *testing.T) {
	for _, tt := range eligibleTypeTests {
		if got := eligibleType(tt.t); got != tt.want {
			t.Errorf("eligibleType(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func at(file string, off int) *cxx.Loc { return &cxx.Loc{File: file, Offset: off} }

func newField(name string, off int) *cxx.Node {
	return &cxx.Node{
		Kind:     cxx.FieldDecl,
		Name:     name,
		QualName: "S::" + name,
		Type:     pointerTo(builtin("int")),
		Begin:    at("s.h", off),
		TypeLoc:  at("s.h", off),
		Loc:      at("s.h", off+5),
	}
}

func TestSharedTypeLoc(t *testing.T) {
	// struct S { int* f; int *f2, *f3; };
	f := newField("f", 13)
	f2 := newField("f2", 22)
	f3 := newField("f3", 22)
	f3.Begin = at("s.h", 22)
	macro := newField("m", 22)
	macro.TypeLoc.Macro = true
	s := &cxx.Node{Kind: cxx.CXXRecordDecl, Name: "S", Inner: []*cxx.Node{f, f2, f3, macro}}
	for _, tt := range []struct {
		field *cxx.Node
		want  Reason
	}{
		{f, Accepted},
		{f2, SharedTypeLoc},
		{f3, SharedTypeLoc},
		{macro, Accepted},
	} {
		if got := Eligible(tt.field, s); got != tt.want {
			t.Errorf("Eligible(%s) = %q, want %q", tt.field.Name, got, tt.want)
		}
	}
}

func TestInScope(t *testing.T) {
	r := New(DefaultConfig(), nil)
	excl, err := ParseExclusions(strings.NewReader("S::excluded\n"))
	if err != nil {
		t.Fatal(err)
	}
	r.Exclusions = excl

	record := &cxx.Node{Kind: cxx.CXXRecordDecl, Name: "S"}
	externC := &cxx.Node{Kind: cxx.LinkageSpecDecl, Language: "C"}
	externCXX := &cxx.Node{Kind: cxx.LinkageSpecDecl, Language: "C++"}
	lambda := &cxx.Node{Kind: cxx.CXXRecordDecl, Lambda: true}
	implicit := &cxx.Node{Kind: cxx.ClassTemplateSpecializationDecl, Specialization: "implicit"}
	explicit := &cxx.Node{Kind: cxx.ClassTemplateSpecializationDecl, Specialization: "explicit"}

	inFile := func(file string) *cxx.Node {
		f := newField("f", 0)
		f.Begin.File = file
		return f
	}
	inMacro := newField("f", 0)
	inMacro.Begin.Macro = true
	thirdPartyMacro := inFile("third_party/x/x.h")
	thirdPartyMacro.Begin.Macro = true
	implicitField := newField("f", 0)
	implicitField.Implicit = true

	tests := []struct {
		name  string
		field *cxx.Node
		stack []*cxx.Node
		want  Reason
	}{
		{"plain", newField("f", 0), []*cxx.Node{record}, Accepted},
		{"third party", inFile("third_party/x/x.h"), []*cxx.Node{record}, ThirdParty},
		{"blink", inFile("third_party/blink/renderer/x.h"), []*cxx.Node{record}, Accepted},
		{"v8", inFile("v8/include/v8.h"), []*cxx.Node{record}, ThirdParty},
		{"macro", inMacro, []*cxx.Node{record}, InMacro},
		{"macro in third party", thirdPartyMacro, []*cxx.Node{record}, InMacro},
		{"extern C", newField("f", 0), []*cxx.Node{externC, record}, InExternC},
		{"extern C++ in extern C", newField("f", 0), []*cxx.Node{externC, externCXX, record}, Accepted},
		{"lambda", newField("f", 0), []*cxx.Node{lambda}, Implicit},
		{"implicit field", implicitField, []*cxx.Node{record}, Implicit},
		{"implicit instantiation", newField("f", 0), []*cxx.Node{implicit}, Implicit},
		{"nested in implicit instantiation", newField("f", 0), []*cxx.Node{implicit, record}, Implicit},
		{"explicit specialization", newField("f", 0), []*cxx.Node{explicit}, Accepted},
		{"excluded", newField("excluded", 0), []*cxx.Node{record}, Excluded},
	}
	for _, tt := range tests {
		if got := r.InScope(tt.field, tt.stack); got != tt.want {
			t.Errorf("%s: InScope = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMissingInformation(t *testing.T) {
	r := New(DefaultConfig(), nil)
	record := &cxx.Node{Kind: cxx.CXXRecordDecl, Name: "S"}
	tests := []struct {
		name  string
		edit  func(f *cxx.Node)
		stack []*cxx.Node
	}{
		{"no type", func(f *cxx.Node) { f.Type = nil }, []*cxx.Node{record}},
		{"no begin", func(f *cxx.Node) { f.Begin = nil }, []*cxx.Node{record}},
		{"no name location", func(f *cxx.Node) { f.Loc = nil }, []*cxx.Node{record}},
		{"no type location", func(f *cxx.Node) { f.TypeLoc = nil }, []*cxx.Node{record}},
		{"no pointee", func(f *cxx.Node) { f.Type.Elem = nil }, []*cxx.Node{record}},
		{"outside record", func(f *cxx.Node) {}, []*cxx.Node{{Kind: cxx.NamespaceDecl}}},
	}
	for _, tt := range tests {
		f := newField("f", 0)
		tt.edit(f)
		record.Inner = []*cxx.Node{f}
		func() {
			defer func() {
				e := recover()
				if s, ok := e.(string); !ok || !strings.HasPrefix(s, "internal error: ") {
					t.Errorf("%s: Classify panicked with %v, want internal error", tt.name, e)
				}
			}()
			r.Classify(f, tt.stack)
		}()
	}
}

func TestClassifyRecordKinds(t *testing.T) {
	r := New(DefaultConfig(), nil)
	for _, kind := range []cxx.Kind{
		cxx.RecordDecl,
		cxx.CXXRecordDecl,
		cxx.ClassTemplatePartialSpecializationDecl,
		cxx.ClassTemplateSpecializationDecl,
	} {
		f := newField("f", 0)
		record := &cxx.Node{Kind: kind, Name: "S", Specialization: "explicit", Inner: []*cxx.Node{f}}
		if got := r.Classify(f, []*cxx.Node{record}); got != Accepted {
			t.Errorf("Classify(field of %s) = %q, want %q", kind, got, Accepted)
		}
	}
}
