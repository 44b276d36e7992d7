// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"rsc.io/rawptr/cxx"
)

var declTextTests = []struct {
	name    string
	t       *cxx.Type
	mutable bool
	want    string
}{
	{"int*", pointerTo(builtin("int")), false, "CheckedPtr<int> "},
	{"const int*", pointerTo(&cxx.Type{Kind: cxx.TypeBuiltin, Name: "int", Const: true}), false, "CheckedPtr<const int> "},
	{"int* const", &cxx.Type{Kind: cxx.TypePointer, Const: true, Elem: builtin("int")}, false, "const CheckedPtr<int> "},
	{"int* volatile", &cxx.Type{Kind: cxx.TypePointer, Volatile: true, Elem: builtin("int")}, false, "volatile CheckedPtr<int> "},
	{"mutable int*", pointerTo(builtin("int")), true, "mutable CheckedPtr<int> "},
	{"ns::Pointee*", pointerTo(&cxx.Type{Kind: cxx.TypeRecord, Name: "blink::Pointee"}), false, "CheckedPtr<Pointee> "},
	{"Outer::Inner*", pointerTo(&cxx.Type{Kind: cxx.TypeElaborated, Name: "a::Outer::Inner"}), false, "CheckedPtr<Inner> "},
	{"Vec<a::T>*", pointerTo(&cxx.Type{Kind: cxx.TypeRecord, Name: "base::Vec<a::T>"}), false, "CheckedPtr<Vec<a::T>> "},
	{"int**", pointerTo(pointerTo(builtin("int"))), false, "CheckedPtr<int*> "},
	{"Handle*", pointerTo(typedef("base::Handle", builtin("int"))), false, "CheckedPtr<Handle> "},
}

func TestDeclText(t *testing.T) {
	r := New(DefaultConfig(), nil)
	for _, tt := range declTextTests {
		f := newField("f", 0)
		f.Type = tt.t
		f.Mutable = tt.mutable
		if got := r.declText(f); got != tt.want {
			t.Errorf("declText(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDeclReplacement(t *testing.T) {
	r := New(DefaultConfig(), nil)
	f := newField("f", 10)
	rep, ok := r.declReplacement(f)
	want := Replacement{File: "s.h", Offset: 10, Length: 5, Text: "CheckedPtr<int> ", Include: true}
	if !ok || rep != want {
		t.Errorf("declReplacement = %v, %v, want %v, true", rep, ok, want)
	}

	other := newField("f", 10)
	other.Loc.File = "names.inc"
	backward := newField("f", 10)
	backward.Loc.Offset = 2
	macro := newField("f", 10)
	macro.Loc.Macro = true
	for _, f := range []*cxx.Node{other, backward, macro} {
		if rep, ok := r.declReplacement(f); ok {
			t.Errorf("declReplacement(name at %v) = %v, want failure", f.Loc, rep)
		}
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		reps []Replacement
		ok   bool
	}{
		{[]Replacement{{Offset: 0, Length: 5}, {Offset: 5, Length: 5}}, false},
		{[]Replacement{{Offset: 0, Length: 5}, {Offset: 5}}, false},
		{[]Replacement{{Offset: 5}, {Offset: 5}}, false},
		{[]Replacement{{Offset: 0, Length: 5}, {Offset: 4, Length: 2}}, true},
		{[]Replacement{{Offset: 0, Length: 5}, {Offset: 1, Length: 2}}, true},
		{[]Replacement{{Offset: 3}, {Offset: 0, Length: 5}}, true},
	}
	for _, tt := range tests {
		ed := &Edit{Replacements: tt.reps}
		if _, _, ok := ed.overlap(); ok != tt.ok {
			t.Errorf("overlap(%v) = %v, want %v", tt.reps, ok, tt.ok)
		}
	}
}

func TestEditDedup(t *testing.T) {
	ed := new(Edit)
	rep := Replacement{File: "s.h", Offset: 3, Text: ".get()"}
	if !ed.add(rep) || ed.add(rep) {
		t.Errorf("add did not deduplicate")
	}
	if !ed.add(Replacement{File: "s.h", Offset: 4, Text: ".get()"}) {
		t.Errorf("add dropped a distinct replacement")
	}
	if len(ed.Replacements) != 2 {
		t.Errorf("have %d replacements, want 2", len(ed.Replacements))
	}
}

func newPass(r *Refactor, lang cxx.Language) *Pass {
	return &Pass{
		r:        r,
		Unit:     &cxx.Unit{Name: "u.json"},
		Lang:     lang,
		edits:    make(map[string]*Edit),
		Verdicts: make(map[*cxx.Node]Reason),
	}
}

func TestFlushEscapesNewlines(t *testing.T) {
	var out bytes.Buffer
	r := New(DefaultConfig(), nil)
	r.Stdout = &out
	p := newPass(r, cxx.LangCXX)
	p.add(Replacement{File: "a.h", Offset: 1, Length: 2, Text: "x\ny\n"})
	if err := r.Flush(p); err != nil {
		t.Fatal(err)
	}
	want := BeginEdits + "\nr:::a.h:::1:::2:::x\x00y\x00\n" + EndEdits + "\n"
	if out.String() != want {
		t.Errorf("Flush wrote %q, want %q", out.String(), want)
	}
}

func TestFlushOverlap(t *testing.T) {
	r := New(DefaultConfig(), nil)
	r.Stdout = new(bytes.Buffer)
	p := newPass(r, cxx.LangCXX)
	p.add(Replacement{File: "a.h", Offset: 0, Length: 5, Text: "x"})
	p.add(Replacement{File: "a.h", Offset: 3, Text: ".get()"})
	defer func() {
		if e, _ := recover().(string); !strings.HasPrefix(e, "internal error: overlapping replacements") {
			t.Errorf("Flush panicked with %q, want overlap error", e)
		}
	}()
	r.Flush(p)
}

func TestRunContract(t *testing.T) {
	r := New(DefaultConfig(), nil)
	for _, inputs := range [][]*cxx.Input{
		nil,
		{{File: "a.cc", Language: "c++"}, {File: "b.cc", Language: "c++"}},
	} {
		if _, err := r.Run(&cxx.Unit{Name: "u.json", Inputs: inputs}); err == nil {
			t.Errorf("Run with inputs %v succeeded, want error", inputs)
		}
	}
}

func TestRunUnknownLanguage(t *testing.T) {
	var logs, stdout bytes.Buffer
	r := New(DefaultConfig(), slog.New(slog.NewTextHandler(&logs, nil)))
	r.Stdout = &stdout
	field := newField("p", 0)
	u := &cxx.Unit{
		Name:   "u.json",
		Inputs: []*cxx.Input{{File: "a.f", Language: "fortran"}},
		Inner:  []*cxx.Node{{Kind: cxx.CXXRecordDecl, Name: "S", Inner: []*cxx.Node{field}}},
	}
	p, err := r.Run(u)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.Lang != cxx.LangUnknown || !p.Accepted(field) {
		t.Errorf("Run: lang %v, accepted %v, want unknown, true", p.Lang, p.Accepted(field))
	}
	if err := r.Flush(p); err != nil {
		t.Fatal(err)
	}
	if stdout.Len() != 0 {
		t.Errorf("Flush printed %q, want nothing", stdout.String())
	}
	if !strings.Contains(logs.String(), `level=WARN msg="unknown language, output suppressed" unit=u.json language=fortran`) {
		t.Errorf("log = %q, want unknown language warning", logs.String())
	}
}
