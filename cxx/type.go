// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cxx

import "strings"

// A TypeKind identifies the form of a Type.
type TypeKind string

const (
	TypeBuiltin       TypeKind = "builtin"
	TypePointer       TypeKind = "pointer"
	TypeMemberPointer TypeKind = "memberPointer"
	TypeFunction      TypeKind = "function"
	TypeArray         TypeKind = "array"
	TypeRecord        TypeKind = "record"
	TypeEnum          TypeKind = "enum"
	TypeTypedef       TypeKind = "typedef"
	TypeElaborated    TypeKind = "elaborated"
	TypeAuto          TypeKind = "auto"
)

// A Type is a resolved type as reported by the frontend.
//
// Sugar (typedefs, using-aliases, elaborated names) is kept: a typedef Type
// carries its alias Name and the aliased type in Elem. Qualifiers belong to
// the Type they apply to, wherever they were spelled in the source.
type Type struct {
	Kind     TypeKind `json:"kind" msgpack:"kind"`
	Name     string   `json:"name,omitempty" msgpack:"name,omitempty"`
	Const    bool     `json:"const,omitempty" msgpack:"const,omitempty"`
	Volatile bool     `json:"volatile,omitempty" msgpack:"volatile,omitempty"`
	Elem     *Type    `json:"elem,omitempty" msgpack:"elem,omitempty"`
	Tag      *Tag     `json:"tag,omitempty" msgpack:"tag,omitempty"`
}

// A Tag describes the declaration behind a record or enum type.
type Tag struct {
	// Inline reports that the tag was declared as part of a variable's
	// type specifier (struct { int i; }* p) rather than on its own.
	Inline bool `json:"inline,omitempty" msgpack:"inline,omitempty"`

	// DeletedNew reports that the class declares operator new as deleted.
	DeletedNew bool `json:"deletedNew,omitempty" msgpack:"deletedNew,omitempty"`
}

func (t *Type) IsPointer() bool { return t != nil && t.Kind == TypePointer }

// Pointee returns the element type of a pointer, or nil.
func (t *Type) Pointee() *Type {
	if !t.IsPointer() {
		return nil
	}
	return t.Elem
}

// Desugar strips typedef and elaborated sugar and returns the
// underlying type. Qualifiers on the sugar are not carried over;
// callers that care about them look at the sugared type.
func (t *Type) Desugar() *Type {
	for t != nil && (t.Kind == TypeTypedef || t.Kind == TypeElaborated) {
		t = t.Elem
	}
	return t
}

var charNames = map[string]bool{
	"char":          true,
	"signed char":   true,
	"unsigned char": true,
	"wchar_t":       true,
	"char8_t":       true,
	"char16_t":      true,
	"char32_t":      true,
}

// IsChar reports whether t is a character type of any width.
func (t *Type) IsChar() bool {
	return t != nil && t.Kind == TypeBuiltin && charNames[t.Name]
}

// Spell returns the spelling of t with leading qualifiers and with the
// enclosing scope of named types suppressed: blink::Pointee prints as
// Pointee, SomeClass const as const SomeClass.
func (t *Type) Spell() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	spell(&b, t)
	return b.String()
}

func spell(b *strings.Builder, t *Type) {
	switch t.Kind {
	case TypePointer:
		spell(b, t.Elem)
		b.WriteString("*")
		quals(b, t, true)
		return
	case TypeAuto:
		quals(b, t, false)
		b.WriteString("auto")
		return
	}
	quals(b, t, false)
	switch t.Kind {
	case TypeBuiltin:
		b.WriteString(t.Name)
	default:
		b.WriteString(unscoped(t.Name))
	}
}

func quals(b *strings.Builder, t *Type, trailing bool) {
	var q []string
	if t.Const {
		q = append(q, "const")
	}
	if t.Volatile {
		q = append(q, "volatile")
	}
	if len(q) == 0 {
		return
	}
	if trailing {
		b.WriteString(" " + strings.Join(q, " "))
	} else {
		b.WriteString(strings.Join(q, " ") + " ")
	}
}

// unscoped drops namespace and class qualification from name,
// leaving template arguments alone.
func unscoped(name string) string {
	depth := 0
	cut := 0
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ':':
			if depth == 0 && i+1 < len(name) && name[i+1] == ':' {
				cut = i + 2
				i++
			}
		}
	}
	return name[cut:]
}
