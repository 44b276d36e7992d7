// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import "rsc.io/rawptr/cxx"

// declReplacement computes the rewrite of an accepted field's type.
//
// Given
//
//	const Pointee* const field_name_;
//	^--------------------^  replaced range
//	                     ^  field.Loc
//	^                       field.Begin
//
// the range runs from the start of the declaration to the name, so the
// name and any array or bit-field suffix stay untouched. Qualifiers are
// taken from the resolved pointer type, so a const or volatile written
// after the '*' reappears in front of the wrapper rather than being
// lost.
//
// It reports false if the name is not in the same file as the start of
// the declaration, as happens when a macro supplies the name.
func (r *Refactor) declReplacement(field *cxx.Node) (Replacement, bool) {
	begin, name := field.Begin, field.Loc
	if !name.IsFile() || name.File != begin.File || name.Offset < begin.Offset {
		return Replacement{}, false
	}
	return Replacement{
		File:    begin.File,
		Offset:  begin.Offset,
		Length:  name.Offset - begin.Offset,
		Text:    r.declText(field),
		Include: true,
	}, true
}

// declText returns the new spelling of the field's type, with a
// trailing space to separate it from the name:
//
//	[mutable ][const ][volatile ]Wrapper<Pointee>
func (r *Refactor) declText(field *cxx.Node) string {
	ptr := field.Type
	var text string
	if field.Mutable {
		text += "mutable "
	}
	if ptr.Const {
		text += "const "
	}
	if ptr.Volatile {
		text += "volatile "
	}
	return text + r.Config.Wrapper + "<" + ptr.Pointee().Spell() + "> "
}
