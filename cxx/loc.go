// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cxx

import "fmt"

// A Loc is a source location.
//
// A frontend normally fills in File and Offset. Hand-written units may
// instead give Addr, an address in the sam/acme syntax that Unit.Resolve
// evaluates against the file text; the resulting Offset is the start of
// the addressed range.
type Loc struct {
	File   string `json:"file,omitempty" msgpack:"file,omitempty"`
	Offset int    `json:"offset,omitempty" msgpack:"offset,omitempty"`
	Addr   string `json:"addr,omitempty" msgpack:"addr,omitempty"`

	// Macro reports that the location lies inside a macro expansion.
	// File and Offset then name the expansion site.
	Macro bool `json:"macro,omitempty" msgpack:"macro,omitempty"`
}

func (l *Loc) String() string {
	if l == nil {
		return "-"
	}
	s := fmt.Sprintf("%s:#%d", l.File, l.Offset)
	if l.Macro {
		s += " (macro)"
	}
	return s
}

// IsFile reports whether l is a plain file location:
// present, named, and not produced by a macro expansion.
func (l *Loc) IsFile() bool {
	return l != nil && l.File != "" && !l.Macro
}
