// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cxx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/xerrors"
)

// A Unit is one translation unit: the compiled input file, its
// language, and the declarations seen while compiling it, including
// those from included headers.
type Unit struct {
	// Directory is the compilation directory. Relative file names in
	// locations are relative to it.
	Directory string   `json:"directory,omitempty" msgpack:"directory,omitempty"`
	Inputs    []*Input `json:"inputs" msgpack:"inputs"`
	Inner     []*Node  `json:"inner,omitempty" msgpack:"inner,omitempty"`

	// Name is the file the unit was loaded from, for messages.
	Name string `json:"-" msgpack:"-"`

	ids map[string]*Node
}

// An Input is a file handed to the frontend.
type Input struct {
	File     string `json:"file" msgpack:"file"`
	Language string `json:"language" msgpack:"language"`
}

// A Format is a serialization of a Unit.
type Format int

const (
	JSON Format = iota
	MsgPack
)

// FormatOf picks the format for a unit file by its extension.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".msgpack", ".mpk":
		return MsgPack
	}
	return JSON
}

// Load reads, decodes and resolves the unit stored in the named file.
// A unit without a Directory is taken to be relative to the file's
// own directory.
func Load(name string) (*Unit, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, xerrors.Errorf("loading unit: %w", err)
	}
	u, err := Decode(bytes.NewReader(data), FormatOf(name))
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", name, err)
	}
	u.Name = name
	if u.Directory == "" {
		u.Directory = filepath.Dir(name)
	}
	if err := u.Resolve(ReadFileIn(u.Directory)); err != nil {
		return nil, xerrors.Errorf("%s: %w", name, err)
	}
	return u, nil
}

// Decode reads a unit in the given format and indexes its nodes.
// Locations given as addresses are left unresolved.
func Decode(r io.Reader, f Format) (*Unit, error) {
	u := new(Unit)
	var err error
	switch f {
	case MsgPack:
		err = msgpack.NewDecoder(r).Decode(u)
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(u)
	}
	if err != nil {
		return nil, xerrors.Errorf("decoding unit: %w", err)
	}
	if err := u.index(); err != nil {
		return nil, err
	}
	return u, nil
}

// Encode writes u in the given format.
func (u *Unit) Encode(w io.Writer, f Format) error {
	switch f {
	case MsgPack:
		return msgpack.NewEncoder(w).Encode(u)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(u)
	}
}

func (u *Unit) index() error {
	u.ids = make(map[string]*Node)
	var err error
	Inspect(u, func(n *Node, _ []*Node) bool {
		if n.ID == "" || err != nil {
			return err == nil
		}
		if u.ids[n.ID] != nil {
			err = fmt.Errorf("duplicate node id %s", n.ID)
			return false
		}
		u.ids[n.ID] = n
		return true
	})
	return err
}

// Lookup returns the node with the given id, or nil.
func (u *Unit) Lookup(id string) *Node {
	if u.ids == nil {
		u.index()
	}
	return u.ids[id]
}

// Input returns the unit's single input file.
// A unit with any other number of inputs violates the frontend
// contract.
func (u *Unit) Input() (*Input, error) {
	if len(u.Inputs) != 1 {
		return nil, fmt.Errorf("unit %s has %d input files, want exactly 1", u.Name, len(u.Inputs))
	}
	return u.Inputs[0], nil
}

// Language returns the language of the unit's input, or LangUnknown
// if its name is not recognized. Only a unit without exactly one input
// is an error.
func (u *Unit) Language() (Language, error) {
	in, err := u.Input()
	if err != nil {
		return LangUnknown, err
	}
	l, _ := ParseLanguage(in.Language)
	return l, nil
}

// ReadFileIn returns a file reader that resolves relative names
// against dir.
func ReadFileIn(dir string) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		return os.ReadFile(name)
	}
}

// Resolve turns every address-form location into an offset, reading
// file text with readFile. Each file is read at most once.
func (u *Unit) Resolve(readFile func(string) ([]byte, error)) error {
	texts := make(map[string][]byte)
	var err error
	resolve := func(l *Loc) {
		if l == nil || l.Addr == "" || err != nil {
			return
		}
		text, ok := texts[l.File]
		if !ok {
			text, err = readFile(l.File)
			if err != nil {
				return
			}
			texts[l.File] = text
		}
		lo, _, aerr := addrToByteRange(l.Addr, 0, text)
		if aerr != nil {
			err = fmt.Errorf("%s: cannot evaluate address %s: %v", l.File, l.Addr, aerr)
			return
		}
		l.Offset = lo
		l.Addr = ""
	}
	Inspect(u, func(n *Node, _ []*Node) bool {
		resolve(n.Begin)
		resolve(n.Loc)
		resolve(n.TypeLoc)
		return err == nil
	})
	return err
}
