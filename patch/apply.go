// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"rsc.io/rawptr/diff"
	"rsc.io/rawptr/edit"
)

// Apply rewrites every file in the set under dir. Each file is patched
// as a whole: if any of its edits cannot be applied, the file is left
// as it was and the problem is reported. Other files are still written.
func (s *Set) Apply(dir string) error {
	var errs ErrorList
	for _, f := range s.Files() {
		path := f.path(dir)
		old, err := os.ReadFile(path)
		if err != nil {
			errs.Add(err)
			continue
		}
		new, err := f.NewText(old)
		if err != nil {
			errs.Add(err)
			continue
		}
		if bytes.Equal(old, new) {
			continue
		}
		if err := writeFile(path, new); err != nil {
			errs.Add(err)
		}
	}
	return errs.Err()
}

// Diff writes to w the diff Apply would make, without writing files.
func (s *Set) Diff(dir string, w io.Writer) error {
	var errs ErrorList
	for _, f := range s.Files() {
		old, err := os.ReadFile(f.path(dir))
		if err != nil {
			errs.Add(err)
			continue
		}
		new, err := f.NewText(old)
		if err != nil {
			errs.Add(err)
			continue
		}
		name := filepath.ToSlash(f.Name)
		d, err := diff.Diff("old/"+name, old, "new/"+name, new)
		if err != nil {
			errs.Add(err)
			continue
		}
		w.Write(diff.Colorize(d))
	}
	return errs.Err()
}

func (f *File) path(dir string) string {
	if filepath.IsAbs(f.Name) {
		return f.Name
	}
	return filepath.Join(dir, f.Name)
}

// NewText returns old with f's replacements and includes applied.
func (f *File) NewText(old []byte) ([]byte, error) {
	var errs ErrorList
	b := edit.NewBuffer(old)
	for _, r := range f.Replacements {
		if r.End() > len(old) {
			errs.Errorf(f.Name, old, r.Offset, "replacement of %d bytes runs past end of file", r.Length)
			continue
		}
		b.Replace(r.Offset, r.End(), r.Text)
	}
	for _, h := range f.Headers {
		if pos, ok := includePos(old, h); ok {
			line := `#include "` + h + `"` + "\n"
			if pos > 0 && old[pos-1] != '\n' {
				line = "\n" + line
			}
			b.Insert(pos, line)
		}
	}
	if err := b.Check(); err != nil {
		errs.Errorf(f.Name, nil, -1, "%v", err)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

var (
	includeLine = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*include[ \t]*[<"]([^>"]*)[>"].*$`)
	commentLine = regexp.MustCompile(`^[ \t]*(//.*)?$`)
)

// includePos returns where to add an include of header to text: after
// the last #include line, or else after the leading comment block.
// It reports false if text already includes header.
func includePos(text []byte, header string) (int, bool) {
	last := -1
	for _, m := range includeLine.FindAllSubmatchIndex(text, -1) {
		if string(text[m[2]:m[3]]) == header {
			return 0, false
		}
		last = m[1]
	}
	if last >= 0 {
		if last < len(text) {
			last++ // past the newline
		}
		return last, true
	}
	pos := 0
	for pos < len(text) {
		end := bytes.IndexByte(text[pos:], '\n')
		if end < 0 {
			break
		}
		if !commentLine.Match(text[pos : pos+end]) {
			break
		}
		pos += end + 1
	}
	return pos, true
}

// writeFile replaces the named file's content in one step, keeping its
// permissions.
func writeFile(name string, data []byte) error {
	mode := os.FileMode(0o666)
	if info, err := os.Stat(name); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(name), ".rawptr-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}
