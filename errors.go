// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "fmt"

// errUsage indicates a malformed command line. Usage errors are
// independent of the units being rewritten.
type errUsage struct {
	err string
}

func newErrUsage(f string, args ...interface{}) *errUsage {
	return &errUsage{fmt.Sprintf(f, args...)}
}

func (e *errUsage) Error() string {
	return "usage: " + e.err
}

// errContract indicates that the frontend handed over a unit that
// breaks its contract, for example one naming several input files.
// The invocation cannot continue.
type errContract struct {
	unit string
	err  error
}

func (e *errContract) Error() string {
	return fmt.Sprintf("%s: %v", e.unit, e.err)
}

func (e *errContract) Unwrap() error { return e.err }
