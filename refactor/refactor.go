// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refactor rewrites raw pointer fields of C++ classes into a
// wrapper class template and patches the uses that would otherwise
// stop compiling.
//
// The input is a resolved translation unit (package cxx); the output is
// a line-oriented stream of textual replacements, one block per unit,
// for an external tool to apply.
package refactor

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// A Refactor holds the state for one run over any number of units.
//
// Units are analyzed independently by Run, possibly in parallel.
// Flush must be called for each unit's Pass from a single goroutine,
// in the order the output should appear.
type Refactor struct {
	Config     Config
	Exclusions *Exclusions
	Stdout     io.Writer
	Log        *slog.Logger

	// included records the files already given an include directive.
	included map[string]bool
}

// New returns a new run with the given configuration.
//
// An exclusion file that cannot be read is logged and treated as
// empty: the run proceeds, rewriting fields it would have skipped.
func New(cfg Config, log *slog.Logger) *Refactor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Refactor{
		Config:   cfg,
		Stdout:   os.Stdout,
		Log:      log,
		included: make(map[string]bool),
	}
	if cfg.ExcludeFields != "" {
		excl, err := LoadExclusions(cfg.ExcludeFields)
		if err != nil {
			log.Error("ignoring exclusion list", "file", cfg.ExcludeFields, "err", err)
		} else {
			log.Debug("loaded exclusion list", "file", cfg.ExcludeFields, "fields", excl.Len())
			r.Exclusions = excl
		}
	}
	return r
}

// internalError reports a node that lacks information the frontend is
// required to supply. Such a tree cannot be processed at all.
func internalError(format string, args ...any) {
	panic("internal error: " + fmt.Sprintf(format, args...))
}
