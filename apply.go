// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"rsc.io/rawptr/patch"
)

type applyFlags struct {
	dir  string
	diff bool
}

func newApplyCmd() *cobra.Command {
	var flags applyFlags
	cmd := &cobra.Command{
		Use:   "apply [flags] [stream...]",
		Short: "Apply edit streams to the source tree",
		Long: `Apply reads edit streams produced by rewrite (from the named files, or
standard input), merges and deduplicates them, and patches each file in
one step. With -diff it prints the changes instead of writing them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := loggerFor(cmd)
			var readers []io.Reader
			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, name := range args {
				if name == "-" {
					readers = append(readers, cmd.InOrStdin())
					continue
				}
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				defer f.Close()
				readers = append(readers, f)
			}
			set, err := patch.Parse(io.MultiReader(readers...))
			if err != nil {
				return err
			}
			log.Info("parsed edits", "files", set.Len())
			if flags.diff {
				return set.Diff(flags.dir, cmd.OutOrStdout())
			}
			return set.Apply(flags.dir)
		},
	}
	cmd.Flags().StringVar(&flags.dir, "dir", ".", "resolve relative file names against `dir`")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show diff instead of writing files")
	return cmd
}
