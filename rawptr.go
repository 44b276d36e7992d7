// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rawptr: %v\n", err)
		if _, ok := err.(*errUsage); ok {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rawptr",
		Short: "Rewrite raw pointer fields of C++ classes into a wrapper type",
		Long: `Rawptr rewrites T* fields of C++ classes into CheckedPtr<T> (or another
wrapper) and patches the uses that would no longer compile.

See 'go doc rsc.io/rawptr' for details.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().CountP("verbose", "v", "log more (repeat for debug output)")
	root.AddCommand(newRewriteCmd(), newApplyCmd())
	return root
}

// newLogger returns a logger writing to w at a level chosen by the
// number of -v flags: warnings by default, then info, then debug.
func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity == 1:
		level = slog.LevelInfo
	case verbosity > 1:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func loggerFor(cmd *cobra.Command) *slog.Logger {
	v, _ := cmd.Flags().GetCount("verbose")
	return newLogger(cmd.ErrOrStderr(), v)
}
