// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"rsc.io/rawptr/cxx"
	"rsc.io/rawptr/refactor"
)

type rewriteFlags struct {
	config        string
	excludeFields string
	jobs          int
}

func newRewriteCmd() *cobra.Command {
	var flags rewriteFlags
	cmd := &cobra.Command{
		Use:   "rewrite [flags] unit...",
		Short: "Print the edits for each translation unit",
		Long: `Rewrite analyzes each translation unit file (JSON, or MessagePack with a
.msgpack extension) and prints one block of edits per unit on stdout.

Units are independent; -j analyzes several at once. Output order always
follows the order of the arguments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return newErrUsage("rawptr rewrite [flags] unit...")
			}
			if flags.jobs < 1 {
				return newErrUsage("-j must be at least 1")
			}
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			r := refactor.New(cfg, loggerFor(cmd))
			r.Stdout = cmd.OutOrStdout()
			return rewrite(cmd.Context(), r, args, flags.jobs)
		},
	}
	cmd.Flags().StringVar(&flags.config, "config", "", "read settings from the TOML `file`")
	cmd.Flags().StringVar(&flags.excludeFields, "exclude-fields", "", "`file` listing fields to be blocked (not rewritten)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "analyze up to `n` units in parallel")
	return cmd
}

// load returns the configuration file's settings, if any, with
// command-line flags taking precedence.
func (f *rewriteFlags) load(cmd *cobra.Command) (refactor.Config, error) {
	cfg := refactor.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = refactor.LoadConfig(f.config); err != nil {
			return refactor.Config{}, err
		}
	}
	if cmd.Flags().Changed("exclude-fields") {
		cfg.ExcludeFields = f.excludeFields
	}
	return cfg, nil
}

// rewrite analyzes the named units with up to jobs workers and then
// flushes their edits in argument order. Nothing is printed unless
// every unit loads and satisfies the frontend contract.
func rewrite(ctx context.Context, r *refactor.Refactor, units []string, jobs int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	passes := make([]*refactor.Pass, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(units)))
	for i, name := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u, err := cxx.Load(name)
			if err != nil {
				return err
			}
			p, err := r.Run(u)
			if err != nil {
				return &errContract{unit: name, err: err}
			}
			passes[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.Log.Debug("rewrite failed", "err", fmt.Sprintf("%+v", err))
		return err
	}

	var errs []error
	for _, p := range passes {
		errs = append(errs, r.Flush(p))
	}
	return errors.Join(errs...)
}
