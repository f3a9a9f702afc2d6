package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/statusline/pkg/repo"
	"github.com/odvcencio/statusline/pkg/status"
)

func newExtendedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extended [path]",
		Short: "Print the summary refined with working tree counts from git",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			r, err := openFromArgs(env, args)
			if err != nil {
				return err
			}
			snap, err := r.Snapshot()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(contextOf(cmd), env.cfg.Timeout.Duration)
			defer cancel()
			counts, err := status.Extended(ctx, status.NewExecRunner(env.cfg.GitBin), r.RootDir)
			if err != nil {
				env.logger.Warn("extended status unavailable", "root", r.RootDir, "error", err)
				fmt.Fprintln(cmd.OutOrStdout(), snap.String())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), extendedLine(snap, counts))
			return nil
		},
	}
}

// extendedLine merges the snapshot with status counts. The stash count comes
// from the counts so it is not printed twice.
func extendedLine(snap *repo.Snapshot, counts status.Counts) string {
	base := *snap
	if counts.Stashes == 0 {
		counts.Stashes = base.Stashes
	}
	base.Stashes = 0
	parts := []string{base.String()}
	if c := counts.String(); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, " ")
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
