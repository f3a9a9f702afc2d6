package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/odvcencio/statusline/pkg/repo"
	"github.com/odvcencio/statusline/pkg/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [path]",
		Short: "Print a new summary line whenever the repository state changes",
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

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, env, r)
		},
	}
}

func runWatch(ctx context.Context, cmd *cobra.Command, env *runtimeEnv, r *repo.Repo) error {
	out := cmd.OutOrStdout()
	var (
		mu   sync.Mutex
		last string
	)
	w := watch.New(r, func(s *repo.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		line := s.String()
		if line == last {
			return
		}
		last = line
		fmt.Fprintln(out, line)
	})
	w.SetLogger(env.logger)
	w.SetDebounce(env.cfg.Watch.Debounce.Duration)
	return w.Run(ctx)
}
