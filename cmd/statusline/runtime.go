package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/statusline/pkg/config"
	"github.com/odvcencio/statusline/pkg/logging"
	"github.com/odvcencio/statusline/pkg/repo"
)

// runtimeEnv is the configuration and logger shared by every command.
type runtimeEnv struct {
	cfg    *config.Config
	logger logging.Logger
}

func loadRuntime(cmd *cobra.Command) (*runtimeEnv, error) {
	cfg, err := config.Load(flagValue(cmd, "config"))
	if err != nil {
		return nil, err
	}
	if level := flagValue(cmd, "log-level"); level != "" {
		cfg.LogLevel = level
	}
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, lvl)
	if err != nil {
		return nil, err
	}
	return &runtimeEnv{cfg: cfg, logger: logger}, nil
}

// flagValue returns the named flag from cmd or its parents, or "" when the
// command was built without it.
func flagValue(cmd *cobra.Command, name string) string {
	f := cmd.Flag(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

// openFromArgs opens the repository enclosing args[0], or the current
// directory when no path is given.
func openFromArgs(env *runtimeEnv, args []string) (*repo.Repo, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	return repo.Open(path, repo.WithLogger(env.logger))
}
