package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHeadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "head [path]",
		Short: "Print the current reference and its upstream",
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
			ref, err := r.Head()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", ref.Kind, ref)
			if upstream, ok := r.RemoteTracking(); ok {
				fmt.Fprintf(out, "upstream %s\n", upstream)
			}
			return nil
		},
	}
}
