package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state [path]",
		Short: "Print the in-progress operation, if any",
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
			s := r.State()
			if !s.Active() {
				fmt.Fprintln(cmd.OutOrStdout(), "none")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.String())
			return nil
		},
	}
}

func newStashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stash [path]",
		Short: "Print the number of stash entries",
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
			fmt.Fprintln(cmd.OutOrStdout(), r.StashCount())
			return nil
		},
	}
}
