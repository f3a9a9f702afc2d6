package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/statusline/pkg/object"
)

func newAbbrevCmd() *cobra.Command {
	var (
		path       string
		lengthOnly bool
	)
	cmd := &cobra.Command{
		Use:   "abbrev <id>",
		Short: "Print the shortest unambiguous prefix of an object id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := object.ParseHash(args[0])
			if err != nil {
				return err
			}
			r, err := openFromArgs(env, []string{path})
			if err != nil {
				return err
			}
			n := r.Abbreviate(id)
			if lengthOnly {
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.Short(n))
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "path", "C", ".", "path inside the repository")
	cmd.Flags().BoolVarP(&lengthOnly, "length", "n", false, "print only the prefix length")
	return cmd
}
