package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lokanhome/lokan-go/version"
)

func newVersionCmd(a *app) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No configuration or client needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(*cobra.Command, []string) error {
			info := version.Get()
			if short {
				fmt.Fprintln(a.out, info.Short())
				return nil
			}
			fmt.Fprintln(a.out, info.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}
