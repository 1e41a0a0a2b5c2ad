package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Query the service health status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := a.client.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Scene service health: %s\n", status)
			return nil
		},
	}
}
