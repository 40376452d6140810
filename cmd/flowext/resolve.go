package main

import (
	"fmt"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/afawcett/flowextensions/pkg/flow"
	"github.com/spf13/cobra"
)

func newResolveCommand(a *app) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "resolve <record>",
		Short: "Resolve a flow name from a configuration record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := a.newClient()
			if err != nil {
				return err
			}
			defer cleanup()

			name, err := flow.ByLookup(
				client.Store(), api.Name(args[0]), api.Name(field),
			).Resolve(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "flow",
		"record field holding the flow name")
	return cmd
}
