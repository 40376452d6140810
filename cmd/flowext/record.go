package main

import (
	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/spf13/cobra"
)

func newRecordCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "record [name]",
		Short: "List configuration records, or query them by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := a.newClient()
			if err != nil {
				return err
			}
			defer cleanup()

			var recs []*api.ConfigRecord
			if len(args) == 1 {
				recs, err = client.Store().Query(
					cmd.Context(), api.Name(args[0]))
			} else {
				recs, err = client.Store().List(cmd.Context())
			}
			if err != nil {
				return err
			}
			if recs == nil {
				recs = []*api.ConfigRecord{}
			}

			return printJSON(cmd, api.RecordsListResponse{
				Records: recs,
				Count:   len(recs),
			})
		},
	}
}
