package main

import (
	"fmt"
	"strings"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/spf13/cobra"
)

func newInvokeCommand(a *app) *cobra.Command {
	var (
		record   string
		field    string
		inputs   []string
		outputs  []string
		required []string
	)

	cmd := &cobra.Command{
		Use:   "invoke [flow]",
		Short: "Run a flow and print the outputs it produced",
		Long: "Run a flow named on the command line, or resolved from " +
			"a configuration record with --record, and print the " +
			"declared outputs as JSON.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := a.newClient()
			if err != nil {
				return err
			}
			defer cleanup()

			inv := client.NewInvocation()
			switch {
			case record != "":
				inv.Lookup(api.Name(record), api.Name(field))
			case len(args) == 1:
				inv.Named(api.FlowName(args[0]))
			}

			for _, kv := range inputs {
				name, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf(
						"invalid input %q: expected name=value", kv)
				}
				inv.With(api.Name(name), parseValue(value))
			}
			for _, name := range outputs {
				inv.Output(api.Name(name))
			}
			for _, name := range required {
				inv.Required(api.Name(name))
			}

			res, err := inv.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&record, "record", "",
		"resolve the flow from this configuration record")
	flags.StringVar(&field, "field", "flow",
		"record field holding the flow name")
	flags.StringArrayVar(&inputs, "input", nil,
		"flow input as name=value (repeatable)")
	flags.StringArrayVar(&outputs, "output", nil,
		"optional output to collect (repeatable)")
	flags.StringArrayVar(&required, "require", nil,
		"required output to collect (repeatable)")
	return cmd
}
