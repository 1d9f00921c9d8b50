package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields <fields.yaml>",
		Short: "List the field names of a record in order",
		Long: `Build an assign-once record from a YAML mapping and list its field
names, one per line, in insertion order.

Examples:
  constrec fields person.yaml
  constrec fields person.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runFields(opts *RootOptions, cmd *cobra.Command, path string) error {
	rec, err := loadRecord(path)
	if err != nil {
		return err
	}

	names := rec.FieldNames()

	if opts.Format == "json" {
		data, err := json.Marshal(names)
		if err != nil {
			return WrapExitError(ExitFailure, "encoding field names", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
